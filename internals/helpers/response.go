package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Pesan umum (bahasa Arab, sesuai UI)
const (
	MsgUnauthorized      = "غير مصرح"
	MsgServerError       = "حدث خطأ في الخادم"
	MsgAllFieldsRequired = "جميع الحقول مطلوبة"
	MsgInvalidData       = "بيانات غير صحيحة"
	MsgUserNotFound      = "المستخدم غير موجود"
	MsgNoDataToUpdate    = "لا توجد بيانات للتحديث"
	MsgPasswordTooShort  = "كلمة المرور يجب أن تكون 6 أحرف على الأقل"
	MsgInvalidGender     = "الجنس غير صحيح"
	MsgInvalidID         = "المعرف غير صالح"
	MsgUnknownAction     = "إجراء غير معروف"
	MsgTooManyRequests   = "طلبات كثيرة جداً، يرجى المحاولة لاحقاً"
	MsgMaintenance       = "المنصة في وضع الصيانة حالياً، يرجى المحاولة لاحقاً"
	MsgRouteNotFound     = "المسار غير موجود"
)

var validate = validator.New()

// Validator shared instance (go-playground/validator aman dipakai concurrent)
func Validator() *validator.Validate { return validate }

// FromFiberError mengubah error (biasanya *fiber.Error dari service)
// menjadi response JSON konsisten via JsonError.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	zap.L().Error("unhandled error",
		zap.String("path", c.Path()),
		zap.String("method", c.Method()),
		zap.Error(err),
	)
	return JsonError(c, fiber.StatusInternalServerError, MsgServerError)
}

// ErrorHandler dipasang di fiber.Config agar error dari middleware ikut format standar.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}

// ValidationError khusus error validator.v10 -> 400 + map field -> tag
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, MsgInvalidData)
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		key := strings.ToLower(fe.Field())
		out[key] = append(out[key], fe.Tag())
	}
	return JsonValidationError(c, out)
}
