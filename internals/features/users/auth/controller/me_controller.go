package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/configs"
	"itqan_backend/internals/constants"
	authRepo "itqan_backend/internals/features/users/auth/repository"
	helper "itqan_backend/internals/helpers"
)

type MeResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	AvatarURL *string `json:"avatar_url"`
	Gender    *string `json:"gender"`
	Phone     *string `json:"phone"`
}

type UpdateMeRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	Phone     *string `json:"phone"`
	Gender    *string `json:"gender"`
}

// 🟢 GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	user, err := authRepo.FindUserByID(c.UserContext(), ac.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, helper.MsgUserNotFound)
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", MeResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		AvatarURL: user.AvatarURL,
		Gender:    user.Gender,
		Phone:     user.Phone,
	})
}

// 🟢 PATCH /api/auth/me (partial)
func (ac *AuthController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req UpdateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}

	updates := map[string]any{}
	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" {
			updates["name"] = name
		}
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = helper.StrPtr(*req.AvatarURL)
	}
	if req.Phone != nil {
		updates["phone"] = helper.StrPtr(*req.Phone)
	}
	if req.Gender != nil {
		g := strings.TrimSpace(*req.Gender)
		if !constants.IsValidGender(g) {
			return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidGender)
		}
		updates["gender"] = g
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgNoDataToUpdate)
	}

	if err := authRepo.UpdateUser(c.UserContext(), ac.DB, userID, updates); err != nil {
		return helper.FromFiberError(c, err)
	}
	return ac.Me(c)
}

// 🟢 POST /api/auth/me/avatar (multipart "file"): crop 256x256 -> WebP
func (ac *AuthController) UploadAvatar(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "لم يتم تحديد ملف")
	}
	if helper.FileKind(fh.Header.Get(fiber.HeaderContentType), fh.Filename) != constants.FileKindImage {
		return helper.JsonError(c, fiber.StatusBadRequest, "يجب أن يكون الملف صورة")
	}
	if fh.Size > helper.MaxImageSize {
		return helper.JsonError(c, fiber.StatusBadRequest, "حجم الصورة يجب ألا يتجاوز 5 ميغابايت")
	}

	url, err := helper.SaveAvatarWebP(configs.UploadDir, fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "تعذر معالجة الصورة")
	}
	if err := authRepo.UpdateUser(c.UserContext(), ac.DB, userID, map[string]any{"avatar_url": url}); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "تم تحديث الصورة الشخصية", fiber.Map{"avatar_url": url})
}
