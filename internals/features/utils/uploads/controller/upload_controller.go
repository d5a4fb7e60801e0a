package controller

import (
	"github.com/gofiber/fiber/v2"

	"itqan_backend/internals/features/utils/uploads/service"
	helper "itqan_backend/internals/helpers"
)

type UploadController struct {
	Root string
}

func NewUploadController(root string) *UploadController {
	return &UploadController{Root: root}
}

// 🟡 POST /api/upload (multipart: file, folder?)
func (uc *UploadController) Upload(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, service.MsgFileRequired)
	}
	res, err := service.Save(uc.Root, c.FormValue("folder"), fh)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "تم رفع الملف بنجاح", res)
}
