package route

import (
	"github.com/gofiber/fiber/v2"

	"itqan_backend/internals/features/utils/uploads/controller"
)

// UploadRoutes: router sudah lewat AuthMiddleware
func UploadRoutes(user fiber.Router, uploadDir string) {
	ctl := controller.NewUploadController(uploadDir)
	user.Post("/upload", ctl.Upload)
}
