package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/certificates/certificates/controller"
	authMiddleware "itqan_backend/internals/middlewares/auth"
)

// CertificateUserRoutes: router sudah lewat AuthMiddleware
func CertificateUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewCertificateController(db)
	onlyStudent := authMiddleware.OnlyRolesSlice("", constants.StudentOnly)

	user.Get("/certificate", onlyStudent, ctl.Mine)
	user.Post("/certificate", onlyStudent, ctl.Save)
}

func CertificatePublicRoutes(public fiber.Router, db *gorm.DB) {
	ctl := controller.NewCertificateController(db)
	public.Get("/certificates/:studentId", ctl.Public)
}

// CertificateAdminRoutes: router sudah lewat AuthMiddleware + OnlyRoles(admin)
func CertificateAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewCertificateController(db)
	admin.Get("/certificates", ctl.AdminList)
	admin.Put("/certificates", ctl.AdminAction)
}
