package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const LocDB = "db"

// DBMiddleware menyimpan koneksi db di Locals (dipakai handler yang tidak pegang *gorm.DB)
func DBMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocDB, db)
		return c.Next()
	}
}

// DBFromCtx: nil kalau DBMiddleware belum terpasang
func DBFromCtx(c *fiber.Ctx) *gorm.DB {
	db, _ := c.Locals(LocDB).(*gorm.DB)
	return db
}
