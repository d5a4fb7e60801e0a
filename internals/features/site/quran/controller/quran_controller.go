package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"itqan_backend/internals/features/site/quran/service"
	helper "itqan_backend/internals/helpers"
)

type detectRequest struct {
	Text string `json:"text"`
}

// 🟡 POST /api/public/quran/detect {text}
func Detect(c *fiber.Ctx) error {
	var req detectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	if strings.TrimSpace(req.Text) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "النص مطلوب")
	}
	return helper.JsonOK(c, "", service.Detect(req.Text))
}

// 🟢 GET /api/public/quran/fatiha
func Fatiha(c *fiber.Ctx) error {
	return helper.JsonOK(c, "", service.Fatiha())
}
