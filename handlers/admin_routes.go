// handlers/admin_routes.go
package handlers

import (
	"fmt"

	"mission-ledger-system/middleware"
	"mission-ledger-system/services"
	"mission-ledger-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupAdminRoutes(app *fiber.App, catalogService *services.CatalogService) {
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireRole("admin"))

	adminGroup.Get("/tokens", func(c *fiber.Ctx) error {
		tokens, err := catalogService.ListTokens(c.Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"tokens": tokens})
	})

	adminGroup.Post("/tokens", func(c *fiber.Ctx) error {
		var req services.RegisterTokenInput
		if err := parseAndValidate(c, &req); err != nil {
			return respondError(c, err)
		}
		token, err := catalogService.RegisterToken(c.Context(), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(token)
	})

	adminGroup.Post("/missions", func(c *fiber.Ctx) error {
		var req services.CreateMissionInput
		if err := parseAndValidate(c, &req); err != nil {
			return respondError(c, err)
		}
		mission, err := catalogService.CreateMission(c.Context(), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(mission)
	})

	adminGroup.Post("/missions/:id/icon", func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("icon")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "icon file is required"})
		}

		key := fmt.Sprintf("mission-icons/%s", uuid.NewString())
		iconURL, err := utils.UploadIconToR2(fileHeader, key)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload icon"})
		}

		mission, err := catalogService.AttachMissionIcon(c.Context(), c.Params("id"), iconURL)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(mission)
	})
}
