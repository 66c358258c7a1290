// handlers/faucet_routes.go
package handlers

import (
	"mission-ledger-system/middleware"
	"mission-ledger-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupFaucetRoutes(app *fiber.App, faucetService *services.FaucetService) {
	securedGroup := app.Group("/faucet", middleware.UserContextMiddleware())

	securedGroup.Post("/request", func(c *fiber.Ctx) error {
		var req struct {
			TokenID string `json:"token_id" validate:"required,uuid"`
		}
		if err := parseAndValidate(c, &req); err != nil {
			return respondError(c, err)
		}

		result, err := faucetService.RequestDrip(c.Context(), currentUserID(c), req.TokenID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"status":         "granted",
			"amount":         result.Amount.String(),
			"next_available": result.NextAvailable,
		})
	})

	securedGroup.Get("/status", func(c *fiber.Ctx) error {
		status, err := faucetService.Status(c.Context(), currentUserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(status)
	})
}
