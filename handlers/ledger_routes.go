// handlers/ledger_routes.go
package handlers

import (
	"mission-ledger-system/middleware"
	"mission-ledger-system/services"
	"mission-ledger-system/storage"

	"github.com/gofiber/fiber/v2"
)

// SetupLedgerRoutes exposes the read-only surfaces: balances (with token
// metadata), badges, and mirrored wallets.
func SetupLedgerRoutes(app *fiber.App, balanceService *services.BalanceService, badgeService *services.BadgeService, store storage.Store) {
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	securedGroup.Get("/balances", func(c *fiber.Ctx) error {
		balances, err := balanceService.GetBalancesWithTokenMetadata(c.Context(), currentUserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"balances": balances})
	})

	securedGroup.Get("/balances/:tokenId", func(c *fiber.Ctx) error {
		balance, err := balanceService.GetBalance(c.Context(), currentUserID(c), c.Params("tokenId"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(balance)
	})

	securedGroup.Get("/user/badges", func(c *fiber.Ctx) error {
		badges, err := badgeService.ListForUser(c.Context(), currentUserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"badges": badges})
	})

	securedGroup.Get("/user/wallets", func(c *fiber.Ctx) error {
		wallets, err := store.ListUserWallets(c.Context(), currentUserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"wallets": wallets})
	})
}
