// handlers/mission_routes.go
package handlers

import (
	"mission-ledger-system/middleware"
	"mission-ledger-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMissionRoutes(app *fiber.App, missionService *services.MissionService) {
	securedGroup := app.Group("/missions", middleware.UserContextMiddleware())

	securedGroup.Get("/", func(c *fiber.Ctx) error {
		missions, err := missionService.ListForUser(c.Context(), currentUserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"missions": missions})
	})

	securedGroup.Post("/complete", func(c *fiber.Ctx) error {
		var req struct {
			MissionID string `json:"mission_id" validate:"required"`
			Proof     string `json:"proof"`
		}
		if err := parseAndValidate(c, &req); err != nil {
			return respondError(c, err)
		}

		result, err := missionService.Complete(c.Context(), currentUserID(c), req.MissionID, req.Proof)
		if err != nil {
			return respondError(c, err)
		}

		status := "completed"
		if result.AlreadyDone {
			status = "already_completed"
		}
		body := fiber.Map{
			"status":       status,
			"user_mission": result.UserMission,
		}
		if result.RewardGranted != nil {
			body["reward_granted"] = result.RewardGranted.String()
		}
		return c.JSON(body)
	})

	securedGroup.Post("/claim", func(c *fiber.Ctx) error {
		var req struct {
			MissionID string `json:"mission_id" validate:"required"`
		}
		if err := parseAndValidate(c, &req); err != nil {
			return respondError(c, err)
		}

		row, err := missionService.Claim(c.Context(), currentUserID(c), req.MissionID)
		if err != nil {
			return respondError(c, err)
		}

		body := fiber.Map{
			"status":       "claimed",
			"user_mission": row,
		}
		// reward moved at completion; echo the mission's reward spec for display
		if mission, err := missionService.Store.GetMission(c.Context(), req.MissionID); err == nil && mission != nil && mission.RewardAmount != "" {
			body["reward"] = fiber.Map{
				"token_id": mission.RewardTokenID,
				"amount":   mission.RewardAmount,
			}
		}
		return c.JSON(body)
	})
}
