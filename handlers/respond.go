// handlers/respond.go
package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mission-ledger-system/apperr"
)

var validate = validator.New()

// respondError maps a ledger error onto the stable envelope
// {error, code[, time_remaining_seconds]} with the status from its kind.
func respondError(c *fiber.Ctx, err error) error {
	appErr := apperr.As(err)
	body := fiber.Map{
		"error": appErr.Message,
		"code":  string(appErr.Kind),
	}
	if appErr.Kind == apperr.KindCooldownActive {
		body["time_remaining_seconds"] = appErr.SecondsRemaining
	}
	return c.Status(apperr.HTTPStatus(appErr)).JSON(body)
}

func parseAndValidate(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return apperr.Validation("invalid request: %v", err)
	}
	return nil
}

func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}
