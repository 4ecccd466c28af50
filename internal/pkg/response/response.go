// Package response writes the JSON bodies the SPA expects: payloads are
// returned as-is, failures as {"error": message}.
package response

import "github.com/gofiber/fiber/v3"

const (
	MessageBadRequest          = "Bad request"
	MessageUnauthorized        = "Unauthorized"
	MessageForbidden           = "Forbidden"
	MessageNotFound            = "Not found"
	MessageUnprocessableEntity = "Unprocessable entity"
	MessageBadGateway          = "Upstream service failed"
	MessageInternalServerError = "Internal server error"
)

type errorBody struct {
	Error string `json:"error"`
}

func JSON(c fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

func Error(c fiber.Ctx, status int, message string) error {
	if message == "" {
		message = DefaultMessage(status)
	}
	return c.Status(status).JSON(errorBody{Error: message})
}

func DefaultMessage(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusUnprocessableEntity:
		return MessageUnprocessableEntity
	case fiber.StatusBadGateway:
		return MessageBadGateway
	default:
		return MessageInternalServerError
	}
}
