package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/georef-api/internal/domain"
	"github.com/georef-api/internal/pkg/errors"
)

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

// SingleEnvelope wraps one result under its entity key: {<key>: value}.
func SingleEnvelope(key string, value interface{}) fiber.Map {
	return fiber.Map{key: value}
}

// BatchEntry builds one element of a batch response. Records rejected by the parameter
// parser carry their messages instead of a result.
func BatchEntry(key string, value interface{}, errs []string) fiber.Map {
	if len(errs) > 0 {
		return fiber.Map{domain.ErrorsKey: errs}
	}
	return fiber.Map{key: value}
}

// BatchEnvelope wraps position-aligned entries: {results: [...]}.
func BatchEnvelope(entries []fiber.Map) fiber.Map {
	if entries == nil {
		entries = []fiber.Map{}
	}
	return fiber.Map{domain.ResultsKey: entries}
}

func SendSuccess(c *fiber.Ctx, envelope fiber.Map) error {
	return c.JSON(envelope)
}

func SendError(c *fiber.Ctx, err error) error {
	appErr := errors.AsAppError(err)
	return c.Status(appErr.StatusCode).JSON(ErrorResponse{
		Error: appErr,
	})
}
