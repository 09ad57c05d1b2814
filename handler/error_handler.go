package handler

import (
	"dating-chat-api/dto/res"
	"dating-chat-api/storage"
	"dating-chat-api/usecase"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &validationErrs),
		errors.Is(err, usecase.ErrInvalidPair),
		errors.Is(err, usecase.ErrEmptyMessage),
		errors.Is(err, storage.ErrEmptyBlob):
		return fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrNotMatched),
		errors.Is(err, usecase.ErrNotParticipant),
		errors.Is(err, usecase.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, usecase.ErrRoomNotFound),
		errors.Is(err, usecase.ErrMessageNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// NewErrorHandler renders every error returned by a handler as res.ErrorResponse.
// Internal errors are logged and hidden from the client.
func NewErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := StatusFor(err)
		message := err.Error()
		if code >= fiber.StatusInternalServerError {
			log.WithError(err).Errorf("%s %s failed", c.Method(), c.Path())
			message = utils.StatusMessage(code)
		}
		return c.Status(code).JSON(res.ErrorResponse{
			Status:     utils.StatusMessage(code),
			StatusCode: code,
			Error:      message,
		})
	}
}
