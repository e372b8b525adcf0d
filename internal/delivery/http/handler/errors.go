package handler

import (
	"errors"

	"careerpath/internal/delivery/http/middleware"
	"careerpath/internal/domain/store"
	"careerpath/internal/pkg/response"
	"careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// mapUsecaseError picks the status for a usecase failure. Data service
// failures are forwarded as 400 with their own message.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var ue *usecase.Error
	if errors.As(err, &ue) {
		switch {
		case errors.Is(ue, usecase.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, ue.Message, err)
		case errors.Is(ue, usecase.ErrNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, ue.Message, err)
		case errors.Is(ue, usecase.ErrMissingCredential):
			return middleware.NewAppError(fiber.StatusUnauthorized, ue.Message, err)
		case errors.Is(ue, usecase.ErrInvalidCredential):
			return middleware.NewAppError(fiber.StatusForbidden, ue.Message, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}
	}

	var se *store.Error
	if errors.As(err, &se) {
		msg := se.Message
		if msg == "" {
			msg = response.MessageBadRequest
		}
		return middleware.NewAppError(fiber.StatusBadRequest, msg, err)
	}

	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
}

// bindBody decodes a JSON body into out. An empty body leaves out zeroed so
// that field validation reports what is missing.
func bindBody(c fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", err)
	}
	return nil
}

func currentUserID(c fiber.Ctx) (string, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return "", middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
	}
	return id, nil
}
