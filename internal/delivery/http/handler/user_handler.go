package handler

import (
	"careerpath/internal/pkg/response"
	"careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateNicknameRequest struct {
	Nickname string `json:"nickname"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/user", auth, h.GetUser)
	r.Get("/user/profession-results", auth, h.GetProfessionResults)
	r.Get("/user/progress", auth, h.GetProgress)
	r.Put("/user/nickname", auth, h.UpdateNickname)
}

func (h *UserHandler) GetUser(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	u, err := h.uc.GetUser(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, u)
}

func (h *UserHandler) GetProfessionResults(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	rows, err := h.uc.ProfessionResults(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, rows)
}

func (h *UserHandler) GetProgress(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	rows, err := h.uc.Progress(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, rows)
}

func (h *UserHandler) UpdateNickname(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateNicknameRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	updated, err := h.uc.UpdateNickname(c.Context(), userID, req.Nickname)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{
		"message": "Nickname updated successfully",
		"user":    updated,
	})
}
