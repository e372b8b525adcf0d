package handler

import (
	"careerpath/internal/delivery/http/middleware"
	"careerpath/internal/domain/user"
	"careerpath/internal/pkg/response"
	"careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password"`
	AccessToken string `json:"access_token"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh-token", h.Refresh)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Post("/reset-password", h.ResetPassword)
	r.Post("/signout", auth, h.SignOut)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req user.Registration
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.Register(c.Context(), req)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusCreated, fiber.Map{
		"message": "User registered successfully",
		"user":    created,
	})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	pair, err := h.uc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, pair)
}

func (h *AuthHandler) SignOut(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.uc.SignOut(c.Context(), userID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Message(c, fiber.StatusOK, "Sign out successful")
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req refreshRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	access, err := h.uc.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"accessToken": access})
}

func (h *AuthHandler) ForgotPassword(c fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	if err := h.uc.ForgotPassword(c.Context(), req.Email); err != nil {
		return mapUsecaseError(err)
	}
	return response.Message(c, fiber.StatusOK, "Password reset email sent successfully")
}

// ResetPassword accepts the recovery token either in the body or as the
// bearer of the request, since reset links carry it in the URL fragment.
func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	var req resetPasswordRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	token := req.AccessToken
	if token == "" {
		token, _ = middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	}

	if err := h.uc.ResetPassword(c.Context(), token, req.NewPassword); err != nil {
		return mapUsecaseError(err)
	}
	return response.Message(c, fiber.StatusOK, "Password updated successfully")
}
