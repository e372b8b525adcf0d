package usecase

import (
	"context"
	"errors"
	"strings"

	"careerpath/internal/domain/store"
	"careerpath/internal/domain/user"
	"careerpath/internal/pkg/jwt"
	"careerpath/internal/pkg/logger"
)

type AuthUsecase interface {
	Register(ctx context.Context, in user.Registration) (store.Row, error)
	Login(ctx context.Context, email, password string) (jwt.Pair, error)
	SignOut(ctx context.Context, userID string) error
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, recoveryToken, newPassword string) error
}

type Auth struct {
	auth   store.Auth
	tables store.Tables
	tokens *jwt.Service
	log    *logger.Logger

	resetRedirect string
}

func NewAuthUsecase(auth store.Auth, tables store.Tables, tokens *jwt.Service, resetRedirect string, log *logger.Logger) *Auth {
	return &Auth{auth: auth, tables: tables, tokens: tokens, resetRedirect: resetRedirect, log: log}
}

// Register creates the identity at the auth service and then its profile row.
// When the profile insert fails the identity is left in place.
func (u *Auth) Register(ctx context.Context, in user.Registration) (store.Row, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" || strings.TrimSpace(in.Nickname) == "" || strings.TrimSpace(in.BirthDate) == "" {
		return nil, invalidInput(msgMissingFields)
	}

	ident, err := u.auth.SignUp(ctx, email, in.Password)
	if err != nil {
		return nil, err
	}

	rows, err := u.tables.Insert(ctx, user.TableUsers, []store.Row{{
		user.ColID:        ident.ID,
		user.ColEmail:     email,
		user.ColNickname:  in.Nickname,
		user.ColBirthDate: in.BirthDate,
	}})
	if err != nil {
		u.log.Warn("profile insert failed after sign-up", "user_id", ident.ID, "error", err)
		return nil, err
	}
	if len(rows) > 0 {
		return rows[0], nil
	}
	return store.Row{user.ColID: ident.ID, user.ColEmail: ident.Email}, nil
}

func (u *Auth) Login(ctx context.Context, email, password string) (jwt.Pair, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return jwt.Pair{}, invalidInput(msgMissingFields)
	}

	ident, err := u.auth.SignIn(ctx, email, password)
	if err != nil {
		return jwt.Pair{}, err
	}

	pair, err := u.tokens.Issue(ident.ID)
	if err != nil {
		return jwt.Pair{}, &Error{Kind: ErrInternal, Message: "Failed to issue tokens", Cause: err}
	}
	return pair, nil
}

// SignOut ends the auth service's session only. Tokens issued by this
// service stay valid until they expire.
func (u *Auth) SignOut(ctx context.Context, userID string) error {
	return u.auth.SignOut(ctx, userID)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return "", &Error{Kind: ErrMissingCredential, Message: "Refresh token is required"}
	}

	access, err := u.tokens.RefreshAccess(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) || errors.Is(err, jwt.ErrTokenInvalid) {
			return "", &Error{Kind: ErrInvalidCredential, Message: "Invalid refresh token", Cause: err}
		}
		return "", &Error{Kind: ErrInternal, Message: "Failed to refresh token", Cause: err}
	}
	return access, nil
}

func (u *Auth) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalidInput("Email is required")
	}
	return u.auth.ResetPasswordForEmail(ctx, email, u.resetRedirect)
}

func (u *Auth) ResetPassword(ctx context.Context, recoveryToken, newPassword string) error {
	if newPassword == "" {
		return invalidInput("New password is required")
	}
	return u.auth.UpdatePassword(ctx, strings.TrimSpace(recoveryToken), newPassword)
}
