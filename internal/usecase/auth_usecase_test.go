package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"careerpath/internal/domain/store"
	"careerpath/internal/domain/user"
	"careerpath/internal/pkg/jwt"
	"careerpath/internal/pkg/logger"
	"careerpath/internal/testutil/memstore"
)

func newAuthUsecase(ms *memstore.Store) (*Auth, *jwt.Service) {
	tokens := jwt.NewService("access", "refresh", time.Hour, 7*24*time.Hour)
	return NewAuthUsecase(ms, ms, tokens, "http://localhost:3000/reset-password", logger.NewNop()), tokens
}

func TestAuth_RegisterThenLogin(t *testing.T) {
	ms := memstore.New()
	uc, tokens := newAuthUsecase(ms)
	ctx := context.Background()

	created, err := uc.Register(ctx, user.Registration{
		Email: "e@x.com", Password: "pw123456", Nickname: "N", BirthDate: "2000-01-01",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	id, _ := created["id"].(string)
	if id == "" || created["nickname"] != "N" {
		t.Fatalf("unexpected created user: %v", created)
	}

	pair, err := uc.Login(ctx, "e@x.com", "pw123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := tokens.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != id {
		t.Fatalf("token userId %q does not match registered id %q", claims.UserID, id)
	}
}

func TestAuth_RegisterMissingFields(t *testing.T) {
	ms := memstore.New()
	uc, _ := newAuthUsecase(ms)

	_, err := uc.Register(context.Background(), user.Registration{Email: "e@x.com", Password: "short"})
	var ue *Error
	if !errors.As(err, &ue) || !errors.Is(err, ErrInvalidInput) || ue.Message != "Missing required fields" {
		t.Fatalf("expected Missing required fields, got %v", err)
	}
	if ms.Called("auth:signup") != 0 {
		t.Fatalf("sign-up must not be attempted on invalid input")
	}
}

func TestAuth_RegisterProfileFailureKeepsIdentity(t *testing.T) {
	ms := memstore.New()
	ms.Fail["insert:users"] = store.NewError("duplicate key value violates unique constraint")
	uc, _ := newAuthUsecase(ms)
	ctx := context.Background()

	_, err := uc.Register(ctx, user.Registration{Email: "a@x.com", Password: "pw123456", Nickname: "A", BirthDate: "1999-09-09"})
	var se *store.Error
	if !errors.As(err, &se) {
		t.Fatalf("expected upstream error, got %v", err)
	}

	// the identity created before the failure is still there
	if _, err := uc.Login(ctx, "a@x.com", "pw123456"); err != nil {
		t.Fatalf("expected identity to survive failed profile insert: %v", err)
	}
}

func TestAuth_LoginForwardsUpstreamError(t *testing.T) {
	ms := memstore.New()
	uc, _ := newAuthUsecase(ms)

	_, err := uc.Login(context.Background(), "ghost@x.com", "whatever")
	var se *store.Error
	if !errors.As(err, &se) || se.Message != "Invalid login credentials" {
		t.Fatalf("expected upstream message, got %v", err)
	}
}

func TestAuth_Refresh(t *testing.T) {
	ms := memstore.New()
	uc, tokens := newAuthUsecase(ms)
	ctx := context.Background()

	if _, err := uc.Refresh(ctx, ""); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if _, err := uc.Refresh(ctx, "not-a-token"); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}

	pair, err := tokens.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := uc.Refresh(ctx, pair.AccessToken); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("access token must not refresh, got %v", err)
	}

	access, err := uc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	c, err := tokens.VerifyAccess(access)
	if err != nil || c.UserID != "u1" {
		t.Fatalf("unexpected refreshed token: %v %v", c, err)
	}
}

func TestAuth_PasswordFlows(t *testing.T) {
	ms := memstore.New()
	uc, _ := newAuthUsecase(ms)
	ctx := context.Background()

	if err := uc.ForgotPassword(ctx, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := uc.ForgotPassword(ctx, "e@x.com"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	if len(ms.ResetTargets) != 1 || ms.ResetTargets[0] != "http://localhost:3000/reset-password" {
		t.Fatalf("redirect not forwarded: %v", ms.ResetTargets)
	}

	if err := uc.ResetPassword(ctx, "tok", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	err := uc.ResetPassword(ctx, "", "newpass123")
	var se *store.Error
	if !errors.As(err, &se) {
		t.Fatalf("expected upstream error without a recovery token, got %v", err)
	}
}

func TestAuth_SignOutOnlyEndsUpstreamSession(t *testing.T) {
	ms := memstore.New()
	uc, tokens := newAuthUsecase(ms)
	pair, _ := tokens.Issue("u1")

	if err := uc.SignOut(context.Background(), "u1"); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if len(ms.SignedOut) != 1 || ms.SignedOut[0] != "u1" {
		t.Fatalf("expected upstream sign-out for u1, got %v", ms.SignedOut)
	}
	if _, err := tokens.VerifyAccess(pair.AccessToken); err != nil {
		t.Fatalf("issued access token should stay valid after sign-out: %v", err)
	}
}
