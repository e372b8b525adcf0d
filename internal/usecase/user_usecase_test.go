package usecase

import (
	"context"
	"errors"
	"testing"

	"careerpath/internal/domain/store"
	"careerpath/internal/testutil/memstore"
)

func TestUser_ReadsAndNickname(t *testing.T) {
	ms := memstore.New()
	ms.Seed("users", store.Row{"id": "u1", "email": "e@x.com", "nickname": "N"})
	ms.Seed("user_progress",
		store.Row{"user_id": "u1", "course_id": "c1", "status": "in_progress"},
		store.Row{"user_id": "u2", "course_id": "c1", "status": "done"},
	)
	uc := NewUserUsecase(ms)
	ctx := context.Background()

	u, err := uc.GetUser(ctx, "u1")
	if err != nil || u["email"] != "e@x.com" {
		t.Fatalf("get user: %v %v", u, err)
	}

	progress, err := uc.Progress(ctx, "u1")
	if err != nil || len(progress) != 1 {
		t.Fatalf("progress: %v %v", progress, err)
	}

	results, err := uc.ProfessionResults(ctx, "u1")
	if err != nil || results == nil || len(results) != 0 {
		t.Fatalf("expected empty non-nil results, got %v %v", results, err)
	}

	if _, err := uc.UpdateNickname(ctx, "u1", "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	updated, err := uc.UpdateNickname(ctx, "u1", "Neo")
	if err != nil || updated["nickname"] != "Neo" {
		t.Fatalf("update nickname: %v %v", updated, err)
	}
}

func TestUser_Missing(t *testing.T) {
	uc := NewUserUsecase(memstore.New())
	if _, err := uc.GetUser(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
