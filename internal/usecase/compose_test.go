package usecase

import (
	"context"
	"errors"
	"testing"

	"careerpath/internal/domain/store"
	"careerpath/internal/testutil/memstore"
)

func TestCompose_MissingParentShortCircuits(t *testing.T) {
	ms := memstore.New()

	_, err := Compose(context.Background(), ms, Composition{
		ParentTable: "courses",
		ParentID:    "nope",
		ChildTable:  "chapters",
		ForeignKey:  "course_id",
		Field:       "chapters",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var ue *Error
	if !errors.As(err, &ue) || ue.Message != "Course not found" {
		t.Fatalf("unexpected error message: %v", err)
	}
	if n := ms.Called("select:chapters"); n != 0 {
		t.Fatalf("children fetched %d times for a missing parent", n)
	}
}

func TestCompose_MergesOrderedChildren(t *testing.T) {
	ms := memstore.New()
	ms.Seed("courses", store.Row{"id": "c1", "title": "Go", "description": "D"})
	ms.Seed("chapters",
		store.Row{"id": "ch2", "course_id": "c1", "order_in_course": 2},
		store.Row{"id": "ch1", "course_id": "c1", "order_in_course": 1},
		store.Row{"id": "other", "course_id": "c2", "order_in_course": 1},
	)

	got, err := Compose(context.Background(), ms, Composition{
		ParentTable: "courses",
		ParentID:    "c1",
		ChildTable:  "chapters",
		ForeignKey:  "course_id",
		Order:       &store.Order{Column: "order_in_course", Ascending: true},
		Field:       "chapters",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got["title"] != "Go" {
		t.Fatalf("parent attributes not merged: %v", got)
	}
	chapters, ok := got["chapters"].([]store.Row)
	if !ok || len(chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %#v", got["chapters"])
	}
	if chapters[0]["id"] != "ch1" || chapters[1]["id"] != "ch2" {
		t.Fatalf("chapters not ordered: %v", chapters)
	}
}

func TestCompose_ChildFailureDiscardsResult(t *testing.T) {
	ms := memstore.New()
	ms.Seed("courses", store.Row{"id": "c1"})
	boom := store.NewError("relation \"chapters\" does not exist")
	ms.Fail["select:chapters"] = boom

	got, err := Compose(context.Background(), ms, Composition{
		ParentTable: "courses",
		ParentID:    "c1",
		ChildTable:  "chapters",
		ForeignKey:  "course_id",
		Field:       "chapters",
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected child error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no partial result, got %v", got)
	}
}

func TestCompose_EmptyChildrenIsEmptyList(t *testing.T) {
	ms := memstore.New()
	ms.Seed("profession_tests", store.Row{"id": "t1"})

	got, err := Compose(context.Background(), ms, Composition{
		ParentTable: "profession_tests",
		ParentID:    "t1",
		ChildTable:  "profession_test_questions",
		ForeignKey:  "test_id",
		Field:       "questions",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	qs, ok := got["questions"].([]store.Row)
	if !ok || len(qs) != 0 {
		t.Fatalf("expected empty questions list, got %#v", got["questions"])
	}
}

func TestRequireExists(t *testing.T) {
	ms := memstore.New()
	ms.Seed("chapters", store.Row{"id": "ch1"})
	ctx := context.Background()

	if err := RequireExists(ctx, ms, "chapters", "ch1"); err != nil {
		t.Fatalf("expected chapter to exist: %v", err)
	}

	err := RequireExists(ctx, ms, "chapters", "missing")
	var ue *Error
	if !errors.As(err, &ue) || !errors.Is(err, ErrNotFound) || ue.Message != "Chapter not found" {
		t.Fatalf("expected Chapter not found, got %v", err)
	}
}
