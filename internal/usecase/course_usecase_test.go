package usecase

import (
	"context"
	"errors"
	"testing"

	"careerpath/internal/domain/course"
	"careerpath/internal/domain/store"
	"careerpath/internal/pkg/logger"
	"careerpath/internal/testutil/memstore"
)

func intPtr(v int) *int { return &v }

func TestCourses_ChaptersComeBackOrdered(t *testing.T) {
	ms := memstore.New()
	uc := NewCourseUsecase(ms, newMemCache(), nil, logger.NewNop())
	ctx := context.Background()

	c, err := uc.CreateCourse(ctx, "Leadership", "Basics")
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	courseID := c["id"].(string)

	for _, order := range []int{3, 1, 2} {
		_, err := uc.CreateChapter(ctx, courseID, course.NewChapter{
			Title: "Ch", Description: "D", MainInformation: "M", OrderInCourse: intPtr(order),
		})
		if err != nil {
			t.Fatalf("create chapter: %v", err)
		}
	}

	got, err := uc.GetCourseWithChapters(ctx, courseID)
	if err != nil {
		t.Fatalf("get course: %v", err)
	}
	chapters, ok := got["chapters"].([]store.Row)
	if !ok || len(chapters) != 3 {
		t.Fatalf("expected 3 chapters, got %#v", got["chapters"])
	}
	for i, ch := range chapters {
		if ch["order_in_course"] != float64(i+1) {
			t.Fatalf("chapter %d out of order: %v", i, ch)
		}
	}
}

func TestCourses_CreateChapterValidation(t *testing.T) {
	ms := memstore.New()
	ms.Seed("courses", store.Row{"id": "c1"})
	uc := NewCourseUsecase(ms, nil, nil, logger.NewNop())
	ctx := context.Background()

	_, err := uc.CreateChapter(ctx, "c1", course.NewChapter{Title: "T", Description: "D", MainInformation: "M"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing order_in_course should be invalid, got %v", err)
	}

	_, err = uc.CreateChapter(ctx, "missing", course.NewChapter{
		Title: "T", Description: "D", MainInformation: "M", OrderInCourse: intPtr(0),
	})
	var ue *Error
	if !errors.As(err, &ue) || ue.Message != "Course not found" {
		t.Fatalf("expected Course not found, got %v", err)
	}
}

func TestCourses_GetMissingCourse(t *testing.T) {
	ms := memstore.New()
	uc := NewCourseUsecase(ms, nil, nil, logger.NewNop())

	_, err := uc.GetCourseWithChapters(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if ms.Called("select:chapters") != 0 {
		t.Fatalf("chapters must not be fetched for a missing course")
	}
}

func TestCourses_ChapterQuestions(t *testing.T) {
	ms := memstore.New()
	ms.Seed("chapters", store.Row{"id": "ch1", "course_id": "c1"})
	notifier := &recordingNotifier{}
	uc := NewCourseUsecase(ms, nil, notifier, logger.NewNop())
	ctx := context.Background()

	if _, err := uc.CreateChapterQuestion(ctx, "ch1", map[string]any{}, []any{"a"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty question, got %v", err)
	}

	q := map[string]any{"text": "What is a squad?"}
	opts := []any{map[string]any{"text": "A unit", "correct": true}}
	row, err := uc.CreateChapterQuestion(ctx, "ch1", q, opts)
	if err != nil {
		t.Fatalf("create chapter question: %v", err)
	}
	if row["chapter_id"] != "ch1" {
		t.Fatalf("unexpected row: %v", row)
	}
	if stored, ok := row["question"].(map[string]any); !ok || stored["text"] != "What is a squad?" {
		t.Fatalf("question should be stored as a JSON value, got %T %v", row["question"], row["question"])
	}
	if stored, ok := row["options"].([]any); !ok || len(stored) != 1 {
		t.Fatalf("options should be stored as a JSON array, got %T %v", row["options"], row["options"])
	}

	if len(notifier.events) != 1 || notifier.events[0] != "chapter_question:ch1" {
		t.Fatalf("unexpected events: %v", notifier.events)
	}

	got, err := uc.GetChapterQuestions(ctx, "ch1")
	if err != nil || got["id"] != row["id"] {
		t.Fatalf("expected the chapter question object, got %v %v", got, err)
	}

	_, err = uc.GetChapterQuestions(ctx, "unknown")
	var ue *Error
	if !errors.As(err, &ue) || !errors.Is(err, ErrNotFound) || ue.Message != "Chapter not found" {
		t.Fatalf("expected Chapter not found, got %v", err)
	}

	if _, err := uc.CreateChapterQuestion(ctx, "ch1", q, opts); err != nil {
		t.Fatalf("second chapter question: %v", err)
	}
	var se *store.Error
	if _, err := uc.GetChapterQuestions(ctx, "ch1"); !errors.As(err, &se) {
		t.Fatalf("expected a data service error for several records, got %v", err)
	}
}
