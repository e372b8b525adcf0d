package usecase

import (
	"context"
	"errors"
	"strings"

	"careerpath/internal/domain/course"
	"careerpath/internal/domain/store"
	"careerpath/internal/pkg/logger"
)

type CourseUsecase interface {
	CreateCourse(ctx context.Context, title, description string) (store.Row, error)
	ListCourses(ctx context.Context) ([]store.Row, error)
	CreateChapter(ctx context.Context, courseID string, in course.NewChapter) (store.Row, error)
	GetCourseWithChapters(ctx context.Context, courseID string) (store.Row, error)
	CreateChapterQuestion(ctx context.Context, chapterID string, question, options any) (store.Row, error)
	GetChapterQuestions(ctx context.Context, chapterID string) (store.Row, error)
}

type Courses struct {
	tables   store.Tables
	cache    CatalogCache
	notifier CatalogNotifier
	log      *logger.Logger
}

func NewCourseUsecase(tables store.Tables, cache CatalogCache, notifier CatalogNotifier, log *logger.Logger) *Courses {
	return &Courses{tables: tables, cache: cache, notifier: notifier, log: log}
}

func (u *Courses) CreateCourse(ctx context.Context, title, description string) (store.Row, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return nil, invalidInput("Title and description are required")
	}

	rows, err := u.tables.Insert(ctx, course.TableCourses, []store.Row{{
		course.ColTitle:       title,
		course.ColDescription: description,
	}})
	if err != nil {
		return nil, err
	}
	created := firstRow(rows)

	invalidate(ctx, u.cache, u.log, CacheKeyCourses)
	notify(u.notifier, "course", rowID(created))
	return created, nil
}

func (u *Courses) ListCourses(ctx context.Context) ([]store.Row, error) {
	return cachedRead(ctx, u.cache, u.log, CacheKeyCourses, func() ([]store.Row, error) {
		return selectAll(ctx, u.tables, course.TableCourses)
	})
}

func (u *Courses) CreateChapter(ctx context.Context, courseID string, in course.NewChapter) (store.Row, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.MainInformation) == "" || in.OrderInCourse == nil {
		return nil, invalidInput(msgMissingFields)
	}

	if err := RequireExists(ctx, u.tables, course.TableCourses, courseID); err != nil {
		return nil, err
	}

	rows, err := u.tables.Insert(ctx, course.TableChapters, []store.Row{{
		course.ColCourseID:        courseID,
		course.ColTitle:           in.Title,
		course.ColDescription:     in.Description,
		course.ColMainInformation: in.MainInformation,
		course.ColOrderInCourse:   *in.OrderInCourse,
	}})
	if err != nil {
		return nil, err
	}
	created := firstRow(rows)

	invalidate(ctx, u.cache, u.log, CacheKeyCourse(courseID))
	notify(u.notifier, "chapter", rowID(created))
	return created, nil
}

func (u *Courses) GetCourseWithChapters(ctx context.Context, courseID string) (store.Row, error) {
	return cachedRead(ctx, u.cache, u.log, CacheKeyCourse(courseID), func() (store.Row, error) {
		return Compose(ctx, u.tables, Composition{
			ParentTable: course.TableCourses,
			ParentID:    courseID,
			ChildTable:  course.TableChapters,
			ForeignKey:  course.ColCourseID,
			Order:       &store.Order{Column: course.ColOrderInCourse, Ascending: true},
			Field:       "chapters",
		})
	})
}

func (u *Courses) CreateChapterQuestion(ctx context.Context, chapterID string, question, options any) (store.Row, error) {
	if isEmptyJSON(question) || isEmptyJSON(options) {
		return nil, invalidInput("Question and options are required")
	}

	if err := RequireExists(ctx, u.tables, course.TableChapters, chapterID); err != nil {
		return nil, err
	}

	rows, err := u.tables.Insert(ctx, course.TableChapterQuestions, []store.Row{{
		course.ColChapterID: chapterID,
		course.ColQuestion:  question,
		course.ColOptions:   options,
	}})
	if err != nil {
		return nil, err
	}
	created := firstRow(rows)

	notify(u.notifier, "chapter_question", chapterID)
	return created, nil
}

// GetChapterQuestions returns the single question record of a chapter. More
// than one record is reported by the data service as an error.
func (u *Courses) GetChapterQuestions(ctx context.Context, chapterID string) (store.Row, error) {
	q := store.Query{Table: course.TableChapterQuestions}.Where(store.Eq(course.ColChapterID, chapterID))
	row, err := store.SelectOne(ctx, u.tables, q)
	if errors.Is(err, store.ErrNoRows) {
		return nil, notFound("Chapter not found", err)
	}
	return row, err
}

func isEmptyJSON(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
