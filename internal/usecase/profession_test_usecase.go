package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"careerpath/internal/domain/profession"
	"careerpath/internal/domain/store"
	"careerpath/internal/pkg/logger"
)

type ProfessionTestUsecase interface {
	CreateTest(ctx context.Context, title, description string) (store.Row, error)
	AddQuestion(ctx context.Context, testID string, q profession.NewQuestion) (any, error)
	ListTests(ctx context.Context) ([]store.Row, error)
	ProfessionDescriptions(ctx context.Context) ([]store.Row, error)
	GetTestWithQuestions(ctx context.Context, testID string) (store.Row, error)
	SaveResults(ctx context.Context, userID, testID string, results map[string]any) (store.Row, error)
}

type ProfessionTests struct {
	tables   store.Tables
	cache    CatalogCache
	notifier CatalogNotifier
	log      *logger.Logger

	now func() time.Time
}

func NewProfessionTestUsecase(tables store.Tables, cache CatalogCache, notifier CatalogNotifier, log *logger.Logger) *ProfessionTests {
	return &ProfessionTests{tables: tables, cache: cache, notifier: notifier, log: log, now: time.Now}
}

func (u *ProfessionTests) CreateTest(ctx context.Context, title, description string) (store.Row, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return nil, invalidInput("Title and description are required")
	}

	rows, err := u.tables.Insert(ctx, profession.TableTests, []store.Row{{
		profession.ColTitle:       title,
		profession.ColDescription: description,
	}})
	if err != nil {
		return nil, err
	}
	created := firstRow(rows)

	invalidate(ctx, u.cache, u.log, CacheKeyProfessionTests)
	notify(u.notifier, "profession_test", rowID(created))
	return created, nil
}

// AddQuestion stores a question with its scored options through the
// add_profession_test_question procedure and returns the new question id.
func (u *ProfessionTests) AddQuestion(ctx context.Context, testID string, q profession.NewQuestion) (any, error) {
	if strings.TrimSpace(q.QuestionText) == "" || len(q.Options) == 0 {
		return nil, invalidInput("Question text and options are required")
	}

	if err := RequireExists(ctx, u.tables, profession.TableTests, testID); err != nil {
		return nil, err
	}

	questionID, err := u.tables.RPC(ctx, profession.AddQuestionRPC, map[string]any{
		"p_test_id":       testID,
		"p_question_text": q.QuestionText,
		"p_options":       q.Options,
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, u.cache, u.log, CacheKeyProfessionTest(testID))
	notify(u.notifier, "profession_test_question", testID)
	return questionID, nil
}

func (u *ProfessionTests) ListTests(ctx context.Context) ([]store.Row, error) {
	return cachedRead(ctx, u.cache, u.log, CacheKeyProfessionTests, func() ([]store.Row, error) {
		return selectAll(ctx, u.tables, profession.TableTests)
	})
}

func (u *ProfessionTests) ProfessionDescriptions(ctx context.Context) ([]store.Row, error) {
	return cachedRead(ctx, u.cache, u.log, CacheKeyProfessionDescriptions, func() ([]store.Row, error) {
		return selectAll(ctx, u.tables, profession.TableDescriptions)
	})
}

func (u *ProfessionTests) GetTestWithQuestions(ctx context.Context, testID string) (store.Row, error) {
	return cachedRead(ctx, u.cache, u.log, CacheKeyProfessionTest(testID), func() (store.Row, error) {
		return Compose(ctx, u.tables, Composition{
			ParentTable: profession.TableTests,
			ParentID:    testID,
			ChildTable:  profession.TableQuestions,
			ForeignKey:  profession.ColTestID,
			Columns:     profession.QuestionColumns,
			Embed:       profession.QuestionTree,
			Field:       "questions",
		})
	})
}

func (u *ProfessionTests) SaveResults(ctx context.Context, userID, testID string, results map[string]any) (store.Row, error) {
	if len(results) == 0 {
		return nil, invalidInput("Results are required")
	}

	if err := RequireExists(ctx, u.tables, profession.TableTests, testID); err != nil {
		return nil, err
	}

	rows, err := u.tables.Insert(ctx, profession.TableResults, []store.Row{{
		profession.ColUserID:    userID,
		profession.ColTestID:    testID,
		profession.ColResults:   results,
		profession.ColCreatedAt: u.now().UTC().Format(time.RFC3339Nano),
	}})
	if err != nil {
		return nil, err
	}
	return firstRow(rows), nil
}

func selectAll(ctx context.Context, t store.Tables, table string) ([]store.Row, error) {
	rows, err := t.Select(ctx, store.Query{Table: table})
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []store.Row{}
	}
	return rows, nil
}

func firstRow(rows []store.Row) store.Row {
	if len(rows) == 0 {
		return store.Row{}
	}
	return rows[0]
}

func rowID(r store.Row) string {
	switch v := r[colID].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
