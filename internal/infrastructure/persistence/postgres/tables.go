package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"careerpath/internal/database"
	"careerpath/internal/domain/course"
	"careerpath/internal/domain/profession"
	"careerpath/internal/domain/store"
	"careerpath/internal/domain/user"
	"careerpath/internal/pkg/logger"

	"github.com/jackc/pgx/v5/pgconn"
)

// Tables implements store.Tables directly against the project's Postgres
// database, for deployments that bypass PostgREST.
type Tables struct {
	db  database.DB
	q   database.Querier
	log *logger.Logger
}

func NewTables(db database.DB, log *logger.Logger) *Tables {
	return &Tables{db: db, q: db, log: log.With("component", "postgres")}
}

// RequiredSchema lists the tables and columns the service reads or writes.
var RequiredSchema = map[string][]string{
	user.TableUsers:              {user.ColID, user.ColEmail, user.ColNickname, user.ColBirthDate},
	user.TableProfessionResults:  {"id", user.ColUserID, profession.ColTestID, profession.ColResults, profession.ColCreatedAt},
	user.TableProgress:           {"id", user.ColUserID, "course_id", "chapter_id", "status"},
	profession.TableTests:        {profession.ColID, profession.ColTitle, profession.ColDescription},
	profession.TableQuestions:    {"id", profession.ColTestID, "question_text"},
	profession.TableOptions:      {"id", "question_id", "option_text"},
	profession.TableScores:       {"id", "option_id", "profession", "score"},
	profession.TableDescriptions: {"id", profession.ColProfession, profession.ColDescription},
	course.TableCourses:          {course.ColID, course.ColTitle, course.ColDescription},
	course.TableChapters:         {"id", course.ColCourseID, course.ColTitle, course.ColDescription, course.ColMainInformation, course.ColOrderInCourse},
	course.TableChapterQuestions: {"id", course.ColChapterID, course.ColQuestion, course.ColOptions},
}

func (t *Tables) CheckSchema(ctx context.Context) error {
	return database.EnsureSchema(ctx, t.db, RequiredSchema)
}

func (t *Tables) Select(ctx context.Context, q store.Query) ([]store.Row, error) {
	st, err := buildSelect(q)
	if err != nil {
		return nil, store.NewError(err.Error())
	}
	return t.queryRows(ctx, st)
}

func (t *Tables) Insert(ctx context.Context, table string, rows []store.Row) ([]store.Row, error) {
	st, err := buildInsert(table, rows)
	if err != nil {
		return nil, store.NewError(err.Error())
	}
	return t.queryRows(ctx, st)
}

func (t *Tables) Update(ctx context.Context, table string, filters []store.Filter, patch store.Row) ([]store.Row, error) {
	st, err := buildUpdate(table, filters, patch)
	if err != nil {
		return nil, store.NewError(err.Error())
	}
	return t.queryRows(ctx, st)
}

func (t *Tables) RPC(ctx context.Context, name string, args map[string]any) (any, error) {
	st, err := buildRPC(name, args)
	if err != nil {
		return nil, store.NewError(err.Error())
	}

	var raw []byte
	if err := t.q.QueryRow(ctx, st.sql, st.args...).Scan(&raw); err != nil {
		return nil, t.translate(err, st)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, store.NewError("unexpected function result")
	}
	return out, nil
}

// Transact runs fn against a Tables bound to one transaction, after taking
// SHARE ROW EXCLUSIVE locks on the tables in lock. fn's error rolls the
// transaction back. Transactions do not nest.
func (t *Tables) Transact(ctx context.Context, lock []string, fn func(store.Tables) error) error {
	if t.db == nil {
		return store.NewError("nested transactions are not supported")
	}

	tx, err := t.db.Begin(ctx)
	if err != nil {
		return t.translate(err, statement{sql: "BEGIN"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	for _, table := range lock {
		st := statement{sql: "LOCK TABLE " + ident(table) + " IN SHARE ROW EXCLUSIVE MODE"}
		if _, err := tx.Exec(ctx, st.sql); err != nil {
			return t.translate(err, st)
		}
	}

	if err := fn(&Tables{q: tx, log: t.log}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return t.translate(err, statement{sql: "COMMIT"})
	}
	committed = true
	return nil
}

func (t *Tables) queryRows(ctx context.Context, st statement) ([]store.Row, error) {
	rows, err := t.q.Query(ctx, st.sql, st.args...)
	if err != nil {
		return nil, t.translate(err, st)
	}
	defer rows.Close()

	out := make([]store.Row, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, t.translate(err, st)
		}
		var r store.Row
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, store.NewError("unexpected row format")
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, t.translate(err, st)
	}
	return out, nil
}

// translate turns driver errors into *store.Error so handlers forward the
// database message the same way they forward PostgREST's.
func (t *Tables) translate(err error, st statement) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		t.log.Debug("query failed", "sql", st.sql, "code", pgErr.Code, "error", pgErr.Message)
		return &store.Error{Status: http.StatusBadRequest, Code: pgErr.Code, Message: pgErr.Message}
	}
	t.log.Warn("query failed", "sql", st.sql, "error", err)
	return &store.Error{Message: err.Error()}
}
