package store

import (
	"context"
	"errors"
	"strings"
)

var ErrNoRows = errors.New("no rows")

// Row is one record as the data service returns it. Records are opaque to
// this service apart from the few keys it reads to compose responses.
type Row = map[string]any

type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`

	// SessionToken is the data service's own session credential, if any.
	SessionToken string `json:"-"`
	SessionTTL   int64  `json:"-"`
}

type Auth interface {
	SignUp(ctx context.Context, email, password string) (Identity, error)
	SignIn(ctx context.Context, email, password string) (Identity, error)
	SignOut(ctx context.Context, userID string) error
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
	UpdatePassword(ctx context.Context, recoveryToken, newPassword string) error
}

type Tables interface {
	Select(ctx context.Context, q Query) ([]Row, error)
	Insert(ctx context.Context, table string, rows []Row) ([]Row, error)
	Update(ctx context.Context, table string, filters []Filter, patch Row) ([]Row, error)
	RPC(ctx context.Context, name string, args map[string]any) (any, error)
}

// Transactor is implemented by backends that can run several calls as one
// unit. The tables in lock are held exclusively for writes until fn returns.
type Transactor interface {
	Transact(ctx context.Context, lock []string, fn func(Tables) error) error
}

type Filter struct {
	Column string
	Value  any
}

func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

type Order struct {
	Column    string
	Ascending bool
}

// Embed fetches child rows of the enclosing table whose ForeignKey column
// references the enclosing row's id, recursively.
type Embed struct {
	Table      string
	ForeignKey string
	Columns    []string
	Embed      []Embed
}

type Query struct {
	Table   string
	Columns []string
	Filters []Filter
	Order   *Order
	Embed   []Embed
	Limit   int
}

func (q Query) Where(filters ...Filter) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), filters...)
	return q
}

// Select renders the column list in PostgREST form, including embedded
// children: "id,question_text,question_options(id,option_text)".
func (q Query) Select() string {
	return renderSelect(q.Columns, q.Embed)
}

func renderSelect(columns []string, embeds []Embed) string {
	parts := make([]string, 0, len(columns)+len(embeds))
	if len(columns) == 0 {
		parts = append(parts, "*")
	}
	parts = append(parts, columns...)
	for _, e := range embeds {
		parts = append(parts, e.Table+"("+renderSelect(e.Columns, e.Embed)+")")
	}
	return strings.Join(parts, ",")
}

// SelectOne returns the single row matched by q, or ErrNoRows. At most two
// rows are fetched, enough to tell one from many.
func SelectOne(ctx context.Context, t Tables, q Query) (Row, error) {
	if q.Limit <= 0 || q.Limit > 2 {
		q.Limit = 2
	}
	rows, err := t.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	if len(rows) > 1 {
		return nil, &Error{Message: "JSON object requested, multiple (or no) rows returned", Code: "PGRST116"}
	}
	return rows[0], nil
}

// Error is a failure reported by the data service. Message is safe to show
// to API clients verbatim.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func NewError(message string) *Error {
	return &Error{Message: message}
}
