// Package memstore is an in-memory stand-in for the data and auth service,
// used by tests. It honours equality filters, ordering, embedding by foreign
// key and the add_profession_test_question procedure.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"careerpath/internal/domain/store"

	"github.com/google/uuid"
)

type account struct {
	id       string
	email    string
	password string
}

type Store struct {
	mu sync.Mutex

	tables   map[string][]store.Row
	accounts map[string]account

	// Fail maps "op:table" (for example "select:chapters" or "rpc:name") to
	// the error that operation returns.
	Fail map[string]error

	Calls        []string
	SignedOut    []string
	ResetEmails  []string
	ResetTargets []string
}

func New() *Store {
	return &Store{
		tables:   map[string][]store.Row{},
		accounts: map[string]account{},
		Fail:     map[string]error{},
	}
}

func (s *Store) record(op, target string) error {
	key := op + ":" + target
	s.Calls = append(s.Calls, key)
	if err, ok := s.Fail[key]; ok {
		return err
	}
	return nil
}

// Called reports how many times "op:target" was invoked.
func (s *Store) Called(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.Calls {
		if c == key {
			n++
		}
	}
	return n
}

// Seed appends rows to a table as-is, generating ids where absent.
func (s *Store) Seed(table string, rows ...store.Row) []store.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(table, rows)
}

func (s *Store) Rows(table string) []store.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.Row, 0, len(s.tables[table]))
	for _, r := range s.tables[table] {
		out = append(out, copyRow(r))
	}
	return out
}

func (s *Store) SignUp(_ context.Context, email, password string) (store.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("auth", "signup"); err != nil {
		return store.Identity{}, err
	}
	key := strings.ToLower(email)
	if _, exists := s.accounts[key]; exists {
		return store.Identity{}, &store.Error{Status: 422, Message: "User already registered"}
	}
	if len(password) < 6 {
		return store.Identity{}, &store.Error{Status: 422, Message: "Password should be at least 6 characters."}
	}
	acc := account{id: uuid.NewString(), email: email, password: password}
	s.accounts[key] = acc
	return store.Identity{ID: acc.id, Email: acc.email}, nil
}

func (s *Store) SignIn(_ context.Context, email, password string) (store.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("auth", "signin"); err != nil {
		return store.Identity{}, err
	}
	acc, ok := s.accounts[strings.ToLower(email)]
	if !ok || acc.password != password {
		return store.Identity{}, &store.Error{Status: 400, Message: "Invalid login credentials"}
	}
	return store.Identity{ID: acc.id, Email: acc.email, SessionToken: "session-" + acc.id}, nil
}

func (s *Store) SignOut(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("auth", "signout"); err != nil {
		return err
	}
	s.SignedOut = append(s.SignedOut, userID)
	return nil
}

func (s *Store) ResetPasswordForEmail(_ context.Context, email, redirectTo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("auth", "recover"); err != nil {
		return err
	}
	s.ResetEmails = append(s.ResetEmails, email)
	s.ResetTargets = append(s.ResetTargets, redirectTo)
	return nil
}

func (s *Store) UpdatePassword(_ context.Context, recoveryToken, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("auth", "update"); err != nil {
		return err
	}
	if recoveryToken == "" {
		return &store.Error{Status: 401, Message: "Auth session missing!"}
	}
	for k, acc := range s.accounts {
		if "recovery-"+acc.id == recoveryToken {
			acc.password = newPassword
			s.accounts[k] = acc
			return nil
		}
	}
	return &store.Error{Status: 401, Message: "invalid JWT"}
}

func (s *Store) Select(_ context.Context, q store.Query) ([]store.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("select", q.Table); err != nil {
		return nil, err
	}

	out := make([]store.Row, 0)
	for _, r := range s.tables[q.Table] {
		if matches(r, q.Filters) {
			out = append(out, s.project(r, q.Columns, q.Embed))
		}
	}
	if q.Order != nil {
		col, asc := q.Order.Column, q.Order.Ascending
		sort.SliceStable(out, func(i, j int) bool {
			if asc {
				return less(out[i][col], out[j][col])
			}
			return less(out[j][col], out[i][col])
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *Store) Insert(_ context.Context, table string, rows []store.Row) ([]store.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("insert", table); err != nil {
		return nil, err
	}
	return s.insertLocked(table, rows), nil
}

func (s *Store) Update(_ context.Context, table string, filters []store.Filter, patch store.Row) ([]store.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("update", table); err != nil {
		return nil, err
	}
	out := make([]store.Row, 0)
	for _, r := range s.tables[table] {
		if !matches(r, filters) {
			continue
		}
		for k, v := range normalize(patch) {
			r[k] = v
		}
		out = append(out, copyRow(r))
	}
	return out, nil
}

func (s *Store) RPC(_ context.Context, name string, args map[string]any) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("rpc", name); err != nil {
		return nil, err
	}
	if name != "add_profession_test_question" {
		return nil, &store.Error{Status: 404, Message: fmt.Sprintf("Could not find the function public.%s", name)}
	}

	var options []struct {
		Text   string             `json:"text"`
		Scores map[string]float64 `json:"scores"`
	}
	b, err := json.Marshal(args["p_options"])
	if err == nil {
		err = json.Unmarshal(b, &options)
	}
	if err != nil {
		return nil, &store.Error{Status: 400, Message: "invalid input syntax for type json"}
	}

	q := s.insertLocked("profession_test_questions", []store.Row{{
		"test_id":       args["p_test_id"],
		"question_text": args["p_question_text"],
	}})[0]
	for _, opt := range options {
		o := s.insertLocked("question_options", []store.Row{{
			"question_id": q["id"],
			"option_text": opt.Text,
		}})[0]
		profs := make([]string, 0, len(opt.Scores))
		for p := range opt.Scores {
			profs = append(profs, p)
		}
		sort.Strings(profs)
		for _, p := range profs {
			s.insertLocked("option_scores", []store.Row{{
				"option_id":  o["id"],
				"profession": p,
				"score":      opt.Scores[p],
			}})
		}
	}
	return q["id"], nil
}

func (s *Store) insertLocked(table string, rows []store.Row) []store.Row {
	out := make([]store.Row, 0, len(rows))
	for _, r := range rows {
		nr := normalize(r)
		if _, ok := nr["id"]; !ok {
			nr["id"] = uuid.NewString()
		}
		s.tables[table] = append(s.tables[table], nr)
		out = append(out, copyRow(nr))
	}
	return out
}

func (s *Store) project(r store.Row, columns []string, embeds []store.Embed) store.Row {
	var out store.Row
	if len(columns) == 0 {
		out = copyRow(r)
	} else {
		out = make(store.Row, len(columns)+len(embeds))
		for _, c := range columns {
			out[c] = r[c]
		}
	}
	for _, e := range embeds {
		children := make([]store.Row, 0)
		for _, cr := range s.tables[e.Table] {
			if fmt.Sprint(cr[e.ForeignKey]) == fmt.Sprint(r["id"]) {
				children = append(children, s.project(cr, e.Columns, e.Embed))
			}
		}
		out[e.Table] = children
	}
	return out
}

func matches(r store.Row, filters []store.Filter) bool {
	for _, f := range filters {
		if fmt.Sprint(r[f.Column]) != fmt.Sprint(f.Value) {
			return false
		}
	}
	return true
}

func less(a, b any) bool {
	fa, aok := toFloat(a)
	fb, bok := toFloat(b)
	if aok && bok {
		return fa < fb
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// normalize round-trips a row through JSON so stored values look like what a
// real service would return.
func normalize(r store.Row) store.Row {
	b, err := json.Marshal(r)
	if err != nil {
		return copyRow(r)
	}
	var out store.Row
	if err := json.Unmarshal(b, &out); err != nil {
		return copyRow(r)
	}
	return out
}

func copyRow(r store.Row) store.Row {
	out := make(store.Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
