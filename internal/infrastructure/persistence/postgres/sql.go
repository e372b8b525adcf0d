package postgres

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"careerpath/internal/domain/store"

	"github.com/jackc/pgx/v5"
)

// statement is a rendered SQL text with its positional arguments.
type statement struct {
	sql  string
	args []any
}

type builder struct {
	sb   strings.Builder
	args []any
}

func (b *builder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *builder) done() statement {
	return statement{sql: b.sb.String(), args: b.args}
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func alias(depth int) string {
	return "t" + strconv.Itoa(depth)
}

// buildSelect renders q as a query yielding one jsonb document per row.
// Embedded children become correlated jsonb_agg subqueries keyed by the
// child table name, so the result has the same shape PostgREST returns.
func buildSelect(q store.Query) (statement, error) {
	if q.Table == "" {
		return statement{}, fmt.Errorf("empty table")
	}
	b := &builder{}
	a := alias(0)

	b.sb.WriteString("SELECT ")
	b.sb.WriteString(projection(a, q.Columns, q.Embed, 0))
	b.sb.WriteString(" FROM ")
	b.sb.WriteString(ident(q.Table))
	b.sb.WriteString(" AS ")
	b.sb.WriteString(a)
	writeWhere(b, a, q.Filters)

	if q.Order != nil {
		dir := "DESC"
		if q.Order.Ascending {
			dir = "ASC"
		}
		fmt.Fprintf(&b.sb, " ORDER BY %s.%s %s", a, ident(q.Order.Column), dir)
	}
	if q.Limit > 0 {
		b.sb.WriteString(" LIMIT " + strconv.Itoa(q.Limit))
	}
	return b.done(), nil
}

func projection(a string, columns []string, embeds []store.Embed, depth int) string {
	var base string
	if len(columns) == 0 {
		base = "to_jsonb(" + a + ")"
	} else {
		pairs := make([]string, 0, len(columns))
		for _, c := range columns {
			pairs = append(pairs, quoteLiteral(c)+", "+a+"."+ident(c))
		}
		base = "jsonb_build_object(" + strings.Join(pairs, ", ") + ")"
	}
	if len(embeds) == 0 {
		return base
	}

	children := make([]string, 0, len(embeds))
	for _, e := range embeds {
		ca := alias(depth + 1)
		fk := e.ForeignKey
		if fk == "" {
			fk = "id"
		}
		sub := fmt.Sprintf(
			"(SELECT coalesce(jsonb_agg(%s), '[]'::jsonb) FROM %s AS %s WHERE %s.%s = %s.%s)",
			projection(ca, e.Columns, e.Embed, depth+1),
			ident(e.Table), ca,
			ca, ident(fk), a, ident("id"),
		)
		children = append(children, quoteLiteral(e.Table)+", "+sub)
	}
	return base + " || jsonb_build_object(" + strings.Join(children, ", ") + ")"
}

func writeWhere(b *builder, a string, filters []store.Filter) {
	for i, f := range filters {
		if i == 0 {
			b.sb.WriteString(" WHERE ")
		} else {
			b.sb.WriteString(" AND ")
		}
		col := ident(f.Column)
		if a != "" {
			col = a + "." + col
		}
		if f.Value == nil {
			b.sb.WriteString(col + " IS NULL")
			continue
		}
		b.sb.WriteString(col + " = " + b.arg(f.Value))
	}
}

// buildInsert renders a multi-row insert. Columns absent from a row take the
// column default.
func buildInsert(table string, rows []store.Row) (statement, error) {
	if table == "" {
		return statement{}, fmt.Errorf("empty table")
	}
	if len(rows) == 0 {
		return statement{}, fmt.Errorf("no rows to insert")
	}
	cols := columnUnion(rows)
	b := &builder{}
	a := alias(0)

	fmt.Fprintf(&b.sb, "INSERT INTO %s AS %s ", ident(table), a)
	if len(cols) == 0 {
		if len(rows) > 1 {
			return statement{}, fmt.Errorf("cannot insert several empty rows")
		}
		b.sb.WriteString("DEFAULT VALUES")
	} else {
		quoted := make([]string, 0, len(cols))
		for _, c := range cols {
			quoted = append(quoted, ident(c))
		}
		b.sb.WriteString("(" + strings.Join(quoted, ", ") + ") VALUES ")
		for i, r := range rows {
			if i > 0 {
				b.sb.WriteString(", ")
			}
			vals := make([]string, 0, len(cols))
			for _, c := range cols {
				v, ok := r[c]
				if !ok {
					vals = append(vals, "DEFAULT")
					continue
				}
				vals = append(vals, b.arg(v))
			}
			b.sb.WriteString("(" + strings.Join(vals, ", ") + ")")
		}
	}
	b.sb.WriteString(" RETURNING to_jsonb(" + a + ")")
	return b.done(), nil
}

func buildUpdate(table string, filters []store.Filter, patch store.Row) (statement, error) {
	if table == "" {
		return statement{}, fmt.Errorf("empty table")
	}
	if len(patch) == 0 {
		return statement{}, fmt.Errorf("empty update")
	}
	if len(filters) == 0 {
		return statement{}, fmt.Errorf("update without filters")
	}
	b := &builder{}
	a := alias(0)

	fmt.Fprintf(&b.sb, "UPDATE %s AS %s SET ", ident(table), a)
	cols := sortedKeys(patch)
	for i, c := range cols {
		if i > 0 {
			b.sb.WriteString(", ")
		}
		b.sb.WriteString(ident(c) + " = " + b.arg(patch[c]))
	}
	writeWhere(b, a, filters)
	b.sb.WriteString(" RETURNING to_jsonb(" + a + ")")
	return b.done(), nil
}

// buildRPC calls a function with named arguments and returns its result as
// a single jsonb value.
func buildRPC(name string, args map[string]any) (statement, error) {
	if name == "" {
		return statement{}, fmt.Errorf("empty function name")
	}
	b := &builder{}
	keys := sortedKeys(args)
	named := make([]string, 0, len(keys))
	for _, k := range keys {
		named = append(named, ident(k)+" => "+b.arg(args[k]))
	}
	fmt.Fprintf(&b.sb, "SELECT to_jsonb(%s(%s))", ident(name), strings.Join(named, ", "))
	return b.done(), nil
}

func columnUnion(rows []store.Row) []string {
	seen := map[string]struct{}{}
	for _, r := range rows {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
