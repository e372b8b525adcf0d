package usecase

import (
	"context"
	"errors"
	"fmt"

	"careerpath/internal/domain/store"
)

const colID = "id"

// Composition describes a parent row and the child collection merged into it
// under Field.
type Composition struct {
	ParentTable string
	ParentID    string

	ChildTable string
	ForeignKey string
	Columns    []string
	Order      *store.Order
	Embed      []store.Embed

	Field string
}

// Compose fetches the parent, then its children, and returns the parent's
// attributes with the children under c.Field. A parent that cannot be read
// yields ErrNotFound and no child read is attempted. Any later failure is
// returned as is and nothing partial is kept.
func Compose(ctx context.Context, t store.Tables, c Composition) (store.Row, error) {
	if t == nil {
		return nil, ErrInternal
	}

	parent, err := store.SelectOne(ctx, t, store.Query{
		Table:   c.ParentTable,
		Filters: []store.Filter{store.Eq(colID, c.ParentID)},
	})
	if err != nil {
		return nil, notFound(parentNotFoundMessage(c.ParentTable), err)
	}

	children, err := t.Select(ctx, store.Query{
		Table:   c.ChildTable,
		Columns: c.Columns,
		Filters: []store.Filter{store.Eq(c.ForeignKey, c.ParentID)},
		Order:   c.Order,
		Embed:   c.Embed,
	})
	if err != nil {
		return nil, err
	}
	if children == nil {
		children = []store.Row{}
	}

	out := make(store.Row, len(parent)+1)
	for k, v := range parent {
		out[k] = v
	}
	out[c.Field] = children
	return out, nil
}

// RequireExists is the existence check run before writing a dependent row.
// It is not atomic with the write that follows.
func RequireExists(ctx context.Context, t store.Tables, table, id string) error {
	if t == nil {
		return ErrInternal
	}
	_, err := store.SelectOne(ctx, t, store.Query{
		Table:   table,
		Columns: []string{colID},
		Filters: []store.Filter{store.Eq(colID, id)},
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNoRows) {
		return notFound(parentNotFoundMessage(table), nil)
	}
	return notFound(parentNotFoundMessage(table), err)
}

var parentNames = map[string]string{
	"profession_tests": "Profession test",
	"courses":          "Course",
	"chapters":         "Chapter",
	"users":            "User",
}

func parentNotFoundMessage(table string) string {
	if name, ok := parentNames[table]; ok {
		return name + " not found"
	}
	return fmt.Sprintf("%s not found", table)
}
