package supabase

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"careerpath/internal/domain/store"
)

const preferRepresentation = "return=representation"

func (c *Client) Select(ctx context.Context, q store.Query) ([]store.Row, error) {
	params := filterParams(q.Filters)
	params["select"] = q.Select()
	if q.Order != nil {
		dir := "desc"
		if q.Order.Ascending {
			dir = "asc"
		}
		params["order"] = q.Order.Column + "." + dir
	}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}

	out := make([]store.Row, 0)
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   tablePath(q.Table),
		params: params,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Insert(ctx context.Context, table string, rows []store.Row) ([]store.Row, error) {
	out := make([]store.Row, 0, len(rows))
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   tablePath(table),
		params: map[string]string{"select": "*"},
		header: map[string]string{"Prefer": preferRepresentation},
		body:   rows,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, table string, filters []store.Filter, patch store.Row) ([]store.Row, error) {
	params := filterParams(filters)
	params["select"] = "*"

	out := make([]store.Row, 0)
	err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   tablePath(table),
		params: params,
		header: map[string]string{"Prefer": preferRepresentation},
		body:   patch,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RPC(ctx context.Context, name string, args map[string]any) (any, error) {
	if args == nil {
		args = map[string]any{}
	}
	var out any
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/rest/v1/rpc/" + name,
		body:   args,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func tablePath(table string) string {
	return "/rest/v1/" + table
}

func filterParams(filters []store.Filter) map[string]string {
	params := make(map[string]string, len(filters)+2)
	for _, f := range filters {
		params[f.Column] = "eq." + fmt.Sprint(f.Value)
	}
	return params
}
