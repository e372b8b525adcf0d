package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"careerpath/internal/domain/store"
	"careerpath/internal/pkg/logger"

	"github.com/gofiber/fiber/v3/client"
)

type Config struct {
	URL     string
	Key     string
	Timeout time.Duration
}

// SessionStore keeps the auth service's own session token per user so that
// a later sign-out can end it.
type SessionStore interface {
	Remember(ctx context.Context, userID, token string, ttl time.Duration) error
	Forget(ctx context.Context, userID string) (string, bool, error)
}

// Client talks to a Supabase project: GoTrue for auth and PostgREST for
// tables. It implements store.Auth and store.Tables.
type Client struct {
	http     *client.Client
	key      string
	sessions SessionStore
	log      *logger.Logger
}

var errMissingConfig = errors.New("supabase url and key are required")

func New(cfg Config, sessions SessionStore, log *logger.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	key := strings.TrimSpace(cfg.Key)
	if base == "" || key == "" {
		return nil, errMissingConfig
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	hc := client.New().
		SetBaseURL(base).
		SetTimeout(cfg.Timeout).
		SetHeader("apikey", key).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:     hc,
		key:      key,
		sessions: sessions,
		log:      log.With("component", "supabase"),
	}, nil
}

type request struct {
	method string
	path   string
	bearer string
	params map[string]string
	header map[string]string
	body   any
}

// do sends r and decodes a successful JSON response into out (when out is
// non-nil). Non-2xx answers come back as *store.Error.
func (c *Client) do(ctx context.Context, r request, out any) error {
	bearer := r.bearer
	if bearer == "" {
		bearer = c.key
	}
	header := map[string]string{"Authorization": "Bearer " + bearer}
	for k, v := range r.header {
		header[k] = v
	}

	cfg := client.Config{
		Ctx:    ctx,
		Header: header,
		Param:  r.params,
		Body:   r.body,
	}

	var (
		resp *client.Response
		err  error
	)
	switch r.method {
	case http.MethodGet:
		resp, err = c.http.Get(r.path, cfg)
	case http.MethodPost:
		resp, err = c.http.Post(r.path, cfg)
	case http.MethodPut:
		resp, err = c.http.Put(r.path, cfg)
	case http.MethodPatch:
		resp, err = c.http.Patch(r.path, cfg)
	case http.MethodDelete:
		resp, err = c.http.Delete(r.path, cfg)
	default:
		return fmt.Errorf("unsupported method %s", r.method)
	}
	if err != nil {
		c.log.Warn("request failed", "method", r.method, "path", r.path, "error", err)
		return &store.Error{Message: err.Error()}
	}
	defer resp.Close()

	status := resp.StatusCode()
	c.log.Debug("request done", "method", r.method, "path", r.path, "status", status)

	body := resp.Body()
	if status >= http.StatusBadRequest {
		return decodeError(status, body)
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &store.Error{Status: status, Message: "unexpected response from data service"}
	}
	return nil
}

type apiError struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	ErrorName        string `json:"error"`
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
}

func decodeError(status int, body []byte) *store.Error {
	e := &store.Error{Status: status}

	var ae apiError
	if err := json.Unmarshal(body, &ae); err == nil {
		for _, m := range []string{ae.Message, ae.Msg, ae.ErrorDescription, ae.ErrorName} {
			if strings.TrimSpace(m) != "" {
				e.Message = m
				break
			}
		}
		switch code := ae.Code.(type) {
		case string:
			e.Code = code
		default:
			e.Code = ae.ErrorCode
		}
	}

	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}
