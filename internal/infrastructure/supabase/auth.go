package supabase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"careerpath/internal/domain/store"
)

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type gotrueSession struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	User        *gotrueUser `json:"user"`

	// sign-up without an immediate session answers with the bare user
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (s gotrueSession) identity() store.Identity {
	id := store.Identity{SessionToken: s.AccessToken, SessionTTL: s.ExpiresIn}
	if s.User != nil {
		id.ID, id.Email = s.User.ID, s.User.Email
	} else {
		id.ID, id.Email = s.ID, s.Email
	}
	return id
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) SignUp(ctx context.Context, email, password string) (store.Identity, error) {
	var out gotrueSession
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/signup",
		body:   credentials{Email: email, Password: password},
	}, &out)
	if err != nil {
		return store.Identity{}, err
	}

	ident := out.identity()
	if ident.ID == "" {
		return store.Identity{}, store.NewError("sign-up returned no user")
	}
	return ident, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (store.Identity, error) {
	var out gotrueSession
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		params: map[string]string{"grant_type": "password"},
		body:   credentials{Email: email, Password: password},
	}, &out)
	if err != nil {
		return store.Identity{}, err
	}

	ident := out.identity()
	if ident.ID == "" {
		return store.Identity{}, store.NewError("sign-in returned no user")
	}

	if c.sessions != nil && ident.SessionToken != "" {
		ttl := time.Duration(ident.SessionTTL) * time.Second
		if err := c.sessions.Remember(ctx, ident.ID, ident.SessionToken, ttl); err != nil {
			c.log.Warn("failed to remember auth session", "user_id", ident.ID, "error", err)
		}
	}
	return ident, nil
}

// SignOut ends the GoTrue session opened at the user's last sign-in. With no
// remembered session there is nothing to end.
func (c *Client) SignOut(ctx context.Context, userID string) error {
	if c.sessions == nil {
		return nil
	}
	token, ok, err := c.sessions.Forget(ctx, userID)
	if err != nil {
		c.log.Warn("failed to load auth session", "user_id", userID, "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/logout",
		bearer: token,
	}, nil)
}

func (c *Client) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	params := map[string]string{}
	if strings.TrimSpace(redirectTo) != "" {
		params["redirect_to"] = redirectTo
	}
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/recover",
		params: params,
		body:   map[string]string{"email": email},
	}, nil)
}

// UpdatePassword sets a new password for the user owning recoveryToken, the
// access token carried by the password-reset link.
func (c *Client) UpdatePassword(ctx context.Context, recoveryToken, newPassword string) error {
	if recoveryToken == "" {
		return &store.Error{Status: http.StatusUnauthorized, Message: "Auth session missing!"}
	}
	return c.do(ctx, request{
		method: http.MethodPut,
		path:   "/auth/v1/user",
		bearer: recoveryToken,
		body:   map[string]string{"password": newPassword},
	}, nil)
}
