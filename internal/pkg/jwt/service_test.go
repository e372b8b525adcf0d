package jwt

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newTestService(clock *fakeClock) *Service {
	svc := NewService("access-secret", "refresh-secret", 0, 0)
	svc.Access.now = clock.Now
	svc.Refresh.now = clock.Now
	return svc
}

func TestService_Issue_EmbedsUserID(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(clock)

	pair, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}

	c, err := svc.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if c.UserID != "user-123" {
		t.Fatalf("expected userId user-123, got %q", c.UserID)
	}
}

func TestSigner_ValidityWindows(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		signer  func(*Service) *Signer
		elapsed time.Duration
		wantErr error
	}{
		{"access at 59m", func(s *Service) *Signer { return s.Access }, 59 * time.Minute, nil},
		{"access at 61m", func(s *Service) *Signer { return s.Access }, 61 * time.Minute, ErrTokenExpired},
		{"refresh at 6d", func(s *Service) *Signer { return s.Refresh }, 6 * 24 * time.Hour, nil},
		{"refresh at 8d", func(s *Service) *Signer { return s.Refresh }, 8 * 24 * time.Hour, ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{t: start}
			svc := newTestService(clock)
			signer := tt.signer(svc)

			tok, err := signer.Sign("u1")
			if err != nil {
				t.Fatalf("sign: %v", err)
			}

			clock.t = start.Add(tt.elapsed)
			_, err = signer.Verify(tok)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("expected token to be accepted, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestService_TokensDoNotCrossVerify(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestService(clock)

	pair, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.VerifyAccess(pair.RefreshToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("refresh token accepted as access token: %v", err)
	}
	if _, err := svc.RefreshAccess(pair.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("access token accepted as refresh token: %v", err)
	}
}

func TestService_RefreshAccess(t *testing.T) {
	start := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: start}
	svc := newTestService(clock)

	pair, err := svc.Issue("u-42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	clock.t = start.Add(3 * time.Hour)
	access, err := svc.RefreshAccess(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	c, err := svc.VerifyAccess(access)
	if err != nil {
		t.Fatalf("verify refreshed access: %v", err)
	}
	if c.UserID != "u-42" {
		t.Fatalf("expected u-42, got %q", c.UserID)
	}

	// the refresh token stays usable after minting
	if _, err := svc.RefreshAccess(pair.RefreshToken); err != nil {
		t.Fatalf("refresh token should stay valid: %v", err)
	}
}

func TestSigner_RejectsGarbageAndWrongAlg(t *testing.T) {
	svc := NewService("a", "b", time.Hour, time.Hour)

	for _, tok := range []string{"", "abc", "a.b.c", "eyJhbGciOiJub25lIn0.eyJ1c2VySWQiOiJ1MSJ9."} {
		if _, err := svc.VerifyAccess(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("token %q: expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}

func TestSigner_EmptySecret(t *testing.T) {
	s := NewSigner("", time.Hour)
	if _, err := s.Sign("u1"); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
}
