package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	DefaultAccessTTL  = time.Hour
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrNoSecret     = errors.New("signing secret is empty")
)

type Claims struct {
	UserID string `json:"userId"`

	jwtlib.RegisteredClaims
}

// Signer is one signing context: a secret and the validity window of every
// token it mints. Access and refresh tokens each get their own Signer so a
// token minted by one is never accepted by the other.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Signer) Sign(userID string) (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", ErrNoSecret
	}
	if strings.TrimSpace(userID) == "" || s.ttl <= 0 {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

func (s *Signer) Verify(tokenString string) (Claims, error) {
	if s == nil || len(s.secret) == 0 {
		return Claims{}, ErrNoSecret
	}

	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid || strings.TrimSpace(c.UserID) == "" {
		return Claims{}, ErrTokenInvalid
	}

	return c, nil
}

type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service struct {
	Access  *Signer
	Refresh *Signer
}

func NewService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Service {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &Service{
		Access:  NewSigner(accessSecret, accessTTL),
		Refresh: NewSigner(refreshSecret, refreshTTL),
	}
}

func (s *Service) Issue(userID string) (Pair, error) {
	access, err := s.Access.Sign(userID)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.Refresh.Sign(userID)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) VerifyAccess(tokenString string) (Claims, error) {
	return s.Access.Verify(tokenString)
}

// RefreshAccess mints a new access token for the subject of a valid refresh
// token. The refresh token itself is left untouched and stays valid until it
// expires.
func (s *Service) RefreshAccess(refreshToken string) (string, error) {
	claims, err := s.Refresh.Verify(refreshToken)
	if err != nil {
		return "", err
	}
	return s.Access.Sign(claims.UserID)
}
