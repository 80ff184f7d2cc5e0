package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const DefaultCookieName = "session"

// CookieStore keeps the whole session client side in an HMAC signed cookie.
// A missing, malformed or forged cookie loads as the anonymous session.
type CookieStore struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func NewCookieStore(secret []byte, secure bool) (*CookieStore, error) {
	if len(secret) == 0 {
		return nil, errors.New("session secret is empty")
	}
	return &CookieStore{Secret: secret, CookieName: DefaultCookieName, Secure: secure}, nil
}

type claims struct {
	Session
	jwt.RegisteredClaims
}

func (s *CookieStore) Load(c echo.Context) (Session, error) {
	ck, err := c.Cookie(s.CookieName)
	if err != nil || ck.Value == "" {
		return Session{}, nil
	}

	var cl claims
	token, err := jwt.ParseWithClaims(ck.Value, &cl, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Session{}, nil
	}
	return cl.Session, nil
}

func (s *CookieStore) Save(c echo.Context, sess Session) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Session:          sess,
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(time.Now())},
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	c.SetCookie(s.cookie(signed, time.Time{}))
	return nil
}

func (s *CookieStore) Clear(c echo.Context) error {
	c.SetCookie(s.cookie("", time.Unix(0, 0)))
	return nil
}

func (s *CookieStore) cookie(value string, expires time.Time) *http.Cookie {
	ck := &http.Cookie{
		Name:     s.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if !expires.IsZero() {
		ck.Expires = expires
		ck.MaxAge = -1
	}
	return ck
}
