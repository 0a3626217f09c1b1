package session

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/hkdf"
)

// CookieName is the cookie carrying the signed client ID.
const CookieName = "molinar_client"

// cookieMaxAge keeps the client ID for a year.
const cookieMaxAge = 365 * 24 * 60 * 60

const contextKeySession = "molinar_session"

// NewCookieCodec derives signing and encryption keys from secret and
// returns the codec used for the client cookie.
func NewCookieCodec(secret string) (*securecookie.SecureCookie, error) {
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("molinar client cookie"))
	hashKey := make([]byte, 64)
	blockKey := make([]byte, 32)
	if _, err := io.ReadFull(kdf, hashKey); err != nil {
		return nil, fmt.Errorf("deriving cookie hash key: %w", err)
	}
	if _, err := io.ReadFull(kdf, blockKey); err != nil {
		return nil, fmt.Errorf("deriving cookie block key: %w", err)
	}

	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(cookieMaxAge)
	return sc, nil
}

// Middleware identifies the browser by its client cookie, issuing a new
// one when it is missing or fails verification, and stores the bound
// Session in the Echo context.
func Middleware(m *Manager, codec *securecookie.SecureCookie, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID, ok := readClientID(c, codec)
			if !ok {
				clientID = uuid.NewString()
				value, err := codec.Encode(CookieName, clientID)
				if err != nil {
					return fmt.Errorf("encoding client cookie: %w", err)
				}
				c.SetCookie(&http.Cookie{
					Name:     CookieName,
					Value:    value,
					Path:     "/",
					MaxAge:   cookieMaxAge,
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			Attach(c, m.Session(clientID, Origin(c)))
			return next(c)
		}
	}
}

func readClientID(c echo.Context, codec *securecookie.SecureCookie) (string, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	var clientID string
	if err := codec.Decode(CookieName, cookie.Value, &clientID); err != nil {
		slog.Debug("rejecting client cookie", slog.Any("error", err))
		return "", false
	}
	if _, err := uuid.Parse(clientID); err != nil {
		return "", false
	}
	return clientID, true
}

// Attach binds s to the request.
func Attach(c echo.Context, s *Session) {
	c.Set(contextKeySession, s)
}

// FromContext returns the Session bound by Middleware, or nil.
func FromContext(c echo.Context) *Session {
	s, _ := c.Get(contextKeySession).(*Session)
	return s
}

// Origin is the scheme and host the request was addressed to.
func Origin(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host
}
