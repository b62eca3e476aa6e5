package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/equipment-rental/internal/model"
	"github.com/iliyamo/equipment-rental/internal/store"
	"github.com/iliyamo/equipment-rental/internal/utils"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "session_token"

// sessionKey is the context key under which the resolved session is stored.
const sessionKey = "session"

// SessionAuth returns an Echo middleware that resolves the session cookie
// into a live server-side session record and injects it into the request
// context.  The cookie value is a signed JWT whose "sid" claim references
// the record; both the signature and the record must be valid, so logout
// revokes access immediately regardless of the token's own expiry.
// Requests without a valid session are rejected with 401.
func SessionAuth(secret string, st *store.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			sid, err := utils.ParseSessionToken(secret, cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			sess, err := st.Session(sid)
			if err != nil {
				// Token is well-formed but the session was logged out,
				// expired or belongs to a previous process lifetime.
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom extracts the session stored by SessionAuth.  The second
// return value is false when no middleware ran, e.g. on public routes.
func SessionFrom(c echo.Context) (*model.Session, bool) {
	sess, ok := c.Get(sessionKey).(*model.Session)
	return sess, ok
}
