package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/equipment-rental/internal/config"
	"github.com/iliyamo/equipment-rental/internal/middleware"
	"github.com/iliyamo/equipment-rental/internal/store"
	"github.com/iliyamo/equipment-rental/internal/utils"
)

// AuthHandler bundles dependencies for the login/logout endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Store *store.Store
	Log   *zap.Logger
}

func NewAuthHandler(cfg config.Config, st *store.Store, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Store: st, Log: log}
}

// ----- DTOs -----

type loginReq struct {
	Email      string `json:"email"`
	Credential string `json:"credential"`
	Password   string `json:"password"` // legacy field name, same meaning
}

// credential returns whichever credential field the client populated.
func (r loginReq) credential() string {
	if r.Credential != "" {
		return r.Credential
	}
	return r.Password
}

// Login verifies the credential pair and establishes a fresh session.
// Unknown emails and wrong credentials produce the same 401 so the
// response does not reveal which emails exist.  A prior session attached
// to the presented cookie is destroyed first; re-login overwrites.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No data provided"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	cred := req.credential()
	if req.Email == "" || cred == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password required"})
	}

	u, err := h.Store.UserByEmail(req.Email)
	if err != nil || !utils.VerifyPassword(u.CredentialHash, cred) {
		h.Log.Warn("failed login attempt", zap.String("email", req.Email))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	// Drop any session the client still references before issuing a new one.
	h.clearPresentedSession(c)

	sess, err := h.Store.CreateSession(u, time.Duration(h.Cfg.SessionTTLMin)*time.Minute)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	tok, err := utils.NewSessionToken(h.Cfg.SessionSecret, sess.ID, u.ID, u.Role, time.Duration(h.Cfg.SessionTTLMin)*time.Minute)
	if err != nil {
		h.Store.DeleteSession(sess.ID)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.Log.Info("user logged in", zap.Int64("user_id", u.ID), zap.String("role", u.Role))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"user":    u.Public(),
	})
}

// Logout destroys the current session.  It is idempotent: a missing,
// invalid or already-destroyed session still yields a 200 response.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearPresentedSession(c)
	// Expire the cookie client-side as well.
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

// clearPresentedSession deletes the server-side session referenced by the
// request cookie, if the cookie resolves to one.
func (h *AuthHandler) clearPresentedSession(c echo.Context) {
	cookie, err := c.Cookie(middleware.SessionCookie)
	if err != nil || cookie.Value == "" {
		return
	}
	sid, err := utils.ParseSessionToken(h.Cfg.SessionSecret, cookie.Value)
	if err != nil {
		return
	}
	h.Store.DeleteSession(sid)
}
