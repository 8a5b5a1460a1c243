package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"scheduleboard/server/internal/auth"
	"scheduleboard/server/internal/models"
)

const sessionKey = "session"

// Login checks the submitted credentials and starts a session
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to parse login request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.auth.Check(req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		h.countLogin("incomplete")
		c.JSON(http.StatusBadRequest, gin.H{"error": "사용자명과 비밀번호를 모두 입력해주세요."})
		return
	case err != nil:
		h.logger.WithFields(logrus.Fields{
			"username": req.Username,
			"reason":   err.Error(),
		}).Warn("Rejected login")
		h.countLogin("rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "사용자명 또는 비밀번호가 올바르지 않습니다."})
		return
	}

	session := h.sessions.Create(strings.TrimSpace(req.Username))
	h.countLogin("success")
	h.logger.WithField("username", session.Username).Info("User logged in")

	maxAge := int(session.ExpiresAt.Sub(session.CreatedAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, session.Token, maxAge, "/", "", h.opts.CookieSecure, true)
	c.JSON(http.StatusOK, session)
}

// Logout ends the current session
func (h *Handler) Logout(c *gin.Context) {
	if token := sessionToken(c, h.opts.CookieName); token != "" {
		h.sessions.Delete(token)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, "", -1, "/", "", h.opts.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// GetSession returns the user of the current session
func (h *Handler) GetSession(c *gin.Context) {
	session, _ := c.Get(sessionKey)
	c.JSON(http.StatusOK, session)
}

// RequireSession rejects requests without a live session
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, h.opts.CookieName)
		session, ok := h.sessions.Get(token)
		if token == "" || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

// sessionToken reads the session cookie, falling back to a bearer token
func sessionToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func (h *Handler) countLogin(result string) {
	if h.metrics != nil {
		h.metrics.LoginAttempt(result)
	}
}
