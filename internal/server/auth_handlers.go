// file: internal/server/auth_handlers.go
// version: 1.2.0
// guid: 2d3e4f5a-6b7c-4d8e-9f0a-1b2c3d4e5f6a

package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Laiba-Aqib/Movie-streaming-platform/internal/server/middleware"
)

// sessionTTL is how long a login session stays valid.
const sessionTTL = 7 * 24 * time.Hour

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// register handles POST /api/v1/auth/register
func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleBindError(c, err)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" {
		RespondWithValidationError(c, "username/email", "cannot be blank")
		return
	}
	if len(req.Password) < 8 {
		RespondWithValidationError(c, "password", "must be at least 8 characters")
		return
	}
	if !strings.Contains(req.Email, "@") {
		RespondWithValidationError(c, "email", "invalid address")
		return
	}

	if existing, err := s.store.GetUserByEmail(req.Email); err != nil {
		RespondWithInternalError(c, "failed to check existing users")
		return
	} else if existing != nil {
		RespondWithConflict(c, "email already registered")
		return
	}
	if existing, err := s.store.GetUserByUsername(req.Username); err != nil {
		RespondWithInternalError(c, "failed to check existing users")
		return
	} else if existing != nil {
		RespondWithConflict(c, "username already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondWithInternalError(c, "failed to hash password")
		return
	}

	user, err := s.store.CreateUser(req.Username, req.Email, string(hash))
	if err != nil {
		RespondWithInternalError(c, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// login handles POST /api/v1/auth/login
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleBindError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		RespondWithInternalError(c, "failed to look up user")
		return
	}
	// Same response for unknown email and wrong password
	if user == nil {
		RespondWithUnauthorized(c, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		RespondWithUnauthorized(c, "invalid credentials")
		return
	}
	if user.Status != "" && user.Status != "active" {
		RespondWithForbidden(c, "account disabled")
		return
	}

	session, err := s.store.CreateSession(user.ID, c.ClientIP(), c.Request.UserAgent(), sessionTTL)
	if err != nil {
		RespondWithInternalError(c, "failed to create session")
		return
	}

	setSessionCookie(c, session.ID, int(sessionTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"token":      session.ID,
		"expires_at": session.ExpiresAt,
		"user":       user,
	})
}

// logout handles POST /api/v1/auth/logout
func (s *Server) logout(c *gin.Context) {
	token := middleware.SessionTokenFromRequest(c)
	if token != "" {
		if err := s.store.RevokeSession(token); err != nil {
			RespondWithInternalError(c, "failed to revoke session")
			return
		}
	}

	setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// currentUser handles GET /api/v1/auth/me
func (s *Server) currentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		RespondWithUnauthorized(c, "authentication required")
		return
	}
	c.JSON(http.StatusOK, user)
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", false, true)
}
