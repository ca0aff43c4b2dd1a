package middleware

import (
	"album-studio/internal/logger"
	"album-studio/internal/models"
	"album-studio/internal/registry"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionUserKey = "user_id"
	ctxSession     = "Session"
	ctxCurrentUser = "CurrentUser"
)

// LoadSession восстанавливает registry.Session из cookie. Если пользователя
// удалили, cookie очищается.
func LoadSession(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		uid, _ := sess.Get(sessionUserKey).(string)

		s, err := reg.Resume(c.Request.Context(), uid)
		if err != nil {
			logger.Warningf("resume session %s: %v", uid, err)
			s = reg.NewSession()
		}
		if uid != "" && !s.IsAuthenticated() {
			sess.Clear()
			_ = sess.Save()
		}

		c.Set(ctxSession, s)
		if u := s.User(); u != nil {
			c.Set(ctxCurrentUser, *u)
		}
		c.Next()
	}
}

// CurrentSession никогда не возвращает nil.
func CurrentSession(c *gin.Context) *registry.Session {
	if v, ok := c.Get(ctxSession); ok {
		if s, ok := v.(*registry.Session); ok {
			return s
		}
	}
	return &registry.Session{}
}

func CurrentUser(c *gin.Context) (models.User, bool) {
	if v, ok := c.Get(ctxCurrentUser); ok {
		if u, ok := v.(models.User); ok {
			return u, true
		}
	}
	return models.User{}, false
}

// SaveSession переносит состояние registry.Session в cookie.
func SaveSession(c *gin.Context, s *registry.Session) error {
	sess := sessions.Default(c)
	if s.IsAuthenticated() {
		sess.Set(sessionUserKey, s.UserID())
		c.Set(ctxCurrentUser, *s.User())
	} else {
		sess.Clear()
		c.Set(ctxCurrentUser, nil)
	}
	c.Set(ctxSession, s)
	return sess.Save()
}
