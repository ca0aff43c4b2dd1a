package handlers

import (
	"net/http"

	"album-studio/internal/middleware"

	"github.com/gin-gonic/gin"
)

// render: обёртка над c.HTML, которая во все шаблоны прокидывает
// текущего пользователя и меню.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if u, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = u
		data["IsAdmin"] = u.IsAdmin()
		data["Nav"] = navFor(u)
	}
	if _, ok := data["error"]; !ok {
		data["error"] = ""
	}

	c.HTML(status, tmpl, data)
}

// Msg: конверт JSON-ответов.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

func jsonObj(c *gin.Context, obj any) {
	c.JSON(http.StatusOK, Msg{Success: true, Obj: obj})
}

func jsonError(c *gin.Context, status int, msg string) {
	c.JSON(status, Msg{Success: false, Msg: msg})
}
