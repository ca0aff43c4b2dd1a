package handlers

import (
	"testing"

	"album-studio/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveTab(t *testing.T) {
	cases := map[string]string{
		"dashboard":    "/dashboard",
		"projects":     "/projects",
		"add-employee": "/employees/new",
		"employees":    "/employees",
		"salary":       "/salary",
		"upload":       "/upload",
		"gallery":      "/upload",
		"design":       "/upload",
		"templates":    "/upload",
		"calendar":     "/calendar",
		"script":       "/script",
		"":             "/dashboard",
		"settings":     "/dashboard",
	}
	for id, want := range cases {
		assert.Equal(t, want, ResolveTab(id).Path, id)
	}
}

func TestNavHidesAdminTabs(t *testing.T) {
	admin := navFor(models.User{Role: models.RoleAdmin})
	photographer := navFor(models.User{Role: models.RolePhotographer})

	assert.Len(t, admin, len(tabs))
	for _, tab := range photographer {
		assert.False(t, tab.AdminOnly, tab.ID)
	}
	assert.Less(t, len(photographer), len(admin))
}

func TestContactLink(t *testing.T) {
	assert.Equal(t, "https://t.me/jdoe", ContactLink(models.User{Telegram: "jdoe", Email: "j@x.io"}))
	assert.Equal(t, "mailto:j@x.io", ContactLink(models.User{Email: "j@x.io"}))
	assert.Empty(t, ContactLink(models.User{}))
}

func TestMaskLogin(t *testing.T) {
	assert.Equal(t, "jo***@company.com", maskLogin("john@company.com"))
	assert.Equal(t, "a***@x.io", maskLogin("a@x.io"))
	assert.Equal(t, "ad***", maskLogin("admin"))
	assert.Equal(t, "***", maskLogin("ab"))
}
