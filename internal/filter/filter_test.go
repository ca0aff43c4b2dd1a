package filter

import (
	"testing"

	"album-studio/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMatchesSearch(t *testing.T) {
	tests := []struct {
		name   string
		term   string
		fields []string
		want   bool
	}{
		{"empty term", "", []string{"anything"}, true},
		{"blank term", "   ", []string{"anything"}, true},
		{"case insensitive", "JOHN", []string{"John Doe", "john@company.com"}, true},
		{"cyrillic case", "свадеб", []string{"Свадебный альбом"}, true},
		{"second field", "marketing", []string{"Jane", "jane@company.com", "Marketing"}, true},
		{"no match", "zzz", []string{"John", "Doe"}, false},
		{"no fields", "a", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesSearch(tt.term, tt.fields...))
		})
	}
}

func TestMatchesCategory(t *testing.T) {
	assert.True(t, MatchesCategory("", models.RoleAdmin))
	assert.True(t, MatchesCategory(All, models.StatusReview))
	assert.True(t, MatchesCategory("designer", models.RoleDesigner))
	assert.False(t, MatchesCategory("designer", models.RolePhotographer))
	assert.False(t, MatchesCategory("Review", models.StatusReview))
}

func TestApply(t *testing.T) {
	got := Apply([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, got)
	assert.Empty(t, Apply([]string(nil), func(string) bool { return true }))
}
