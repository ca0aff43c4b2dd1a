package handlers

import "strings"

// maskLogin прячет логин в логах: jo***@company.com.
func maskLogin(login string) string {
	runes := []rune(login)
	atIdx := strings.IndexRune(login, '@')
	if atIdx < 0 {
		if len(runes) <= 2 {
			return "***"
		}
		return string(runes[:2]) + "***"
	}
	prefix := []rune(login[:atIdx])
	domain := login[atIdx:]
	if len(prefix) <= 2 {
		return string(prefix) + "***" + domain
	}
	return string(prefix[:2]) + "***" + domain
}
