package filter

import "strings"

// All: значение фильтра «без ограничения».
const All = "all"

// MatchesSearch: регистронезависимое вхождение term в склейку полей.
// Пустой term совпадает со всем.
func MatchesSearch(term string, fields ...string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(strings.Join(fields, "")), strings.ToLower(term))
}

// MatchesCategory: точное совпадение; "" и "all" пропускают всё.
func MatchesCategory[T ~string](selected string, value T) bool {
	if selected == "" || selected == All {
		return true
	}
	return string(value) == selected
}

// Apply оставляет элементы, для которых keep вернул true, сохраняя порядок.
func Apply[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
