package projects

import (
	"sort"
	"time"

	"album-studio/internal/filter"
	"album-studio/internal/models"
)

// Query: состояние строки поиска и фильтра статуса на экране проектов.
type Query struct {
	Search string
	Status string
}

// Visible: фотограф и дизайнер видят только проекты, где они назначены
// в своей роли; администратор видит всё.
func Visible(viewer models.User, p models.Project) bool {
	switch viewer.Role {
	case models.RoleAdmin:
		return true
	case models.RolePhotographer:
		return p.PhotographerID == viewer.ID
	case models.RoleDesigner:
		return p.DesignerID == viewer.ID
	}
	return false
}

func Filter(list []models.Project, viewer models.User, q Query) []models.Project {
	return filter.Apply(list, func(p models.Project) bool {
		return Visible(viewer, p) &&
			filter.MatchesSearch(q.Search, p.Title, "\n", p.Description) &&
			filter.MatchesCategory(q.Status, p.Status)
	})
}

// CanChangeStatus: кто и куда может перевести проект.
func CanChangeStatus(viewer models.User, p models.Project, next models.ProjectStatus) bool {
	if p.Status == next || !next.Valid() {
		return false
	}

	switch viewer.Role {
	case models.RoleAdmin:
		return true
	case models.RolePhotographer:
		return p.PhotographerID == viewer.ID &&
			p.Status == models.StatusPlanning && next == models.StatusInProgress
	case models.RoleDesigner:
		return p.DesignerID == viewer.ID &&
			p.Status == models.StatusInProgress && next == models.StatusReview
	}
	return false
}

// NextStatuses: варианты для выпадающего списка смены статуса.
func NextStatuses(viewer models.User, p models.Project) []models.ProjectStatus {
	var out []models.ProjectStatus
	for _, st := range models.ProjectStatuses {
		if CanChangeStatus(viewer, p, st) {
			out = append(out, st)
		}
	}
	return out
}

type Summary struct {
	Total    int
	ByStatus map[models.ProjectStatus]int
	Overdue  int
	Upcoming []models.Project
}

// Summarize считает сводку для дашборда; Upcoming содержит ближайшие незавершённые
// дедлайны начиная с now, не больше limit.
func Summarize(list []models.Project, now time.Time, limit int) Summary {
	sum := Summary{
		Total:    len(list),
		ByStatus: make(map[models.ProjectStatus]int, len(models.ProjectStatuses)),
	}
	for _, st := range models.ProjectStatuses {
		sum.ByStatus[st] = 0
	}

	for _, p := range list {
		sum.ByStatus[p.Status]++
		if p.Status == models.StatusCompleted {
			continue
		}
		if p.Deadline.Before(now) {
			sum.Overdue++
			continue
		}
		sum.Upcoming = append(sum.Upcoming, p)
	}

	sort.SliceStable(sum.Upcoming, func(i, j int) bool {
		return sum.Upcoming[i].Deadline.Before(sum.Upcoming[j].Deadline)
	})
	if len(sum.Upcoming) > limit {
		sum.Upcoming = sum.Upcoming[:limit]
	}
	return sum
}

type Day struct {
	Date     time.Time
	Projects []models.Project
}

// Calendar группирует дедлайны месяца по дням; дни без дедлайнов опускаются.
func Calendar(list []models.Project, year int, month time.Month, loc *time.Location) []Day {
	byDay := map[int][]models.Project{}
	for _, p := range list {
		d := p.Deadline.In(loc)
		if d.Year() != year || d.Month() != month {
			continue
		}
		byDay[d.Day()] = append(byDay[d.Day()], p)
	}

	days := make([]Day, 0, len(byDay))
	for day, ps := range byDay {
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Deadline.Before(ps[j].Deadline) })
		days = append(days, Day{
			Date:     time.Date(year, month, day, 0, 0, 0, 0, loc),
			Projects: ps,
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}
