package handlers

import (
	"time"

	"album-studio/internal/database"
	"album-studio/internal/projects"
	"album-studio/internal/registry"
	"album-studio/internal/staging"
)

// Handlers держит всё состояние панели; глобальных переменных нет.
type Handlers struct {
	registry *registry.Registry
	projects *projects.Store
	stager   *staging.Stager
	audit    *database.Auditor
	now      func() time.Time
}

type Deps struct {
	Registry *registry.Registry
	Projects *projects.Store
	Stager   *staging.Stager
	Audit    *database.Auditor
	Now      func() time.Time
}

func New(d Deps) *Handlers {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Handlers{
		registry: d.Registry,
		projects: d.Projects,
		stager:   d.Stager,
		audit:    d.Audit,
		now:      now,
	}
}
