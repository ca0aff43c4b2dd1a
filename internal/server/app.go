package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"album-studio/internal/config"
	"album-studio/internal/database"
	"album-studio/internal/handlers"
	"album-studio/internal/jobs"
	"album-studio/internal/logger"
	"album-studio/internal/projects"
	"album-studio/internal/registry"
	"album-studio/internal/staging"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	sweepSpec       = "@every 1m"
	shutdownTimeout = 5 * time.Second
)

// App собирает все зависимости панели: базу, реестр, проекты, стейджер
// загрузок, планировщик и HTTP-роутер.
type App struct {
	cfg       *config.Config
	db        *gorm.DB
	store     *projects.Store
	stager    *staging.Stager
	scheduler *jobs.Scheduler
	engine    *gin.Engine
}

func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg.Debug)
	if err != nil {
		return nil, err
	}

	staff := database.DefaultStaff()
	if cfg.SeedFile != "" {
		extra, err := database.LoadStaffFile(cfg.SeedFile)
		if err != nil {
			_ = database.Close(db)
			return nil, err
		}
		staff = append(staff, extra...)
	}
	if err := database.SeedStaff(db, staff, cfg.PasswordHashCost); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("seed staff: %w", err)
	}

	reg := registry.New(db, registry.WithHashCost(cfg.PasswordHashCost))
	store := projects.NewStore(db)
	auditor := database.NewAuditor(db)

	// стейджеру нужен колбэк хендлеров, а хендлерам нужен стейджер
	var h *handlers.Handlers
	stager := staging.New(staging.Options{
		Tick:       cfg.UploadTick,
		MaxSize:    cfg.UploadMaxSize,
		MaxPreview: cfg.UploadMaxPreview,
		OnComplete: func(f staging.File) { h.AttachStaged(f) },
	})
	h = handlers.New(handlers.Deps{
		Registry: reg,
		Projects: store,
		Stager:   stager,
		Audit:    auditor,
	})

	engine, err := NewRouter(cfg, reg, h)
	if err != nil {
		stager.Close()
		_ = database.Close(db)
		return nil, err
	}

	scheduler := jobs.NewScheduler()
	if err := scheduler.Add(sweepSpec, jobs.NewStagingSweepJob(stager, cfg.UploadRetention)); err != nil {
		stager.Close()
		_ = database.Close(db)
		return nil, err
	}

	return &App{
		cfg:       cfg,
		db:        db,
		store:     store,
		stager:    stager,
		scheduler: scheduler,
		engine:    engine,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.engine
}

// Run обслуживает HTTP до отмены ctx, затем корректно останавливается.
func (a *App) Run(ctx context.Context) error {
	a.scheduler.Start()
	defer a.Close()

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("starting server on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *App) Close() {
	a.scheduler.Stop()
	a.stager.Close()
	if err := database.Close(a.db); err != nil {
		logger.Warningf("close db: %v", err)
	}
}
