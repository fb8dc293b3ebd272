package setup

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/mira-dev/mira/frontend/internal/apiclient"
	"github.com/mira-dev/mira/frontend/internal/cache"
	"github.com/mira-dev/mira/frontend/internal/flash"
	"github.com/mira-dev/mira/frontend/internal/handler"
	"github.com/mira-dev/mira/frontend/internal/markdown"
	"github.com/mira-dev/mira/frontend/templates"
	"github.com/mira-dev/mira/shared/config"
	"github.com/mira-dev/mira/shared/jwt"
	"github.com/mira-dev/mira/shared/logger"
)

const (
	templateDirEnv         = "MIRA_TEMPLATE_DIR"
	templateReloadInterval = 5 * time.Second
	cacheSweepInterval     = time.Minute
	flashLifetime          = 10 * time.Minute
	tokenTTL               = 30 * 24 * time.Hour
)

type Dependencies struct {
	Handler    *handler.Handler
	Jwt        jwt.JwtService
	Public     config.Public
	CancelFunc context.CancelFunc
	closers    []io.Closer
}

// Close stops background work and releases connections.
func (d *Dependencies) Close() {
	d.CancelFunc()
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			logger.Log.Warn("closing dependency", "error", err)
		}
	}
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	ctx, cancel := context.WithCancel(context.Background())
	deps := &Dependencies{Public: cfg.Public, CancelFunc: cancel}

	store, err := newCache(ctx, cfg, deps)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	apiClient := apiclient.New(apiclient.Config{
		BaseURL: cfg.Public.APIBaseURL,
		Timeout: cfg.Public.RequestTimeout,
		Breaker: apiclient.BreakerConfig{
			MaxFailures: cfg.Public.Breaker.MaxFailures,
			OpenTimeout: cfg.Public.Breaker.OpenTimeout,
		},
		CacheTTL: cfg.Public.Cache.TTL,
	}, store)

	tmpls, err := loadTemplates()
	if err != nil {
		deps.Close()
		return nil, err
	}

	flashes := flash.New(cfg.Public.SecureCookies, flashLifetime)
	deps.Handler = handler.New(tmpls, cfg.Public, markdown.New(), apiClient, flashes)
	startTemplateReloader(ctx, deps.Handler)

	deps.Jwt = jwt.New(cfg.JwtKey(), tokenTTL)
	return deps, nil
}

// newCache picks Redis when an address is configured, process memory otherwise.
func newCache(ctx context.Context, cfg *config.Config, deps *Dependencies) (cache.Store, error) {
	if addr := cfg.Public.Cache.RedisAddr; addr != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		r, err := cache.NewRedis(pingCtx, addr, cfg.RedisPassword(), cfg.Public.Cache.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
		}
		deps.closers = append(deps.closers, r)
		logger.Log.Info("profile cache backed by redis", "addr", addr)
		return r, nil
	}
	m := cache.NewMemory()
	m.StartSweeper(ctx, cacheSweepInterval)
	return m, nil
}

func loadTemplates() (map[string]*template.Template, error) {
	if dir := os.Getenv(templateDirEnv); dir != "" {
		return templates.Load(os.DirFS(dir))
	}
	return templates.Load(templates.FS())
}

// startTemplateReloader re-reads templates from disk during development.
func startTemplateReloader(ctx context.Context, h *handler.Handler) {
	dir := os.Getenv(templateDirEnv)
	if dir == "" || os.Getenv("ENV") != "development" {
		return
	}
	ticker := time.NewTicker(templateReloadInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tmpls, err := templates.Load(os.DirFS(dir))
				if err != nil {
					logger.Log.Error("reloading templates", "error", err)
					continue
				}
				h.Templates = tmpls
			}
		}
	}()
}
