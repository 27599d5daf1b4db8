package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthCtrl struct {
	db       *gorm.DB
	provider string
	sessions func() int
	log      *zap.Logger
	started  time.Time
}

// NewHealthCtrl reports on db, the configured AI provider and the number of
// loaded client sessions. db may be nil for ephemeral runs.
func NewHealthCtrl(db *gorm.DB, provider string, sessions func() int, log *zap.Logger) *HealthCtrl {
	return &HealthCtrl{db: db, provider: provider, sessions: sessions, log: log, started: time.Now()}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{OK: true, Err: "in-memory storage"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.pingDB(ctx)
	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
		h.log.Warn("health check failed", zap.String("database", db.Err))
	}
	loaded := 0
	if h.sessions != nil {
		loaded = h.sessions()
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": db.OK},
		"uptime_sec": int(time.Since(h.started).Seconds()),
		"checks": map[string]any{
			"database": db,
		},
		"ai_provider": h.provider,
		"sessions":    loaded,
		"time":        time.Now().Format(time.RFC3339),
	})
}
