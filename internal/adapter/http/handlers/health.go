package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/adapter/http/middleware"
)

const (
	StatusOk      = "ok"
	StatusDown    = "down"
	healthTimeout = 2 * time.Second
)

// Pinger is anything the health report can check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingerFunc adapts a plain function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	Mysql string `json:"mysql"`
	Cache string `json:"cache"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	CacheDriver       string         `json:"cache_driver"`
	Status            HealthServices `json:"status"`
}

type HealthHandler struct {
	db          Pinger
	cache       Pinger
	cacheDriver string
}

func NewHealthHandler(db Pinger, cache Pinger, cacheDriver string) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, cacheDriver: cacheDriver}
}

// CheckHealth fails only when MySQL is unreachable; a broken cache degrades
// performance, not availability.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	statusCode := http.StatusOK
	message := StatusOk

	if !ping(c.Request.Context(), h.db) {
		statusCode = http.StatusInternalServerError
		message = StatusDown
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Message:           message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	ctx := c.Request.Context()

	c.JSON(http.StatusOK, HealthAdvanced{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Language:          middleware.GetLang(c),
		CacheDriver:       h.cacheDriver,
		Status: HealthServices{
			Mysql: statusOf(ping(ctx, h.db)),
			Cache: statusOf(ping(ctx, h.cache)),
		},
	})
}

func ping(ctx context.Context, p Pinger) bool {
	if p == nil {
		return false
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	return p.PingContext(timeoutCtx) == nil
}

func statusOf(up bool) string {
	if up {
		return StatusOk
	}
	return StatusDown
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
