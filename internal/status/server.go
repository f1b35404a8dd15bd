// Package status exposes a small operational HTTP surface for a headless bot:
// a liveness probe and a snapshot of runtime counters.
package status

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Metrics is what the bot reports about itself.
type Metrics interface {
	Uptime() time.Duration
	CacheLen() int
	InFlight() int64
}

type snapshot struct {
	Uptime       string `json:"uptime"`
	CacheEntries int    `json:"cache_entries"`
	InFlight     int64  `json:"in_flight"`
}

// NewServer returns an echo server with /healthz and /status registered.
// The caller owns Start/Shutdown.
func NewServer(m Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/status", func(c echo.Context) error {
		return c.JSON(http.StatusOK, snapshot{
			Uptime:       m.Uptime().Round(time.Second).String(),
			CacheEntries: m.CacheLen(),
			InFlight:     m.InFlight(),
		})
	})

	return e
}
