// Package http is the HTTP JSON transport for the booking service.
package http

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// NewServer builds the echo instance with middleware, API routes, a health
// endpoint and, when staticDir exists, the static booking frontend.
func NewServer(h *Handler, staticDir string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(Recovery(log))
	e.Use(echomw.RequestID())
	e.Use(Logger(log))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Register(e)

	if staticDir != "" {
		if _, err := os.Stat(staticDir); err == nil {
			e.Static("/", staticDir)
		} else {
			log.Warn().Str("dir", staticDir).Msg("static dir missing, frontend not served")
		}
	}

	return e
}
