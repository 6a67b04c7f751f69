package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/yescribe/transcriptor/usecase"
)

// InitRoutes initializes the ops endpoints served beside the polling loop
func InitRoutes(e *echo.Echo, stats *usecase.Stats, logger *zap.Logger) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "transcriptor-bot",
		})
	})

	e.GET("/status", func(c echo.Context) error {
		return c.JSON(http.StatusOK, stats.Snapshot())
	})
}
