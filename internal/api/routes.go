package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Checker-Finance/trade-query/internal/dataset"
)

// RegisterRoutes wires the trade query endpoints plus health and metrics.
func RegisterRoutes(app *fiber.App, logger *zap.Logger, snapshot *dataset.Snapshot, h *TradeHandler) {
	app.Use(RequestLogger(logger))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Health check. The dataset is plain process memory, so there is nothing
	// to probe beyond reporting which snapshot this instance serves.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"dataset": fiber.Map{
				"id":           snapshot.ID.String(),
				"size":         snapshot.Size(),
				"generated_at": snapshot.GeneratedAt,
			},
		})
	})

	app.Get("/trades", h.ListTrades)
	app.Get("/trades/search", h.SearchTrades)
	app.Get("/trades/id/:trade_id", h.GetTradeByID)
}
