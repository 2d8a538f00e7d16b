package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Checker-Finance/trade-query/internal/query"
	"github.com/Checker-Finance/trade-query/pkg/model"
)

// TradeQuerier defines the read operations the handler needs. ByID reports
// a miss as query.ErrTradeNotFound; any other error maps to a 500.
type TradeQuerier interface {
	List(f query.Filter, p query.Page) query.Result
	ByID(tradeID string) (*model.Trade, error)
	Search(q string, p query.Page) query.Result
}

// TradeHandler handles the read-only trade query endpoints.
type TradeHandler struct {
	logger *zap.Logger
	engine TradeQuerier
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(logger *zap.Logger, engine TradeQuerier) *TradeHandler {
	return &TradeHandler{
		logger: logger,
		engine: engine,
	}
}

// ListTrades handles GET /trades.
func (h *TradeHandler) ListTrades(c *fiber.Ctx) error {
	p, err := parsePage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	f, err := parseFilter(c)
	if err != nil {
		h.logger.Warn("trades.list.bad_filter", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(h.engine.List(f, p))
}

// GetTradeByID handles GET /trades/id/:trade_id.
func (h *TradeHandler) GetTradeByID(c *fiber.Ctx) error {
	tradeID := c.Params("trade_id")

	trade, err := h.engine.ByID(tradeID)
	if err != nil {
		if errors.Is(err, query.ErrTradeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trade not found"})
		}
		h.logger.Error("trades.get_by_id.failed",
			zap.String("trade_id", tradeID),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(trade)
}

// SearchTrades handles GET /trades/search.
func (h *TradeHandler) SearchTrades(c *fiber.Ctx) error {
	p, err := parsePage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(h.engine.Search(c.Query("q"), p))
}
