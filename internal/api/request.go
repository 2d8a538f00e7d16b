package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/Checker-Finance/trade-query/internal/query"
)

// Timestamp layouts accepted for the start/end query parameters.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parsePage extracts page, limit and sort with the documented defaults
// (page=1, limit=4, sort=desc).
func parsePage(c *fiber.Ctx) (query.Page, error) {
	page, err := parsePositiveInt(c, "page", query.DefaultPage)
	if err != nil {
		return query.Page{}, err
	}
	limit, err := parsePositiveInt(c, "limit", query.DefaultLimit)
	if err != nil {
		return query.Page{}, err
	}
	return query.Page{
		Page:  page,
		Limit: limit,
		Sort:  c.Query("sort", query.SortDesc),
	}, nil
}

// parseFilter extracts the optional trade predicates from the query string.
func parseFilter(c *fiber.Ctx) (query.Filter, error) {
	var f query.Filter

	if v := c.Query("asset_class"); v != "" {
		f.AssetClass = &v
	}
	if v := c.Query("trade_type"); v != "" {
		f.TradeType = &v
	}
	if v := c.Query("start"); v != "" {
		t, err := parseTimestamp("start", v)
		if err != nil {
			return query.Filter{}, err
		}
		f.Start = &t
	}
	if v := c.Query("end"); v != "" {
		t, err := parseTimestamp("end", v)
		if err != nil {
			return query.Filter{}, err
		}
		f.End = &t
	}
	if v := c.Query("min_price"); v != "" {
		d, err := parsePrice("min_price", v)
		if err != nil {
			return query.Filter{}, err
		}
		f.MinPrice = &d
	}
	if v := c.Query("max_price"); v != "" {
		d, err := parsePrice("max_price", v)
		if err != nil {
			return query.Filter{}, err
		}
		f.MaxPrice = &d
	}

	return f, nil
}

func parsePositiveInt(c *fiber.Ctx, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if v < 1 {
		return 0, fmt.Errorf("%s must be >= 1", name)
	}
	return v, nil
}

func parseTimestamp(name, raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s is not a valid timestamp", name)
}

func parsePrice(name, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s must be a number", name)
	}
	return d, nil
}
