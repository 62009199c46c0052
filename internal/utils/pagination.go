package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// ParseSkipLimit reads skip/limit query parameters, clamping them to sane
// bounds.
func ParseSkipLimit(c *fiber.Ctx) (skip, limit int) {
	skip, _ = strconv.Atoi(c.Query("skip", "0"))
	limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(defaultListLimit)))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return skip, limit
}
