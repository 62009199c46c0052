// Package handlers maps HTTP requests to core operations and core outcomes
// back to status codes. No business rules live here.
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// queryUint returns a uint query parameter, or nil when absent.
func queryUint(c *fiber.Ctx, key string) *uint {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	u := uint(val)
	return &u
}
