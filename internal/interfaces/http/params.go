package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/finance"
)

// queryPeriod lee year y month de la query; si faltan, el mes en curso.
func queryPeriod(c *fiber.Ctx) (finance.Period, bool) {
	now := time.Now()
	p := finance.Period{
		Year:  c.QueryInt("year", now.Year()),
		Month: c.QueryInt("month", int(now.Month())),
	}
	return p, p.Valid()
}

// resolveCooperativeID determina sobre qué cooperativa opera la petición:
// los socios quedan fijados a la suya; los demás roles pueden indicar otra
// con ?cooperativeId=.
func resolveCooperativeID(c *fiber.Ctx) string {
	own := GetCooperativeID(c)
	if GetRole(c) == entity.RoleSocio {
		return own
	}
	if requested := c.Query("cooperativeId"); requested != "" {
		return requested
	}
	return own
}
