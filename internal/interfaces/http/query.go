package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Contable-api/internal/application/dto"
)

const dateLayout = "2006-01-02"

// pageFromQuery lee limit/offset; los valores fuera de rango se corrigen en DefaultPage.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	page.DefaultPage()
	return page
}

// dateRangeFromQuery lee from/to (YYYY-MM-DD o RFC3339). Un "to" sin hora cubre el día completo.
func dateRangeFromQuery(c *fiber.Ctx) (dto.DateRange, error) {
	var rng dto.DateRange
	from, _, err := parseQueryDate(c.Query("from"))
	if err != nil {
		return rng, fmt.Errorf("from: %w", err)
	}
	to, dateOnly, err := parseQueryDate(c.Query("to"))
	if err != nil {
		return rng, fmt.Errorf("to: %w", err)
	}
	if to != nil && dateOnly {
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	if from != nil && to != nil && to.Before(*from) {
		return rng, fmt.Errorf("to debe ser posterior a from")
	}
	rng.From, rng.To = from, to
	return rng, nil
}

func parseQueryDate(s string) (*time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return &t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, false, fmt.Errorf("fecha inválida %q", s)
	}
	return &t, false, nil
}

// badQuery responde 400 por un parámetro de consulta inválido.
func badQuery(c *fiber.Ctx, err error) error {
	return reject(c, fiber.StatusBadRequest, "INVALID_QUERY", err.Error())
}

// idParam rechaza con 400 un :id que no es UUID antes de llegar al repositorio.
func idParam(c *fiber.Ctx) error {
	if err := uuid.Validate(c.Params("id")); err != nil {
		return reject(c, fiber.StatusBadRequest, "INVALID_ID", fmt.Sprintf("id inválido %q", c.Params("id")))
	}
	return c.Next()
}
