package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Contable-api/internal/infrastructure/metrics"
)

const (
	localRequestID       = "requestid"
	localDocumentCreated = "document_created"
	localDocumentDeleted = "document_deleted"
)

// RequestLogger registra cada petición con zerolog (método, ruta, status, latencia, request id).
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error().Err(err)
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Str("company_id", GetCompanyID(c)).
			Msg("http")
		return err
	}
}

// Metrics registra duración, peticiones en curso, documentos y rechazos en Prometheus.
// La ruta se etiqueta con el patrón registrado para no disparar la cardinalidad.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		m.InFlight(1)
		err := c.Next()
		m.InFlight(-1)

		m.RecordHTTPRequest(c.Method(), c.Route().Path, c.Response().StatusCode(), time.Since(start))
		if code := localString(c, localErrorCode); code != "" {
			m.RecordRejection(code)
		}
		if doc := localString(c, localDocumentCreated); doc != "" {
			m.RecordDocumentCreated(doc)
		}
		if doc := localString(c, localDocumentDeleted); doc != "" {
			m.RecordDocumentDeleted(doc)
		}
		return err
	}
}

func documentCreated(c *fiber.Ctx, documentType string) {
	c.Locals(localDocumentCreated, documentType)
}

func documentDeleted(c *fiber.Ctx, documentType string) {
	c.Locals(localDocumentDeleted, documentType)
}

func requestID(c *fiber.Ctx) string {
	return localString(c, localRequestID)
}
