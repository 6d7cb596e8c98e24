package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DBProbe is the slice of the postgres wrapper the readiness probe needs:
// connectivity plus the applied schema revision.
type DBProbe interface {
	Ping(ctx context.Context) error
	LatestMigration(ctx context.Context) (string, error)
}

// CacheProbe reports connectivity of the event fan-out backend.
type CacheProbe interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	db          DBProbe
	cache       CacheProbe
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, db DBProbe, cache CacheProbe) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, db: db, cache: cache}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness. Postgres is the hard dependency: without
// it no ticket can be created and no deadline resolved. Redis only mirrors
// events, but an unreachable mirror is still surfaced so operators see that
// external consumers are blind.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	if err := h.db.Ping(ctx); err != nil {
		depStatus["postgres"] = err.Error()
		ready = false
	} else {
		depStatus["postgres"] = "ok"
		if revision, err := h.db.LatestMigration(ctx); err != nil {
			depStatus["schema_revision"] = err.Error()
			ready = false
		} else {
			depStatus["schema_revision"] = revision
		}
	}

	if err := h.cache.Ping(ctx); err != nil {
		depStatus["redis"] = err.Error()
		ready = false
	} else {
		depStatus["redis"] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}
