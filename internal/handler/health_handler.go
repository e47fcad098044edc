package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	db  *sqlx.DB
	log zerolog.Logger
}

func NewHealthHandler(db *sqlx.DB, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// Liveness handles GET /healthz. It answers ok as long as the process
// is serving requests.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. Readiness requires a reachable
// database; the accounting backend is not probed because invoice runs
// degrade with diagnostics rather than failing the whole service.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		h.log.Warn().Err(err).Msg("healthHandler.Readiness: database ping failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
