package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is the API version reported by /info.
const Version = "1.0.0"

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping() error
}

// SystemHandler serves liveness and service metadata.
type SystemHandler struct {
	name string
	db   Pinger
}

// NewSystemHandler creates a new SystemHandler. db may be nil, in which case
// health does not probe the database.
func NewSystemHandler(name string, db Pinger) *SystemHandler {
	return &SystemHandler{name: name, db: db}
}

// InfoResponse describes the running service.
type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
	OpenAPI string `json:"openapi"`
}

// Health reports service liveness.
// @Summary     Health check
// @Tags        system
// @Produce     json
// @Success     200 {object} map[string]string "ok"
// @Failure     503 {object} map[string]string "database unreachable"
// @Router      /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Info returns the service name, version and documentation links.
// @Summary     Service info
// @Tags        system
// @Produce     json
// @Success     200 {object} InfoResponse "Service info"
// @Router      /info [get]
func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Name:    h.name,
		Version: Version,
		Docs:    "/swagger/index.html",
		OpenAPI: "/swagger/doc.json",
	})
}
