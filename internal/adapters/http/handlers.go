package http

import (
	"net/http"
	"time"

	"github.com/dkeye/Helpline/internal/app/orch"
	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v4"
)

type handlers struct {
	orch       *orch.Orchestrator
	iceServers []webrtc.ICEServer
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

type StatusResponse struct {
	Timestamp time.Time `json:"timestamp"`
	orch.Status
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Services:  map[string]string{"websocket": "running"},
	})
}

func (h *handlers) status(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Timestamp: time.Now().UTC(),
		Status:    h.orch.Status(),
	})
}

func (h *handlers) iceConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"iceServers": h.iceServers})
}
