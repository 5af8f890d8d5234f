package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wihlarkop/authkit/version"
)

// handleHealth reports liveness plus build info. When the server was wired
// with a pinger the database reachability is included; a failing ping still
// answers 200 so the process itself stays reported as alive.
func (s *Server) handleHealth(c *gin.Context) {
	data := gin.H{
		"name":    s.name,
		"status":  "ok",
		"version": version.Get(),
	}
	if s.pinger != nil {
		data["database"] = s.pinger.Ping(c.Request.Context()) == nil
	}
	c.JSON(http.StatusOK, JSONResponse{
		Data:       data,
		Message:    "Service is healthy",
		Success:    true,
		StatusCode: http.StatusOK,
	})
}
