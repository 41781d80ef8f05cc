package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-transcript-api/internal/middleware"
)

// RegisterTranscriptRoutes mounts the transcript endpoints on group.
func RegisterTranscriptRoutes(group *gin.RouterGroup, auth middleware.Authenticator, h *TranscriptHandler) {
	group.POST("/completedCourses/download", middleware.Authenticated(auth, h.DownloadCompletedCourses))

	transcripts := group.Group("/transcripts")
	transcripts.POST("/download", middleware.Authenticated(auth, h.Download))
	transcripts.GET("/me", middleware.Authenticated(auth, h.Me))
	transcripts.GET("/grade-scale", h.GradeScale)
}

// RegisterHealthRoutes mounts probes and, when enabled, the metrics endpoint.
func RegisterHealthRoutes(r *gin.Engine, h *HealthHandler, metricsEnabled bool) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	if metricsEnabled {
		r.GET("/metrics", h.Prometheus)
	}
}
