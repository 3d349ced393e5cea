package http

import (
	stdhttp "net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/classwire/handraise-server/internal/config"
	"github.com/classwire/handraise-server/internal/core"
	"github.com/classwire/handraise-server/internal/metrics"
)

// NewServer builds the HTTP server with all classroom routes.
func NewServer(registry *core.Registry, m *metrics.Metrics, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(LoggerMiddleware(logger))

	// The student and teacher front-ends are separate apps on other origins.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
	corsConfig.AllowWebSockets = true
	engine.Use(cors.New(corsConfig))

	h := NewClassroomHandlers(registry, m, logger)

	engine.GET("/health", healthHandler)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/signal-types", h.ListSignalTypes)

	classrooms := engine.Group("/classrooms/:id")
	{
		classrooms.POST("/create", h.CreateClassroom)
		classrooms.GET("", h.GetClassroom)
		classrooms.GET("/students", h.GetStudents)
		classrooms.GET("/signals", h.GetSignals)
		classrooms.POST("/join", h.JoinClassroom)
		classrooms.DELETE("/leave", h.LeaveClassroom)
		classrooms.POST("/signal", h.EmitSignal)
		classrooms.DELETE("/signal/remove", h.AcknowledgeSignal)
		classrooms.GET("/stream", h.Stream)
		classrooms.GET("/ws", h.StreamWS)
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
