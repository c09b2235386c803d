package server

import (
	"net/http"
	"time"

	"github.com/danmuck/newton/internal/config"
	"github.com/danmuck/newton/internal/logging"
	"github.com/danmuck/newton/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const Version = "0.1.0"

// Server exposes the estimator over HTTP.
type Server struct {
	Name         string
	Addr         string
	DefaultSteps int
	MaxSteps     int
	Appeared     time.Time

	router *gin.Engine
}

func New(cfg config.Config) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestObserver(cfg.Server.Name, log.Logger))
	if len(cfg.Server.CorsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.Server.CorsOrigins,
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		Name:         cfg.Server.Name,
		Addr:         cfg.Server.Addr,
		DefaultSteps: cfg.Steps,
		MaxSteps:     cfg.Server.MaxSteps,
		Appeared:     time.Now(),
		router:       r,
	}
	s.RegisterRoutes()
	return s
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

// Run blocks serving on s.Addr.
func (s *Server) Run() error {
	logging.Infof("%s listening on %s (default steps=%d max=%d)", s.Name, s.Addr, s.DefaultSteps, s.MaxSteps)
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}
