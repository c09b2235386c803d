package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/newton/internal/newton"
	"github.com/danmuck/newton/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Numbers are sent as fixed-point strings; JSON numbers cannot hold NaN or Inf.
type recordResponse struct {
	Step     int    `json:"step"`
	Estimate string `json:"estimate"`
	Residual string `json:"residual"`
}

type sqrtResponse struct {
	RunID   string           `json:"run_id"`
	Value   string           `json:"value"`
	Steps   int              `json:"steps"`
	Records []recordResponse `json:"records"`
	Output  string           `json:"output"`
	Outcome string           `json:"outcome"`
}

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": Version,
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": Version,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/sqrt", s.handleSqrt)
}

func (s *Server) handleSqrt(c *gin.Context) {
	rawValue, ok := c.GetQuery("value")
	if !ok || strings.TrimSpace(rawValue) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
		return
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(rawValue), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value must be a number"})
		return
	}

	steps := s.DefaultSteps
	if rawSteps, ok := c.GetQuery("steps"); ok {
		steps, err = strconv.Atoi(strings.TrimSpace(rawSteps))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "steps must be an integer"})
			return
		}
		if steps < 0 || steps > s.MaxSteps {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "steps must be between 0 and " + strconv.Itoa(s.MaxSteps),
			})
			return
		}
	}

	var collected newton.Collector
	result := newton.Estimate(value, steps, &collected)
	outcome := observability.RecordEstimate(s.Name, steps, value, result)

	records := make([]recordResponse, 0, len(collected.Records))
	for _, r := range collected.Records {
		records = append(records, recordResponse{
			Step:     r.Step,
			Estimate: newton.FormatFixed(r.Estimate),
			Residual: newton.FormatFixed(r.Residual),
		})
	}

	c.JSON(http.StatusOK, sqrtResponse{
		RunID:   uuid.NewString(),
		Value:   newton.FormatFixed(value),
		Steps:   steps,
		Records: records,
		Output:  newton.FormatFixed(result),
		Outcome: outcome,
	})
}
