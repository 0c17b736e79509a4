// Package server exposes the engine over HTTP for local front ends.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/decocereus/magic-agent/internal/catalog"
	"github.com/decocereus/magic-agent/internal/engine"
	"github.com/decocereus/magic-agent/internal/store"
	"github.com/decocereus/magic-agent/internal/telemetry"
)

// Server wraps echo with the engine and optional run history.
type Server struct {
	engine  *engine.Engine
	history *store.Store
	logger  *log.Logger
	echo    *echo.Echo
}

// New builds the HTTP layer. history may be nil.
func New(eng *engine.Engine, history *store.Store) *Server {
	s := &Server{
		engine:  eng,
		history: history,
		logger:  telemetry.NewLogger("[HTTP] "),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		s.logger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.POST("/run", s.handleRun)
	api.POST("/plans/execute", s.handleExecute)
	api.GET("/context", s.handleContext)
	api.GET("/check", s.handleCheck)
	api.GET("/ops", s.handleOps)
	api.GET("/runs", s.handleRuns)
	api.GET("/runs/:id", s.handleRunByID)

	s.echo = e
	return s
}

// Start blocks serving on addr.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler { return s.echo }

type runRequest struct {
	Request string `json:"request"`
	DryRun  bool   `json:"dry_run"`
}

func (s *Server) handleRun(c echo.Context) error {
	var req runRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Request == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "request text is required")
	}
	result, err := s.engine.Run(c.Request().Context(), req.Request, req.DryRun)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

type executeRequest struct {
	Plan   json.RawMessage `json:"plan"`
	DryRun bool            `json:"dry_run"`
}

func (s *Server) handleExecute(c echo.Context) error {
	var req executeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Plan) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "plan document is required")
	}
	result, err := s.engine.Execute(c.Request().Context(), req.Plan, req.DryRun)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleContext(c echo.Context) error {
	snapshot, err := s.engine.Snapshot(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (s *Server) handleCheck(c echo.Context) error {
	info, err := s.engine.Check(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, info)
}

func (s *Server) handleOps(c echo.Context) error {
	names := catalog.Names()
	out := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		spec, _ := catalog.Lookup(name)
		params := make([]map[string]interface{}, 0, len(spec.Params))
		for _, p := range spec.Params {
			entry := map[string]interface{}{
				"name":     p.Name,
				"kind":     p.Kind.String(),
				"required": p.Required,
			}
			if len(p.Enum) > 0 {
				entry["enum"] = p.Enum
			}
			if p.Min != nil && p.Max != nil {
				entry["min"], entry["max"] = *p.Min, *p.Max
			}
			params = append(params, entry)
		}
		out = append(out, map[string]interface{}{
			"name":     spec.Name,
			"category": spec.Category,
			"params":   params,
			"result":   spec.Result,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"operations": out})
}

func (s *Server) handleRuns(c echo.Context) error {
	if s.history == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "run history is not configured")
	}
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}
	runs, err := s.history.ListRuns(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"runs": runs})
}

func (s *Server) handleRunByID(c echo.Context) error {
	if s.history == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "run history is not configured")
	}
	rec, found, err := s.history.GetRun(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "run not found")
	}
	return c.JSON(http.StatusOK, rec)
}
