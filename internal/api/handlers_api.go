package api

import (
	"fmt"
	"mime"
	"path/filepath"

	"github.com/valyala/fasthttp"

	"github.com/gyanvix/employee-admin/internal/web"
)

func (s *Service) employeeStats(ctx *fasthttp.RequestCtx) {
	stats, err := s.employees.Stats(ctx)
	if err != nil {
		logInternal(ctx, fmt.Errorf("employeeService.Stats: %w", err))
		writeResult(ctx, fasthttp.StatusInternalServerError, false, "Error fetching statistics")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, statsResponse{Success: true, Data: stats})
}

func (s *Service) healthHandler(ctx *fasthttp.RequestCtx) {
	if err := s.db.Ping(ctx); err != nil {
		logInternal(ctx, fmt.Errorf("db.Ping: %w", err))
		writeJSON(ctx, fasthttp.StatusInternalServerError, map[string]string{"status": "unavailable"})
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) staticHandler(ctx *fasthttp.RequestCtx) {
	path, _ := ctx.UserValue("filepath").(string)

	body, err := web.Static(path)
	if err != nil {
		ctx.Error("Not Found", fasthttp.StatusNotFound)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx.Response.Header.Set("Content-Type", contentType)
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(body)
}
