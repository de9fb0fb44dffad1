package api

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/gyanvix/employee-admin/internal/dto"
)

const notFoundDetail = "The requested employee does not exist or has been deleted"

type resultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type statsResponse struct {
	Success bool      `json:"success"`
	Data    dto.Stats `json:"data"`
}

func writeJSON(ctx *fasthttp.RequestCtx, statusCode int, body any) {
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.SetStatusCode(statusCode)

	_ = json.NewEncoder(ctx).Encode(body)
}

func writeResult(ctx *fasthttp.RequestCtx, statusCode int, success bool, message string) {
	writeJSON(ctx, statusCode, resultResponse{Success: success, Message: message})
}

type errorPage struct {
	Title   string
	Message string
	Detail  string
}

func (s *Service) renderPage(ctx *fasthttp.RequestCtx, statusCode int, page string, data any) {
	ctx.Response.Header.Set("Content-Type", "text/html; charset=utf-8")
	ctx.SetStatusCode(statusCode)

	if err := s.views.Render(ctx, page, data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("template render failed")
		ctx.Error("Internal Server Error", fasthttp.StatusInternalServerError)
	}
}

func (s *Service) renderErrorPage(ctx *fasthttp.RequestCtx, statusCode int, message, detail string) {
	s.renderPage(ctx, statusCode, "error", errorPage{
		Title:   message,
		Message: message,
		Detail:  detail,
	})
}

func logInternal(ctx *fasthttp.RequestCtx, err error) {
	log.Error().Err(err).Str("url", ctx.URI().String()).Msg("request failed")
}

// internalError logs the underlying failure and renders a generic 500
// page; the detail is exposed only in development mode.
func (s *Service) internalError(ctx *fasthttp.RequestCtx, err error, message string) {
	log.Error().Err(err).Str("url", ctx.URI().String()).Msg(message)

	detail := ""
	if s.development && err != nil {
		detail = err.Error()
	}
	s.renderErrorPage(ctx, fasthttp.StatusInternalServerError, message, detail)
}
