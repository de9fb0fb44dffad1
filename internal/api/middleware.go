package api

import (
	"bytes"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

// RecoveryMiddleware turns panics into the rendered 500 page.
func (s *Service) RecoveryMiddleware(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		defer func() {
			if rvr := recover(); rvr != nil {
				log.Error().
					Interface("panic", rvr).
					Str("method", string(ctx.Method())).
					Str("url", ctx.URI().String()).
					Str("stack_trace", string(debug.Stack())).
					Msg("recovered from panic")

				detail := ""
				if s.development {
					detail = stringify(rvr)
				}
				s.renderErrorPage(ctx, fasthttp.StatusInternalServerError, "Something went wrong!", detail)
			}
		}()

		next(ctx)
	}
}

// LoggingMiddleware logs every request with a request id.
func LoggingMiddleware(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		requestID, ok := ctx.UserValue("request-id").(string)
		if !ok {
			requestID = uuid.New().String()
			ctx.SetUserValue("request-id", requestID)
		}

		begin := time.Now()
		next(ctx)

		log.Info().
			Str("request_id", requestID).
			Bytes("method", ctx.Method()).
			Str("url", ctx.URI().String()).
			Int("status", ctx.Response.StatusCode()).
			Dur("latency", time.Since(begin)).
			Msg("completed request")
	}
}

// MethodOverride lets HTML forms reach PUT/DELETE handlers by submitting
// a POST with a _method query or form argument.
func MethodOverride(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if ctx.IsPost() {
			m := ctx.QueryArgs().Peek("_method")
			if len(m) == 0 {
				m = ctx.PostArgs().Peek("_method")
			}
			if len(m) > 0 {
				ctx.Request.Header.SetMethodBytes(bytes.ToUpper(m))
			}
		}

		next(ctx)
	}
}

func stringify(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "unexpected runtime failure"
}
