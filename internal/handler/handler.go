package handler

import (
	"bytes"
	"context"
	"errors"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"readjustment-engine/internal/engine"
	"readjustment-engine/internal/letter"
	"readjustment-engine/internal/model"
)

const defaultCalculationTimeout = 5 * time.Second

type Handler struct {
	engine  *engine.Engine
	log     *logrus.Logger
	timeout time.Duration
}

// New builds the service handler. timeout bounds each calculation, index
// lookup included; zero means the default.
func New(e *engine.Engine, log *logrus.Logger, timeout time.Duration) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if timeout <= 0 {
		timeout = defaultCalculationTimeout
	}
	return &Handler{engine: e, log: log, timeout: timeout}
}

// Route is the fasthttp request handler for the whole service.
func (h *Handler) Route(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	switch string(ctx.Path()) {
	case "/calculate":
		h.only(ctx, fasthttp.MethodPost, h.HandleCalculation)
	case "/letter":
		h.only(ctx, fasthttp.MethodPost, h.HandleLetter)
	case "/operators":
		h.only(ctx, fasthttp.MethodGet, h.HandleOperators)
	case "/health":
		h.only(ctx, fasthttp.MethodGet, func(ctx *fasthttp.RequestCtx) {
			ctx.SetContentType("text/plain; charset=utf-8")
			ctx.SetBodyString("OK")
		})
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}

	h.log.WithFields(logrus.Fields{
		"method":      string(ctx.Method()),
		"path":        string(ctx.Path()),
		"status":      ctx.Response.StatusCode(),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("request handled")
}

func (h *Handler) only(ctx *fasthttp.RequestCtx, method string, next fasthttp.RequestHandler) {
	if string(ctx.Method()) != method {
		ctx.Response.Header.Set("Allow", method)
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

func (h *Handler) HandleCalculation(ctx *fasthttp.RequestCtx) {
	var req model.CalculationRequest
	if err := decodeStrict(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	c, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	resp := h.engine.Process(c, &req)
	if resp.CalculationMetadata.CalculationOutcome == model.OutcomeFailure {
		h.log.WithFields(logrus.Fields{
			"calculation_id": resp.CalculationMetadata.CalculationID,
			"messages":       len(resp.CalculationResult.Messages),
		}).Warn("calculation failed")
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

// HandleLetter returns only the defense letter, as markdown or, with
// ?format=html, rendered HTML.
func (h *Handler) HandleLetter(ctx *fasthttp.RequestCtx) {
	var req model.LetterRequest
	if err := decodeStrict(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	c, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	result, _, err := h.engine.Calculate(c, req.Policy)
	if err != nil {
		var invalid *model.InvalidInputError
		if errors.As(err, &invalid) {
			writeError(ctx, fasthttp.StatusUnprocessableEntity, invalid.Error())
			return
		}
		h.log.WithError(err).Error("letter calculation failed")
		writeError(ctx, fasthttp.StatusBadGateway, err.Error())
		return
	}

	switch format := string(ctx.QueryArgs().Peek("format")); format {
	case "", "text", "markdown":
		ctx.SetContentType("text/markdown; charset=utf-8")
		ctx.SetBodyString(result.Letter)
	case "html":
		html, err := letter.RenderHTML(result.Letter)
		if err != nil {
			writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
			return
		}
		ctx.SetContentType("text/html; charset=utf-8")
		ctx.SetBodyString(html)
	default:
		writeError(ctx, fasthttp.StatusBadRequest, "Unknown format: "+format)
	}
}

func (h *Handler) HandleOperators(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, h.engine.Table().Operators())
}

func decodeStrict(body []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected additional JSON content")
	}
	return nil
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		ctx.Error("encode response: "+err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}
