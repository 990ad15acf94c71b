package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"nhi/internal/check"
	dErrors "nhi/pkg/domain-errors"
	"nhi/pkg/platform/httputil"
	"nhi/pkg/requestcontext"
)

// Service defines the interface for check operations.
type Service interface {
	Check(ctx context.Context, raw string, opts check.Options) check.Result
	CheckBatch(ctx context.Context, raws []string, opts check.Options) ([]check.Result, error)
}

// Handler wires NHI check endpoints to the check service.
type Handler struct {
	service     Service
	logger      *slog.Logger
	excludeTest bool
}

// New constructs a check handler. excludeTest is the policy applied when a
// request does not set exclude_test itself.
func New(service Service, logger *slog.Logger, excludeTest bool) *Handler {
	return &Handler{
		service:     service,
		logger:      logger,
		excludeTest: excludeTest,
	}
}

// Register mounts check endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/nhi/check", h.HandleCheck)
	r.Post("/nhi/check/batch", h.HandleCheckBatch)
	r.Get("/nhi/{value}", h.HandleGet)
}

// HandleCheck handles POST /nhi/check requests. Invalid NHIs are a normal
// outcome and return 200 with valid=false.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CheckRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res := h.service.Check(ctx, req.NHI, h.options(req.ExcludeTest))

	// NHI values are never logged.
	h.logger.InfoContext(ctx, "nhi checked",
		"request_id", requestID,
		"valid", res.Valid,
		"format", res.Format.String(),
		"reason", string(res.Reason),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(res))
}

// HandleCheckBatch handles POST /nhi/check/batch requests.
func (h *Handler) HandleCheckBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[BatchCheckRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	results, err := h.service.CheckBatch(ctx, req.Values, h.options(req.ExcludeTest))
	if err != nil {
		h.logger.WarnContext(ctx, "batch check failed",
			"request_id", requestID,
			"count", len(req.Values),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := FromResults(results)
	h.logger.InfoContext(ctx, "nhi batch checked",
		"request_id", requestID,
		"count", len(results),
		"valid_count", resp.ValidCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /nhi/{value}. Unlike HandleCheck, an invalid value is
// an error response so the route can be used as a plain lookup.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var excludeTest *bool
	if q := r.URL.Query().Get("exclude_test"); q != "" {
		v, err := strconv.ParseBool(q)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "exclude_test must be a boolean"))
			return
		}
		excludeTest = &v
	}

	res := h.service.Check(ctx, chi.URLParam(r, "value"), h.options(excludeTest))
	if !res.Valid {
		h.logger.InfoContext(ctx, "nhi rejected",
			"request_id", requestID,
			"reason", string(res.Reason),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, rejectionMessage(res.Reason)))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromResult(res))
}

func (h *Handler) options(excludeTest *bool) check.Options {
	opts := check.Options{ExcludeTest: h.excludeTest}
	if excludeTest != nil {
		opts.ExcludeTest = *excludeTest
	}
	return opts
}

func rejectionMessage(reason check.Reason) string {
	if reason == check.ReasonReservedForTesting {
		return "value is an NHI reserved for testing"
	}
	return "value is not a valid NHI"
}
