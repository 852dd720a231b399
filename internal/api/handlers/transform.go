package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hoanghai1803/newsdesk/internal/logger"
	"github.com/hoanghai1803/newsdesk/internal/models"
	"github.com/hoanghai1803/newsdesk/internal/transform"
)

// maxBodyBytes caps request bodies. Article text is the largest field.
const maxBodyBytes = 1 << 20

// UsageRecorder persists one usage-log row per generation request.
type UsageRecorder interface {
	RecordGeneration(ctx context.Context, g *models.Generation) (int64, error)
}

type pipeline func(ctx context.Context, req transform.Request) (*transform.Result, error)

// Transform handles POST /api/<name> for a catalog endpoint.
func Transform(gen *transform.Generator, ep transform.Endpoint, usage UsageRecorder) http.HandlerFunc {
	return serve(ep, usage, func(ctx context.Context, req transform.Request) (*transform.Result, error) {
		return gen.Run(ctx, ep, req)
	})
}

// AnalystRatings handles POST /api/analyst-ratings.
func AnalystRatings(gen *transform.Generator, usage UsageRecorder) http.HandlerFunc {
	return serve(transform.AnalystRatingsEndpoint(), usage, gen.AnalystRatings)
}

// Image handles POST /api/dalle-image.
func Image(gen *transform.Generator, usage UsageRecorder) http.HandlerFunc {
	return serve(transform.ImageEndpoint(), usage, gen.Image)
}

// serve decodes the request, runs the pipeline and writes the endpoint's
// response shape. Every declared output is present in the body, including on
// failure, where an "error" message is added.
func serve(ep transform.Endpoint, usage UsageRecorder, run pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logger.WithLogFields(r.Context(), logger.LogFields{Endpoint: ep.Name})

		var (
			res *transform.Result
			err error
		)
		req, decodeErr := decodeRequest(w, r)
		if decodeErr != nil {
			slog.InfoContext(ctx, "rejected request body", "error", decodeErr)
			res = &transform.Result{Body: ep.EmptyBody()}
			err = &transform.ValidationError{Message: "Request body must be a JSON object with string fields."}
		} else {
			res, err = run(ctx, req)
		}

		status := ep.StatusFor(err)
		body := res.Body
		if err != nil {
			body["error"] = ep.MessageFor(err)
			var verr *transform.ValidationError
			if !errors.As(err, &verr) {
				slog.WarnContext(ctx, "generation failed", "status", status, "error", err)
			}
		}

		writeJSON(w, status, body)
		recordUsage(ctx, usage, ep.Name, res, status, err, time.Since(start))
	}
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (transform.Request, error) {
	var req transform.Request
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, err
	}
	return req, nil
}

// recordUsage writes the usage-log row. A failed write is logged and never
// affects the response.
func recordUsage(ctx context.Context, usage UsageRecorder, endpoint string, res *transform.Result, status int, err error, elapsed time.Duration) {
	if usage == nil {
		return
	}

	g := &models.Generation{
		RequestID:    logger.RequestID(ctx),
		Endpoint:     endpoint,
		Provider:     res.Provider,
		Model:        res.Model,
		Status:       status,
		ErrorKind:    errorKind(err),
		DurationMS:   elapsed.Milliseconds(),
		InputTokens:  res.InputTokens,
		OutputTokens: res.OutputTokens,
	}
	if _, recErr := usage.RecordGeneration(context.WithoutCancel(ctx), g); recErr != nil {
		slog.ErrorContext(ctx, "failed to record usage", "error", recErr)
	}
}

// errorKind classifies a pipeline error for the usage log.
func errorKind(err error) string {
	var (
		verr *transform.ValidationError
		serr *transform.ShapeError
		uerr *transform.UpstreamError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return "validation"
	case errors.Is(err, transform.ErrNotConfigured):
		return "not_configured"
	case errors.As(err, &serr):
		return "shape"
	case errors.As(err, &uerr):
		return "upstream"
	default:
		return "internal"
	}
}
