// Package seed exposes the seeding control surface: a synchronous run
// endpoint and an SSE variant that streams per-step progress.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/modonty1-rgb/modonty-sub003/pkg/appctx"
	"github.com/modonty1-rgb/modonty-sub003/pkg/events"
	"github.com/modonty1-rgb/modonty-sub003/pkg/kafka"
	"github.com/modonty1-rgb/modonty-sub003/pkg/models"
	"github.com/modonty1-rgb/modonty-sub003/pkg/seeder"
	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

// Handler serves the seed endpoints.
type Handler struct {
	seeder   *seeder.Seeder
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewHandler creates the seed handler. producer may be nil when the Kafka
// progress fanout is disabled.
func NewHandler(s *seeder.Seeder, producer *kafka.Producer, logger ectologger.Logger) *Handler {
	return &Handler{
		seeder:   s,
		producer: producer,
		logger:   logger,
	}
}

// RegisterRoutes registers the seed endpoints
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/seed", h.Run)
	e.GET("/api/v1/seed/stream", h.Stream)
}

// Run executes a seed run synchronously and returns the summary.
func (h *Handler) Run(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "seed_handler.Run")
	defer span.End()

	var opts models.RunOptions
	if err := c.Bind(&opts); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	summary, err := h.seeder.Run(ctx, opts, h.fanout(ctx))
	if err != nil {
		return h.toHTTPError(err)
	}

	return c.JSON(http.StatusOK, summary)
}

// Stream starts a run and streams progress as server-sent events. The
// connection terminates after the sentinel event that carries the summary
// (or the fatal error).
func (h *Handler) Stream(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "seed_handler.Stream")
	defer span.End()

	opts, err := optsFromQuery(c)
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	stream := events.NewStream(256)
	defer stream.Close()

	sink := events.Sink(stream)
	if fanout := h.fanout(ctx); fanout != nil {
		sink = events.MultiSink{stream, fanout}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := h.seeder.Run(ctx, opts, sink); err != nil {
			h.logger.WithContext(ctx).WithError(err).Error("streamed seed run failed")
		}
	}()

	for event := range stream.Events() {
		data, err := json.Marshal(event)
		if err != nil {
			h.logger.WithContext(ctx).WithError(err).Warn("skipping unserializable progress event")
			continue
		}
		if _, err := fmt.Fprintf(res, "data: %s\n\n", data); err != nil {
			// Client went away; the run itself keeps going.
			break
		}
		res.Flush()

		if event.Done {
			break
		}
	}

	<-done
	if dropped := stream.Dropped(); dropped > 0 {
		h.logger.WithContext(ctx).WithFields(map[string]any{
			"dropped": dropped,
		}).Warn("progress events were dropped because the consumer lagged")
	}

	return nil
}

// fanout returns the Kafka sink for this request, or nil when disabled.
func (h *Handler) fanout(ctx context.Context) events.Sink {
	if h.producer == nil {
		return nil
	}
	return events.NewKafkaSink(h.producer, appctx.GetRequestID(ctx), h.logger)
}

func (h *Handler) toHTTPError(err error) error {
	switch {
	case errors.Is(err, seeder.ErrRunInProgress):
		return httperror.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, seeder.ErrEnvBlocked):
		return httperror.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, seeder.ErrNoClients):
		return httperror.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, seeder.ErrSourceUnavailable):
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		return httperror.NewHTTPError(http.StatusBadRequest, vErrs.Error())
	}

	return httperror.NewHTTPError(http.StatusInternalServerError, "seed run failed")
}

func optsFromQuery(c echo.Context) (models.RunOptions, error) {
	var opts models.RunOptions

	if raw := c.QueryParam("total"); raw != "" {
		total, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("total must be an integer")
		}
		opts.Total = total
	}
	if raw := c.QueryParam("client_count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("client_count must be an integer")
		}
		opts.ClientCount = count
	}

	opts.Phase = models.Phase(c.QueryParam("phase"))
	opts.Brief = c.QueryParam("brief")

	var err error
	if opts.Reset, err = boolParam(c, "reset"); err != nil {
		return opts, err
	}
	if opts.UseAI, err = boolParam(c, "use_ai"); err != nil {
		return opts, err
	}
	if opts.UseNews, err = boolParam(c, "use_news"); err != nil {
		return opts, err
	}
	if opts.UseImages, err = boolParam(c, "use_images"); err != nil {
		return opts, err
	}

	return opts, nil
}

func boolParam(c echo.Context, name string) (bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", name)
	}
	return value, nil
}
