// Package app runs one curlite invocation: validate, build, send, render.
package app

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/curlite/internal/domain"
	"github.com/bft-labs/curlite/internal/render"
	"github.com/bft-labs/curlite/internal/request"
	"github.com/bft-labs/curlite/internal/urlcheck"
	"github.com/bft-labs/curlite/pkg/log"
)

// Invocation is the CLI intent for a single request.
type Invocation struct {
	URL     string
	Method  string
	Form    *string
	JSON    *string
	Headers []string
}

// Sender is the transport invoker used by Client.
type Sender interface {
	Send(ctx context.Context, spec domain.RequestSpec) (*domain.Response, error)
}

// Client runs the request pipeline: validate, build, send, render.
type Client struct {
	sender    Sender
	renderer  *render.Renderer
	logger    log.Logger
	userAgent string
}

// NewClient creates a Client. A nil logger discards logs.
func NewClient(sender Sender, renderer *render.Renderer, logger log.Logger, userAgent string) *Client {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Client{
		sender:    sender,
		renderer:  renderer,
		logger:    logger,
		userAgent: userAgent,
	}
}

// Do executes inv and writes the rendered body to stdout. The first failing
// stage ends the invocation; its *domain.Error is returned.
func (c *Client) Do(ctx context.Context, inv Invocation, stdout io.Writer) error {
	logger := log.WithFields(c.logger, log.String("request_id", uuid.NewString()))

	logger.Info("requesting URL", log.String("url", inv.URL), log.String("method", effectiveMethod(inv)))

	u, err := urlcheck.Validate(inv.URL)
	if err != nil {
		logger.Debug("url rejected", log.String("kind", domain.KindOf(err).String()))
		return err
	}

	spec, err := request.Build(u, request.Input{
		Method:    inv.Method,
		Form:      inv.Form,
		JSON:      inv.JSON,
		Headers:   inv.Headers,
		UserAgent: c.userAgent,
	})
	if err != nil {
		return err
	}

	switch spec.Body.Kind {
	case domain.BodyJSON:
		logger.Info("sending JSON", log.String("json", spec.Body.JSON))
	case domain.BodyForm:
		logger.Info("sending form data", log.String("data", string(spec.Body.Bytes())))
	}

	start := time.Now()
	resp, err := c.sender.Send(ctx, spec)
	if err != nil {
		return err
	}
	logger.Debug("request completed",
		log.Int("status", resp.StatusCode),
		log.Duration("elapsed", time.Since(start)),
	)

	mode, err := c.renderer.Render(stdout, resp)
	if err != nil {
		return err
	}
	if mode == render.ModeJSON {
		logger.Info("response body (JSON with sorted keys)")
	} else {
		logger.Debug("response body rendered", log.String("mode", mode.String()))
	}
	return nil
}

// effectiveMethod mirrors the builder's precedence for logging before the
// request is built.
func effectiveMethod(inv Invocation) string {
	if inv.JSON != nil || inv.Form != nil {
		return "POST"
	}
	if inv.Method == "" {
		return "GET"
	}
	return inv.Method
}
