// Package http adapts ports.HTTPClient into the request pipeline: it sends a
// domain.RequestSpec and maps transport failures to domain errors.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bft-labs/curlite/internal/domain"
	"github.com/bft-labs/curlite/internal/ports"
	"github.com/bft-labs/curlite/pkg/log"
)

// NewHTTPClient returns the default transport collaborator.
// A zero timeout means no client-side limit.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Sender implements the transport invoker on top of ports.HTTPClient.
type Sender struct {
	client ports.HTTPClient
	logger log.Logger
}

// NewSender creates a Sender.
func NewSender(client ports.HTTPClient, logger log.Logger) *Sender {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Sender{
		client: client,
		logger: logger,
	}
}

// Send performs one request attempt. Any completed response is returned,
// whatever its status code. Failures before a full response is read are
// *domain.Error values of kind NetworkError.
func (s *Sender) Send(ctx context.Context, spec domain.RequestSpec) (*domain.Response, error) {
	var body io.Reader
	if b := spec.Body.Bytes(); b != nil {
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, spec.URL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for name, values := range spec.Header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Debug("transport failure", log.Err(err), log.String("url", spec.URL.String()))
		return nil, domain.NewError(domain.KindNetwork, "", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Debug("read response body", log.Err(err))
		return nil, domain.NewError(domain.KindNetwork, "", err)
	}

	s.logger.Debug("response received",
		log.Int("status", resp.StatusCode),
		log.String("content_type", resp.Header.Get("Content-Type")),
		log.Int("bytes", len(respBody)),
		log.Duration("elapsed", time.Since(start)),
	)

	return &domain.Response{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		Header:      resp.Header,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}
