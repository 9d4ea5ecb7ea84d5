// Package backend is the REST client for the shop API: products, coupons,
// orders, auth and payment.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/UTarts/RASRAJ-themithaishop/pkg/circuitbreaker"
	"github.com/UTarts/RASRAJ-themithaishop/pkg/logger"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const maxResponseBytes = 4 << 20

type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Breaker   circuitbreaker.Options
	Transport http.RoundTripper
}

type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*response]
	sfg     singleflight.Group
}

type response struct {
	status int
	body   []byte
}

func New(opts Options, log *zap.Logger) *Client {
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	bo := opts.Breaker
	bo.IsSuccessful = func(err error) bool {
		// 4xx answers mean the backend is healthy and said no
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return !apiErr.Temporary()
		}
		return err == nil
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: timeout,
		http: &http.Client{
			Transport: otelhttp.NewTransport(base),
		},
		breaker: circuitbreaker.New[*response]("shop-backend", bo, log),
	}
}

type requestOptions struct {
	token          string
	idempotencyKey string
}

// do sends one request through the breaker and decodes a 2xx body into out.
// Requests are never retried.
func (c *Client) do(ctx context.Context, method, path string, in, out any, ro requestOptions) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request failed: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ro.token != "" {
		req.Header.Set("Authorization", "Bearer "+ro.token)
	}
	if ro.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", ro.idempotencyKey)
	}
	if id := logger.RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.breaker.Execute(func() (*response, error) {
		httpResp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
		}
		defer httpResp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
		if err != nil {
			return nil, fmt.Errorf("read %s %s failed: %w", method, path, err)
		}
		if httpResp.StatusCode >= http.StatusBadRequest {
			return nil, parseAPIError(httpResp.StatusCode, data)
		}
		return &response{status: httpResp.StatusCode, body: data}, nil
	})
	if err != nil {
		logger.FromContext(ctx).Debug("backend call failed",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return err
	}

	if out == nil || len(resp.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("decode %s %s failed: %w", method, path, err)
	}
	return nil
}
