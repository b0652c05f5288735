package remote

// Functional options that configure the Client during construction.

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPTimeout bounds the total time of a single HTTP request. It is the
// only deadline the core applies; callers may still cancel through ctx.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.SetTimeout(d)
		return nil
	}
}

// WithReadAttempts sets how many times a read query is tried before its
// last error is returned. 1 disables retries.
func WithReadAttempts(n int) Option {
	return func(c *Client) error {
		if n < 1 {
			return fmt.Errorf("read attempts must be >= 1")
		}
		c.readAttempts = uint64(n)
		return nil
	}
}

// WithRetryInterval sets the first backoff interval between read retries.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("retry interval must be > 0")
		}
		c.initialInterval = d
		return nil
	}
}

// WithLogger sets the logger used by debug logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithDebugLogging logs every request and response at debug level when
// enabled. Bodies are not logged: they carry inventory contents and the
// Authorization header carries the token.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if !enabled {
			return nil
		}
		c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			body, _ := req.Body.(Request)
			c.logger.Debug("GraphQL request",
				"operation", body.OperationName,
				"url", req.URL,
				"request_id", req.Header.Get("X-Request-ID"),
			)
			return nil
		})
		c.http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			c.logger.Debug("GraphQL response",
				"url", resp.Request.URL,
				"status_code", resp.StatusCode(),
				"duration_ms", resp.Time().Milliseconds(),
				"bytes", len(resp.Body()),
			)
			return nil
		})
		return nil
	}
}
