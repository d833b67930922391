package contact

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

	"github.com/benbjohnson/clock"
	"github.com/hashicorp/go-hclog"
)

const (
	// maxResponseSize caps tx, block and account answers, larger queries pass their own limit
	maxResponseSize      = 64 * 1024
	defaultTimeout       = 30 * time.Second
	defaultRetryInterval = time.Second
)

// Contact is a minimal client for the cosmos LCD rest server
type Contact struct {
	url           string
	timeout       time.Duration
	retryInterval time.Duration
	httpClient    *http.Client
	clock         clock.Clock
	logger        hclog.Logger
}

type ContactOption func(*Contact)

func WithHTTPClient(httpClient *http.Client) ContactOption {
	return func(c *Contact) {
		c.httpClient = httpClient
	}
}

func WithClock(clk clock.Clock) ContactOption {
	return func(c *Contact) {
		c.clock = clk
	}
}

func WithLogger(logger hclog.Logger) ContactOption {
	return func(c *Contact) {
		c.logger = logger
	}
}

func WithRetryInterval(interval time.Duration) ContactOption {
	return func(c *Contact) {
		c.retryInterval = interval
	}
}

func NewContact(url string, timeout time.Duration, opts ...ContactOption) *Contact {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Contact{
		url:           strings.TrimSuffix(strings.TrimSpace(url), "/"),
		timeout:       timeout,
		retryInterval: defaultRetryInterval,
		httpClient:    &http.Client{},
		clock:         clock.New(),
		logger:        hclog.NewNullLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Contact) URL() string {
	return c.url
}

func (c *Contact) Timeout() time.Duration {
	return c.timeout
}

// Get queries route with the default request timeout and decodes the answer into R
func Get[R any](ctx context.Context, c *Contact, route string) (R, error) {
	return requestMethod[R](ctx, c, route, nil, c.timeout, maxResponseSize)
}

// GetWithLimit is Get with a response size limit of sizeLimit bytes
func GetWithLimit[R any](ctx context.Context, c *Contact, route string, sizeLimit int64) (R, error) {
	if sizeLimit <= 0 {
		sizeLimit = maxResponseSize
	}

	return requestMethod[R](ctx, c, route, nil, c.timeout, sizeLimit)
}

// requestMethod posts params as json when they are present, otherwise it issues a GET
func requestMethod[R any](
	ctx context.Context, c *Contact, route string, params interface{}, timeout time.Duration, sizeLimit int64,
) (result R, err error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s", c.url, strings.TrimPrefix(route, "/"))

	req, err := c.newRequest(ctx, url, params)
	if err != nil {
		return result, err
	}

	c.logger.Trace("lcd request", "method", req.Method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return result, &JsonRpcError{Kind: FailedToSend, Err: err}
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, sizeLimit+1))
	if err != nil {
		return result, &JsonRpcError{Kind: FailedToSend, Err: err}
	}

	// the same route answers with the same size again, so this one is not retried
	if int64(len(body)) > sizeLimit {
		return result, &JsonRpcError{
			Kind:       ResponseTooLarge,
			Message:    fmt.Sprintf("response from %s exceeds %d bytes", route, sizeLimit),
			StatusCode: resp.StatusCode,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, &JsonRpcError{
			Kind:       BadResponse,
			Message:    fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			StatusCode: resp.StatusCode,
		}
	}

	c.logger.Trace("lcd response", "url", url, "body", string(body))

	if !json.Valid(body) {
		return result, &JsonRpcError{
			Kind:       BadResponse,
			Message:    fmt.Sprintf("invalid json: %s", string(body)),
			StatusCode: resp.StatusCode,
		}
	}

	return decodeResult[R](body)
}

func (c *Contact) newRequest(ctx context.Context, url string, params interface{}) (*http.Request, error) {
	if params == nil {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, &JsonRpcError{Kind: BadInput, Message: err.Error(), Err: err}
		}

		return req, nil
	}

	data, err := json.Marshal(params)
	if err != nil {
		return nil, &JsonRpcError{Kind: BadInput, Message: err.Error(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, &JsonRpcError{Kind: BadInput, Message: err.Error(), Err: err}
	}

	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// decodeResult maps a body that does not fit R to BadStruct, using the node's raw_log when it has one
func decodeResult[R any](body []byte) (result R, err error) {
	decodeErr := json.Unmarshal(body, &result)
	if decodeErr == nil {
		if v, ok := any(&result).(validator); ok {
			decodeErr = v.Validate()
		}
	}

	if decodeErr == nil {
		return result, nil
	}

	var errResp TxSendErrorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.RawLog != "" {
		return result, &JsonRpcError{Kind: BadStruct, Message: errResp.RawLog, Err: decodeErr}
	}

	return result, &JsonRpcError{
		Kind:    BadStruct,
		Message: fmt.Sprintf("%v: %s", decodeErr, string(body)),
		Err:     decodeErr,
	}
}

func isParentDone(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled)
}
