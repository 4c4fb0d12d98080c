package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SignatureHeader carries the HMAC-SHA256 signature of the request body
// when the sender was built with WithSigningSecret.
const SignatureHeader = "X-Streamcore-Signature"

// WebhookSender is the interface for sending webhooks
type WebhookSender interface {
	// Send webhooks with minimal required parameters and optional request options
	Send(ctx context.Context, url string, params any, opts ...RequestOption) (*Response, error)
}

// webhookSender implements the WebhookSender interface. It makes exactly one
// attempt per Send call; wrap it in a RetryDecorator for retry behavior, the
// way cmd/server builds its run-completion notifier.
type webhookSender struct {
	client         *http.Client
	defaultMethod  string
	defaultHeaders map[string]string
	defaultTimeout time.Duration
	signingSecret  string
}

// NewWebhookSender creates a new webhook sender
func NewWebhookSender(opts ...SenderOption) WebhookSender {
	s := &webhookSender{
		client:        http.DefaultClient,
		defaultMethod: http.MethodPost,
		defaultHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		defaultTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Send implements the WebhookSender interface
func (s *webhookSender) Send(ctx context.Context, url string, params any, opts ...RequestOption) (*Response, error) {
	if url == "" {
		return nil, ErrInvalidURL
	}

	// Set up default request options
	options := &requestOptions{
		Method:  s.defaultMethod,
		Headers: make(map[string]string),
		Timeout: s.defaultTimeout,
	}

	// Apply global default headers
	for k, v := range s.defaultHeaders {
		options.Headers[k] = v
	}

	// Apply request-specific options
	for _, opt := range opts {
		opt(options)
	}

	if s.signingSecret != "" {
		body, marshalErr := marshalParams(params)
		if marshalErr != nil {
			return nil, marshalErr
		}
		options.Headers[SignatureHeader] = signBody(s.signingSecret, body.Bytes())
	}

	// Create request
	req := &Request{
		URL:     url,
		Method:  options.Method,
		Headers: options.Headers,
		Params:  params,
		Timeout: options.Timeout,
	}

	return s.doSend(ctx, req)
}

// doSend performs the actual HTTP request
func (s *webhookSender) doSend(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := createHTTPRequest(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateRequest, err)
	}

	// Add the request to the context
	httpReq = httpReq.WithContext(ctx)

	// Create a context with timeout if specified
	var cancel context.CancelFunc
	if req.Timeout > 0 {
		var timeoutCtx context.Context
		timeoutCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		httpReq = httpReq.WithContext(timeoutCtx)
	}

	// Ensure cancel is called
	if cancel != nil {
		defer cancel()
	}

	// Execute the request
	startTime := time.Now()
	httpResp, err := s.client.Do(httpReq)
	duration := time.Since(startTime)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendRequest, err)
	}
	defer httpResp.Body.Close()

	// Read response body
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadResponse, err)
	}

	// Create response
	response := &Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
		Headers:    httpResp.Header,
		Duration:   duration,
		Request:    req,
	}

	return response, nil
}

// signBody returns the hex-encoded HMAC-SHA256 of body keyed by secret.
func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// marshalParams marshals the parameters to JSON and returns a buffer
func marshalParams(params any) (*bytes.Buffer, error) {
	if params == nil {
		return bytes.NewBuffer(nil), nil
	}

	data, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarshalParams, err)
	}

	return bytes.NewBuffer(data), nil
}
