package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/logging"
	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/tracing"
)

// RequestIDHeader carries a per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Authorizer supplies the Authorization header for outbound requests.
// ok=false means the request is sent without credentials.
type Authorizer interface {
	AuthorizationHeader() (value string, ok bool)
}

// Options configures a Client. Zero values take defaults.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	RateLimit    float64 // requests per second, 0 = unlimited
	UserAgent    string
	Logger       *logging.Logger
	Metrics      *monitoring.Metrics
}

// Client wraps resty with rate limiting, a circuit breaker and credential
// injection.
type Client struct {
	Resty   *resty.Client
	Limiter *rate.Limiter
	Breaker *resilience.Breaker

	mu             sync.RWMutex
	authorizer     Authorizer
	onUnauthorized UnauthorizedHandler

	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// Call describes one backend request.
type Call struct {
	Method     string
	Route      string // path template, e.g. "/api/campaigns/{id}/start"
	PathParams map[string]string
	Query      url.Values
	Form       map[string]string // sent form-encoded when non-nil
	Body       interface{}       // sent as JSON when non-nil
	Result     interface{}       // decoded from a 2xx JSON body when non-nil
}

type anonymousKey struct{}

// Anonymous marks requests made with ctx to be sent without credentials and
// without retries. Used for the login exchange.
func Anonymous(ctx context.Context) context.Context {
	return context.WithValue(ctx, anonymousKey{}, true)
}

func isAnonymous(ctx context.Context) bool {
	v, _ := ctx.Value(anonymousKey{}).(bool)
	return v
}

// New creates a client for the backend at opts.BaseURL.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryWaitMin <= 0 {
		opts.RetryWaitMin = 500 * time.Millisecond
	}
	if opts.RetryWaitMax <= 0 {
		opts.RetryWaitMax = 10 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "outreach-console/1.0"
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	c := &Client{
		logger:  opts.Logger.Named("client"),
		metrics: opts.Metrics,
	}

	// Pooled transport from go-retryablehttp; retries are driven by resty.
	transport := retryablehttp.NewClient().HTTPClient.Transport

	restyClient := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTransport(transport).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.MaxRetries).
		SetRetryWaitTime(opts.RetryWaitMin).
		SetRetryMaxWaitTime(opts.RetryWaitMax).
		AddRetryCondition(retryCondition).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetLogger(restyLogger{c.logger.Sugar()})

	if jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List}); err == nil {
		restyClient.SetCookieJar(jar)
	}

	restyClient.OnBeforeRequest(c.authorize)
	restyClient.OnAfterResponse(c.checkUnauthorized)

	c.Resty = restyClient
	c.Limiter = newLimiter(opts.RateLimit)
	c.Breaker = resilience.New("backend", resilience.Settings{
		FailureThreshold: 5,
		Cooldown:         30 * time.Second,
		Probes:           2,
		IsFailure:        countsAgainstCircuit,
		OnStateChange: func(name string, from, to resilience.State) {
			c.logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			c.metrics.SetCircuitState(name, int(to))
		},
	})

	return c
}

// SetAuthorizer installs the credential source for subsequent requests.
func (c *Client) SetAuthorizer(a Authorizer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authorizer = a
}

// UnauthorizedHandler receives the Authorization value the backend rejected.
type UnauthorizedHandler func(ctx context.Context, authorization string)

// OnUnauthorized registers fn to run when an authorized request is
// answered with 401.
func (c *Client) OnUnauthorized(fn UnauthorizedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// SetRateLimit configures rate limiting (requests per second, 0 = unlimited).
func (c *Client) SetRateLimit(rps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Limiter = newLimiter(rps)
}

// Request creates a resty request after the breaker and rate limiter admit it.
func (c *Client) Request(ctx context.Context) (*resty.Request, error) {
	if c.Breaker.State() == resilience.StateOpen {
		return nil, fmt.Errorf("backend unavailable: %w", resilience.ErrCircuitOpen)
	}

	c.mu.RLock()
	limiter := c.Limiter
	c.mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	return c.Resty.R().SetContext(ctx), nil
}

// Do executes call under the circuit breaker. Non-2xx responses return an
// *APIError; a 2xx body that cannot be decoded into call.Result returns an
// error wrapping ErrDecode.
func (c *Client) Do(ctx context.Context, call Call) (*resty.Response, error) {
	span, ctx := tracing.StartSpan(ctx, call.Method+" "+call.Route)

	req, err := c.Request(ctx)
	if err != nil {
		return nil, err
	}

	if call.PathParams != nil {
		req.SetPathParams(call.PathParams)
	}
	if call.Query != nil {
		req.SetQueryParamsFromValues(call.Query)
	}
	switch {
	case call.Form != nil:
		req.SetFormData(call.Form)
	case call.Body != nil:
		req.SetHeader("Content-Type", "application/json").SetBody(call.Body)
	}

	var resp *resty.Response
	err = c.Breaker.Do(func() error {
		var execErr error
		resp, execErr = req.Execute(call.Method, call.Route)
		if execErr != nil {
			return execErr
		}
		if resp.IsError() {
			return &APIError{
				Method: call.Method,
				Route:  call.Route,
				Status: resp.StatusCode(),
				Detail: extractDetail(resp.Body()),
			}
		}
		return nil
	})
	c.observe(span, call, resp, err)

	if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrProbeLimited) {
		return nil, fmt.Errorf("backend unavailable: %w", err)
	}
	if err != nil {
		return resp, err
	}

	if call.Result != nil && len(resp.Body()) > 0 {
		if err := sonic.Unmarshal(resp.Body(), call.Result); err != nil {
			return resp, fmt.Errorf("%w: %s %s: %v", ErrDecode, call.Method, call.Route, err)
		}
	}
	return resp, nil
}

func (c *Client) observe(span *tracing.Span, call Call, resp *resty.Response, err error) {
	code := 0
	status := "error"
	if resp != nil && resp.RawResponse != nil {
		code = resp.StatusCode()
		status = strconv.Itoa(code)
	}
	span.Finish(code, err)
	c.metrics.RecordBackendRequest(call.Method, call.Route, status, span.Duration)

	fields := append(span.Fields(), zap.String("status", status))
	if resp != nil && resp.Request != nil {
		fields = append(fields, zap.String("request_id", resp.Request.Header.Get(RequestIDHeader)))
	}

	var apiErr *APIError
	switch {
	case err == nil:
		c.logger.Debug("Backend request", fields...)
	case errors.As(err, &apiErr):
		c.logger.Info("Backend request rejected", append(fields, zap.String("detail", apiErr.Detail))...)
	default:
		c.logger.Warn("Backend request failed", append(fields, zap.Error(err))...)
	}
}

// authorize runs before every request.
func (c *Client) authorize(_ *resty.Client, req *resty.Request) error {
	if req.Header.Get(RequestIDHeader) == "" {
		req.SetHeader(RequestIDHeader, uuid.NewString())
	}
	tracing.Inject(req.Context(), req.Header)

	if isAnonymous(req.Context()) || req.Header.Get("Authorization") != "" {
		return nil
	}

	c.mu.RLock()
	authorizer := c.authorizer
	c.mu.RUnlock()

	if authorizer == nil {
		return nil
	}
	if value, ok := authorizer.AuthorizationHeader(); ok {
		req.SetHeader("Authorization", value)
	}
	return nil
}

// checkUnauthorized runs after every response.
func (c *Client) checkUnauthorized(_ *resty.Client, resp *resty.Response) error {
	if resp.StatusCode() != http.StatusUnauthorized || resp.Request == nil {
		return nil
	}
	ctx := resp.Request.Context()
	authorization := resp.Request.Header.Get("Authorization")
	if isAnonymous(ctx) || authorization == "" {
		return nil
	}

	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()

	if fn != nil {
		fn(ctx, authorization)
	}
	return nil
}

// retryCondition retries idempotent, credentialed requests on the failures
// go-retryablehttp considers recoverable.
func retryCondition(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil {
		return false
	}
	ctx := resp.Request.Context()
	if isAnonymous(ctx) {
		return false
	}
	switch resp.Request.Method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
	default:
		return false
	}

	// The policy error only describes why a retry is wanted.
	retry, _ := retryablehttp.DefaultRetryPolicy(ctx, resp.RawResponse, err)
	return retry
}

// countsAgainstCircuit treats transport failures and 5xx responses as
// backend faults; 4xx responses are the caller's problem.
func countsAgainstCircuit(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled)
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// restyLogger routes resty's internal warnings into zap.
type restyLogger struct {
	s *zap.SugaredLogger
}

func (l restyLogger) Errorf(format string, v ...interface{}) { l.s.Errorf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.s.Warnf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.s.Debugf(format, v...) }
