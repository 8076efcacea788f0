package steamtrader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"steamtrader/internal/components/assert"
	"steamtrader/internal/components/telemetry"
	"steamtrader/lib/restyutil"
	"steamtrader/lib/schema"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.steam-trader.com/"

const (
	report_client_request  = "client.request"
	report_client_response = "client.response"
	report_client_decode   = "client.decode"
	report_client_failed   = "client.failed"
)

var tracer = otel.Tracer("steamtrader/api")

type Options struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL   string
	UserAgent string
	// RequestsPerSecond bounds the request rate of the client, 0 means 2.
	RequestsPerSecond float64
	Timeout           time.Duration
	// Retries is how many times a request is repeated after a transport
	// failure or a "too many requests" reply.
	Retries int
	// RetryWait is the first pause between retries, 0 means one second.
	RetryWait time.Duration
	// Concurrency bounds the detail fetches of FilterInventory and the
	// sales of MultiSell, 0 means 8.
	Concurrency int
	// Dump receives a copy of every HTTP exchange, may be nil.
	Dump restyutil.InstrumentOutput
}

// Client talks to the JSON API. Every method is safe for concurrent use.
type Client struct {
	http        *resty.Client
	apiKey      string
	tel         telemetry.API
	decoder     *schema.Decoder
	concurrency int
}

func NewClient(apiKey string, tel telemetry.API, opts Options) (*Client, error) {
	assert.NotEmptyStr(apiKey)
	assert.NotNil(tel)

	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "steamtrader-go"
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = time.Second
	}

	scoped := telemetry.NewScopedAPI("steamtrader_api", tel)

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseURL)
	httpClient.SetTimeout(opts.Timeout)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	// json headers in place of the browser defaults
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(
		httpClient.GetClient().Transport,
		cloudflarebp.Options{
			AddMissingHeaders: true,
			Headers: map[string]string{
				"Accept":          "application/json",
				"Accept-Language": "en-US,en;q=0.5",
			},
		},
	)
	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetHeader("Api-Key", apiKey)

	// burst equal to the rate so no request is ever dropped
	burst := int(opts.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	httpClient.SetRetryCount(opts.Retries)
	httpClient.SetRetryWaitTime(opts.RetryWait)
	httpClient.SetRetryMaxWaitTime(opts.RetryWait * 10)
	httpClient.AddRetryCondition(shouldRetry)

	telemetry.InstrumentResty(httpClient, scoped)
	restyutil.InstrumentClient(httpClient, tracer, opts.Dump)

	return &Client{
		http:        httpClient,
		apiKey:      apiKey,
		tel:         scoped,
		decoder:     schema.NewDecoder(tel),
		concurrency: opts.Concurrency,
	}, nil
}

// shouldRetry repeats requests that failed in transit or were rejected for
// going over the rate limit, either by status or by envelope code.
func shouldRetry(res *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	if res == nil {
		return false
	}
	if res.StatusCode() == http.StatusTooManyRequests {
		return true
	}
	var env struct {
		Success *bool `json:"success"`
		Code    *int  `json:"code"`
	}
	if json.Unmarshal(res.Body(), &env) != nil {
		return false
	}
	return env.Success != nil && !*env.Success &&
		env.Code != nil && *env.Code == http.StatusTooManyRequests
}

type endpoint struct {
	method string
	path   string
	table  CodeTable
	policy AbsentCodePolicy
}

func (e endpoint) name() string {
	return e.table.Endpoint
}

// call runs one request through transport, classification and decoding. It
// returns nil, nil when the endpoint reported a benign failure.
func call[T any](ctx context.Context, c *Client, ep endpoint, s *schema.Schema[T], params url.Values) (*T, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("call:%s", ep.name()))
	defer span.End()

	c.tel.ReportDebug(report_client_request, ep.method, ep.path, params)

	req := c.http.R().SetContext(ctx)
	if ep.method == resty.MethodGet {
		req.SetQueryParamsFromValues(params)
	} else {
		req.SetFormDataFromValues(params)
	}
	res, err := req.Execute(ep.method, ep.path)
	if err != nil {
		err = &TransportError{Endpoint: ep.name(), Err: err}
		span.RecordError(err)
		c.tel.ReportBroken(report_client_request, err)
		return nil, err
	}

	raw, err := schema.Parse(res.Body())
	if err != nil {
		err = &TransportError{
			Endpoint: ep.name(),
			Status:   res.StatusCode(),
			Err:      fmt.Errorf("reply is not json: %w", err),
		}
		span.RecordError(err)
		c.tel.ReportBroken(report_client_response, err)
		return nil, err
	}

	env, err := ParseEnvelope(c.decoder, raw)
	if err != nil {
		span.RecordError(err)
		c.tel.ReportBroken(report_client_decode, ep.name(), err)
		return nil, err
	}
	outcome, err := Classify(env, ep.table, ep.policy)
	switch outcome {
	case Benign:
		c.tel.ReportDebug(report_client_response, ep.name(), "benign failure")
		return nil, nil
	case Failed:
		span.RecordError(err)
		c.tel.ReportWarning(report_client_failed, err)
		return nil, err
	}

	out, err := schema.Decode(c.decoder, s, raw)
	if err != nil {
		span.RecordError(err)
		c.tel.ReportBroken(report_client_decode, ep.name(), err)
		return nil, err
	}
	return &out, nil
}
