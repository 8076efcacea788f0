package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"steamtrader/internal/components/assert"
	"steamtrader/internal/components/telemetry"
	"steamtrader/lib/cache"
	"steamtrader/lib/restyutil"
	"steamtrader/lib/schema"
	"steamtrader/lib/steamtrader"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://steam-trader.com/"

const (
	report_client_main_page     = "client.main-page"
	report_client_item_info     = "client.item-info"
	report_client_canonical_url = "client.canonical-url"
	report_client_referrals     = "client.referrals"
	report_client_history       = "client.history"
	report_client_per_page      = "client.per-page"
	report_client_sort          = "client.sort"
)

var tracer = otel.Tracer("steamtrader/web")

// gamePaths maps an app id to the section of the site listing its items.
var gamePaths = map[int]string{
	steamtrader.AppTF2:       "tf2",
	steamtrader.AppDOTA2:     "dota2",
	steamtrader.AppSteamGift: "gifts",
	steamtrader.AppCSGO:      "csgo",
}

var sorts = []string{"-rating", "rating", "-price", "price", "-benefit", "benefit", "-name", "name"}

type HistoryCategory int

const (
	HistoryLastPurchases HistoryCategory = iota
	HistoryDayMost
	HistoryAllTimeMost
)

type ReferralStatus int

const (
	ReferralsAll ReferralStatus = iota
	ReferralsActive
	ReferralsPassive
)

type Options struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// SessionID is the value of the site's sid cookie, only the referral
	// pages require it.
	SessionID string
	UserAgent string
	// RequestsPerSecond bounds the request rate of the client, 0 means 2.
	RequestsPerSecond float64
	Timeout           time.Duration
	// Cache keeps the canonical url of every item page, nil disables it.
	Cache    cache.Cache
	CacheTTL time.Duration
	Dump     restyutil.InstrumentOutput
}

// Client reads the pages of the site itself. It exposes data the JSON API
// does not, like the descriptions of individual items.
type Client struct {
	http      *resty.Client
	baseURL   *url.URL
	sessionID string
	cache     cache.Cache
	cacheTTL  time.Duration
	tel       telemetry.API
	decoder   *schema.Decoder
}

func NewClient(tel telemetry.API, opts Options) (*Client, error) {
	assert.NotNil(tel)

	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour * 24
	}

	baseURL, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	scoped := telemetry.NewScopedAPI("steamtrader_web", tel)

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseURL)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseURL.Hostname()))
	httpClient.SetTimeout(opts.Timeout)

	// max burst >= rate just means that no requests will be dropped
	burst := int(opts.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, scoped)
	restyutil.InstrumentClient(httpClient, tracer, opts.Dump)

	return &Client{
		http:      httpClient,
		baseURL:   baseURL,
		sessionID: opts.SessionID,
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
		tel:       scoped,
		decoder:   schema.NewDecoder(tel),
	}, nil
}

// pjax asks for the json form of a page, the server renders only the
// container the selector names.
func (c *Client) pjax(ctx context.Context, container, settingsKey string, perPage int) *resty.Request {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("x-pjax", "true").
		SetHeader("x-requested-with", "XMLHttpRequest").
		SetHeader("x-pjax-container", container)
	if c.sessionID != "" {
		req.SetCookie(&http.Cookie{Name: "sid", Value: c.sessionID})
	}
	if settingsKey != "" {
		req.SetCookie(&http.Cookie{
			Name:  "settings",
			Value: url.QueryEscape(fmt.Sprintf(`{"%s":%d}`, settingsKey, perPage)),
		})
	}
	return req
}

func (c *Client) checkPerPage(perPage int) {
	if perPage < 24 || perPage > 120 || perPage%6 != 0 {
		c.tel.ReportWarning(report_client_per_page, fmt.Errorf("items per page should be 24 to 120 in steps of 6, got %d", perPage))
	}
}

func (c *Client) fetch(req *resty.Request, endpoint, path string) ([]byte, error) {
	res, err := req.Get(path)
	if err != nil {
		return nil, &steamtrader.TransportError{Endpoint: endpoint, Err: err}
	}
	if res.IsError() {
		return nil, &steamtrader.TransportError{
			Endpoint: endpoint,
			Status:   res.StatusCode(),
			Err:      errors.New(res.Status()),
		}
	}
	return res.Body(), nil
}

type MainPageQuery struct {
	PriceFrom int
	// PriceTo at or above 2000 lifts the upper bound, 0 means 2000.
	PriceTo int
	// Filters maps a filter name like "quality" to a facet id.
	Filters map[string]int
	Text    string
	// Sort defaults to "-rating".
	Sort string
	// Page starts at 1, 0 means 1.
	Page    int
	PerPage int
}

func (c *Client) MainPage(ctx context.Context, appID int, q MainPageQuery) (*MainPage, error) {
	ctx, span := tracer.Start(ctx, "MainPage")
	defer span.End()

	game, ok := gamePaths[appID]
	if !ok {
		return nil, unsupportedApp(appID)
	}
	if q.PriceTo == 0 {
		q.PriceTo = 2000
	}
	if q.Sort == "" {
		q.Sort = "-rating"
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PerPage == 0 {
		q.PerPage = 24
	}
	c.checkPerPage(q.PerPage)
	if !validSort(q.Sort) {
		c.tel.ReportWarning(report_client_sort, fmt.Errorf("unknown sort %q", q.Sort))
	}

	params := url.Values{}
	params.Set("price_from", strconv.Itoa(q.PriceFrom))
	params.Set("price_to", strconv.Itoa(q.PriceTo))
	for name, id := range q.Filters {
		params.Set(name, strconv.Itoa(id))
	}
	if q.Text != "" {
		params.Set("text", q.Text)
	}
	params.Set("sort", q.Sort)
	params.Set("page", strconv.Itoa(q.Page))

	req := c.pjax(ctx, "form.market .items .wrap", fmt.Sprintf("market_%d_onPage", appID), q.PerPage).
		SetQueryParamsFromValues(params)
	body, err := c.fetch(req, "main page", game+"/")
	if err != nil {
		span.RecordError(err)
		c.tel.ReportBroken(report_client_main_page, err)
		return nil, err
	}
	page, err := decodeMainPage(c.decoder, body)
	if err != nil {
		span.RecordError(err)
		c.tel.ReportWarning(report_client_main_page, err)
		return nil, err
	}
	return page, nil
}

// canonicalURL resolves the page of an item group. The site redirects any
// "<section>/<gid>-<slug>" path to the right section and slug.
func (c *Client) canonicalURL(ctx context.Context, gid int) (string, error) {
	probe := c.baseURL.JoinPath("tf2", fmt.Sprintf("%d-x", gid))
	key := cache.URLKey("item", probe)

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, key)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			c.tel.ReportWarning(report_client_canonical_url, err)
		}
	}

	res, err := c.http.R().SetContext(ctx).Get(probe.String())
	if err != nil {
		return "", &steamtrader.TransportError{Endpoint: "item page", Err: err}
	}
	if res.IsError() {
		return "", &steamtrader.TransportError{
			Endpoint: "item page",
			Status:   res.StatusCode(),
			Err:      errors.New(res.Status()),
		}
	}
	resolved := res.RawResponse.Request.URL.String()

	if c.cache != nil {
		err = c.cache.Set(ctx, key, resolved, c.cacheTTL)
		if err != nil {
			c.tel.ReportWarning(report_client_canonical_url, err)
		}
	}
	return resolved, nil
}

// ItemInfo reads one page of the sell offers of an item group along with the
// descriptions of the individual items.
func (c *Client) ItemInfo(ctx context.Context, gid, page, perPage int) (*ItemInfo, error) {
	ctx, span := tracer.Start(ctx, "ItemInfo")
	defer span.End()

	if page == 0 {
		page = 1
	}
	if perPage == 0 {
		perPage = 24
	}
	c.checkPerPage(perPage)

	target, err := c.canonicalURL(ctx, gid)
	if err != nil {
		span.RecordError(err)
		c.tel.ReportBroken(report_client_item_info, gid, err)
		return nil, err
	}

	req := c.pjax(ctx, "#content #wrapper", "item_onPage", perPage).
		SetQueryParam("page", strconv.Itoa(page))
	body, err := c.fetch(req, "item page", target)
	if err != nil {
		span.RecordError(err)
		c.tel.ReportBroken(report_client_item_info, gid, err)
		return nil, err
	}
	info, err := decodeItemInfo(c.decoder, body)
	if err != nil {
		span.RecordError(err)
		c.tel.ReportWarning(report_client_item_info, gid, err)
		return nil, err
	}
	return info, nil
}

func (c *Client) requireSession(endpoint string) error {
	if c.sessionID != "" {
		return nil
	}
	return &steamtrader.DomainError{
		Kind:     steamtrader.ErrUnauthorized,
		Endpoint: endpoint,
		Message:  "a session id is required, it is the sid cookie of a logged in browser",
	}
}

func (c *Client) ReferralLink(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "ReferralLink")
	defer span.End()

	if err := c.requireSession("referral"); err != nil {
		return "", err
	}
	body, err := c.fetch(c.pjax(ctx, "#content #wrapper", "", 0), "referral", "referral/")
	if err != nil {
		span.RecordError(err)
		c.tel.ReportBroken(report_client_referrals, err)
		return "", err
	}
	return decodeReferralLink(body)
}

func (c *Client) Referrals(ctx context.Context, status ReferralStatus, perPage int) ([]Referral, error) {
	ctx, span := tracer.Start(ctx, "Referrals")
	defer span.End()

	if status < ReferralsAll || status > ReferralsPassive {
		return nil, &steamtrader.ArgumentError{Name: "referral status", Value: status, Reason: "must be all, active or passive"}
	}
	if err := c.requireSession("referrals"); err != nil {
		return nil, err
	}
	if perPage == 0 {
		perPage = 24
	}
	c.checkPerPage(perPage)

	req := c.pjax(ctx, "#content #wrapper", "referral_onPage", perPage)
	if status != ReferralsAll {
		req.SetQueryParam("type", strconv.Itoa(int(status)))
	}
	body, err := c.fetch(req, "referrals", "referral/")
	if err != nil {
		span.RecordError(err)
		c.tel.ReportBroken(report_client_referrals, err)
		return nil, err
	}
	referrals, err := decodeReferrals(body)
	if err != nil {
		span.RecordError(err)
		c.tel.ReportWarning(report_client_referrals, err)
		return nil, err
	}
	return referrals, nil
}

// History reads the recent or most expensive sales of a game. The page is
// plain html, not a pjax reply.
func (c *Client) History(ctx context.Context, appID int, category HistoryCategory) ([]HistoryItem, error) {
	ctx, span := tracer.Start(ctx, "History")
	defer span.End()

	game, ok := gamePaths[appID]
	if !ok {
		return nil, unsupportedApp(appID)
	}
	if category < HistoryLastPurchases || category > HistoryAllTimeMost {
		return nil, &steamtrader.ArgumentError{Name: "history category", Value: category, Reason: "unknown category"}
	}

	body, err := c.fetch(c.http.R().SetContext(ctx), "history", game+"/history/")
	if err != nil {
		span.RecordError(err)
		c.tel.ReportBroken(report_client_history, err)
		return nil, err
	}
	items, err := decodeHistory(ctx, body, int(category))
	if err != nil {
		span.RecordError(err)
		c.tel.ReportWarning(report_client_history, err)
		return nil, err
	}
	return items, nil
}

func validSort(sort string) bool {
	for _, s := range sorts {
		if s == sort {
			return true
		}
	}
	return false
}

func unsupportedApp(appID int) error {
	return &steamtrader.DomainError{
		Kind:     steamtrader.ErrUnsupportedAppID,
		Endpoint: "web",
		Message:  fmt.Sprintf("the site has no section for app %d", appID),
	}
}
