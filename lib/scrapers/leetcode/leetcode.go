package leetcode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"leetdeck/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/leetcode")

const DefaultBaseUrl = "https://leetcode.com"

var (
	// the remote service rejected the session credential. getting a
	// fresh LEETCODE_SESSION cookie out of a logged-in browser is the
	// only fix.
	ErrAuthentication = fmt.Errorf("leetcode rejected the session credential")
	// no problem exists for the given slug.
	ErrNotFound = fmt.Errorf("no such problem")
	// connectivity-level failure. rerunning the whole export is the
	// documented recovery path, there is no retry loop here.
	ErrTransient = fmt.Errorf("transient network failure")
)

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	gate *requestGate
}

type ClientOptions struct {
	BaseUrl string
	// minimum spacing between any two requests, shared by all
	// workers. defaults to 2s which is what leetcode's rate limiter
	// tolerates.
	MinInterval time.Duration
	// per-request network timeout.
	Timeout time.Duration
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.MinInterval <= 0 {
		opts.MinInterval = time.Second * 2
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 30
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetHeader("referer", opts.BaseUrl)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(opts.Timeout)

	telemetry.InstrumentResty(client, "scrapers/leetcode/http")

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
		gate:    newRequestGate(opts.MinInterval),
	}
	return c, nil
}

// LoginSession installs the externally supplied session cookie and
// primes the csrf token. The session is never validated here, use
// VerifySession for that.
func (c *Client) LoginSession(ctx context.Context, session string) error {
	ctx, span := tracer.Start(ctx, "client:LoginSession")
	defer span.End()

	c.Http.SetCookie(&http.Cookie{
		Name:   "LEETCODE_SESSION",
		Value:  session,
		Path:   "/",
		Domain: c.BaseUrl.Hostname(),
	})

	// a plain GET makes the server issue the csrftoken cookie, which
	// every graphql POST must mirror in the x-csrftoken header
	res, err := c.Http.R().
		SetContext(ctx).
		Get("/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch csrf token")
		return fmt.Errorf("%w: %s", ErrTransient, err)
	}

	csrf := ""
	for _, cookie := range res.Cookies() {
		if cookie.Name == "csrftoken" {
			csrf = cookie.Value
			break
		}
	}
	if csrf == "" {
		for _, cookie := range c.Http.GetClient().Jar.Cookies(c.BaseUrl) {
			if cookie.Name == "csrftoken" {
				csrf = cookie.Value
				break
			}
		}
	}
	if csrf != "" {
		c.Http.SetHeader("x-csrftoken", csrf)
	}

	return nil
}

// VerifySession checks that the remote service accepts the session
// cookie. Returns the signed-in username.
func (c *Client) VerifySession(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "client:VerifySession")
	defer span.End()

	status, err := c.UserStatus(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to query user status")
		return "", err
	}
	if !status.IsSignedIn {
		span.SetStatus(codes.Error, "session not signed in")
		return "", ErrAuthentication
	}
	return status.Username, nil
}
