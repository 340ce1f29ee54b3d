// Package resolver turns Google News RSS redirect URLs into the publisher
// article URLs behind them. It fetches the redirect page, lifts the signed
// request token out of it, posts that token to the batch-execute RPC
// endpoint, and reads the article URL from the doubly encoded response.
package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonesrussell/newsurl/internal/logger"
)

// Default configuration values.
const (
	// DefaultEndpoint is the batch-execute RPC endpoint.
	DefaultEndpoint = "https://news.google.com/_/DotsSplashUi/data/batchexecute"

	// DefaultUserAgent is a browser user agent. The endpoint serves
	// browsers; a bare Go client UA gets consent interstitials instead of
	// the redirect page.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36" +
		" (KHTML, like Gecko) Chrome/132.0.0.0 Safari/537.36"

	// DefaultMaxBodyBytes limits how much of a response body is read.
	DefaultMaxBodyBytes = 10 * 1024 * 1024 // 10 MB

	// defaultClientTimeout bounds requests when no client is supplied.
	defaultClientTimeout = 30 * time.Second
)

// Redirect URL constraints.
const (
	redirectHost       = "news.google.com"
	redirectPathPrefix = "/rss/articles/"
)

// contentTypeForm is the form content type the endpoint requires, charset
// included.
const contentTypeForm = "application/x-www-form-urlencoded;charset=UTF-8"

// Config configures a Resolver.
type Config struct {
	// Endpoint is the batch-execute RPC URL.
	Endpoint string
	// UserAgent is sent on both the page fetch and the RPC call.
	UserAgent string
	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes int64
}

// setDefaults applies default values to the config.
func (c *Config) setDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

// Resolver resolves Google News redirect URLs. It holds no per-call state;
// one instance is safe for concurrent use.
type Resolver struct {
	cfg    Config
	client *http.Client
	log    logger.Logger
}

// New creates a Resolver. A nil client gets a default one with a timeout;
// a nil logger silences logging.
func New(cfg Config, client *http.Client, log logger.Logger) *Resolver {
	cfg.setDefaults()
	if client == nil {
		client = &http.Client{Timeout: defaultClientTimeout}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Resolver{cfg: cfg, client: client, log: log}
}

// ValidateRedirectURL checks that rawURL is a Google News article redirect
// URL: https scheme, news.google.com host, /rss/articles/ path prefix.
func ValidateRedirectURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return &ParseError{Step: "validate input", Err: fmt.Errorf("%w: %v", ErrInvalidRedirectURL, err)}
	}
	if u.Scheme != "https" || !strings.EqualFold(u.Host, redirectHost) ||
		!strings.HasPrefix(u.Path, redirectPathPrefix) {
		return &ParseError{Step: "validate input", Err: fmt.Errorf("%w: %q", ErrInvalidRedirectURL, rawURL)}
	}
	return nil
}

// Resolve resolves one redirect URL to the publisher article URL. The steps
// run strictly in order, each consuming the previous step's output, and the
// first failure aborts the whole operation. ctx bounds both network calls.
func (r *Resolver) Resolve(ctx context.Context, redirectURL string) (string, error) {
	return r.resolve(ctx, redirectURL, nil)
}

// Inspect resolves one redirect URL like Resolve while recording per-step
// detail. On failure the returned trace still holds the steps that ran.
func (r *Resolver) Inspect(ctx context.Context, redirectURL string) (*Trace, error) {
	tr := &Trace{RedirectURL: redirectURL}
	resolved, err := r.resolve(ctx, redirectURL, tr)
	tr.ResolvedURL = resolved
	return tr, err
}

func (r *Resolver) resolve(ctx context.Context, redirectURL string, tr *Trace) (string, error) {
	start := time.Now()

	if err := ValidateRedirectURL(redirectURL); err != nil {
		return "", err
	}
	tr.add("validate input", redirectURL)

	page, err := r.fetchPage(ctx, redirectURL)
	if err != nil {
		return "", err
	}
	r.log.Debug("fetched redirect page",
		logger.String("url", redirectURL),
		logger.Int("bytes", len(page)))
	tr.add("fetch page", fmt.Sprintf("%d bytes", len(page)))

	raw, err := extractToken(page)
	if err != nil {
		return "", err
	}
	r.log.Debug("extracted token", logger.Int("chars", len(raw)))
	tr.add("extract token", fmt.Sprintf("%d chars", len(raw)))

	seq, err := decodeToken(raw)
	if err != nil {
		return "", err
	}
	tr.add("decode token", fmt.Sprintf("%d elements", len(seq)))

	payload, err := buildPayload(seq)
	if err != nil {
		return "", err
	}
	tr.add("build payload", fmt.Sprintf("%d elements", len(payload)))

	fReq, err := buildEnvelope(payload)
	if err != nil {
		return "", err
	}
	tr.add("build envelope", fReq)

	body, err := r.callEndpoint(ctx, fReq)
	if err != nil {
		return "", err
	}
	r.log.Debug("called endpoint",
		logger.String("endpoint", r.cfg.Endpoint),
		logger.Int("bytes", len(body)))
	tr.add("call endpoint", fmt.Sprintf("%d bytes", len(body)))

	stripped, err := stripPrefix(body)
	if err != nil {
		return "", err
	}

	articleURL, err := extractArticleURL(stripped)
	if err != nil {
		return "", err
	}
	tr.add("extract article url", articleURL)

	r.log.Info("resolved redirect",
		logger.String("url", redirectURL),
		logger.String("resolved", articleURL),
		logger.Duration("took", time.Since(start)))

	return articleURL, nil
}

// fetchPage issues the GET for the redirect page and returns its body.
func (r *Resolver) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, &NetworkError{Op: "fetch page", URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)

	return r.do(req, "fetch page")
}

// callEndpoint posts the f.req form to the batch-execute endpoint and
// returns the raw response body, guard prefix included.
func (r *Resolver) callEndpoint(ctx context.Context, fReq string) ([]byte, error) {
	form := url.Values{"f.req": {fReq}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.Endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &NetworkError{Op: "call endpoint", URL: r.cfg.Endpoint, Err: err}
	}
	req.Header.Set("Content-Type", contentTypeForm)
	req.Header.Set("User-Agent", r.cfg.UserAgent)

	return r.do(req, "call endpoint")
}

// do runs one request, enforces a 2xx status, and reads the capped body.
func (r *Resolver) do(req *http.Request, op string) ([]byte, error) {
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &NetworkError{
			Op:  op,
			URL: req.URL.String(),
			Err: fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.cfg.MaxBodyBytes))
	if err != nil {
		return nil, &NetworkError{Op: op, URL: req.URL.String(), Err: fmt.Errorf("read response body: %w", err)}
	}

	return body, nil
}
