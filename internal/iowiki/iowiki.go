// Package iowiki looks up English common names of taxa on Wikispecies
// through the MediaWiki API.
package iowiki

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib"
	"github.com/gnames/gntree/pkg/config"
	"github.com/gnames/gntree/pkg/vernacular"
	"golang.org/x/time/rate"
)

const (
	// requestsPerSecond keeps the load on Wikispecies polite.
	requestsPerSecond = 5
	maxTries          = 3
	retryInterval     = 200 * time.Millisecond
)

// Client fetches page content from a MediaWiki API.
type Client struct {
	apiURL    string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	enc       gnfmt.Encoder
}

// New creates a Client from vernacular settings.
func New(cfg config.VernacularConfig) *Client {
	return &Client{
		apiURL:    cfg.APIURL,
		userAgent: cfg.UserAgent,
		http: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		enc:     gnfmt.GNjson{},
	}
}

// Fetch returns the English common name of a taxon. It satisfies
// vernacular.FetchFunc. A missing page or a page without the name is not
// an error, in this case the boolean is false.
func (c *Client) Fetch(ctx context.Context, name string) (string, bool, error) {
	content, err := c.Content(ctx, name)
	if err != nil {
		return "", false, err
	}
	if content == "" {
		return "", false, nil
	}
	res, ok := vernacular.ParseVN(content)
	if !ok {
		return "", false, nil
	}
	return gnlib.FixUtf8(res), true, nil
}

// Content returns the wikitext of the page with a given title, or an empty
// string if there is no such page.
func (c *Client) Content(ctx context.Context, title string) (string, error) {
	op := func() ([]byte, error) {
		return c.get(ctx, title)
	}
	body, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(newBackOff()),
		backoff.WithMaxTries(maxTries),
	)
	if err != nil {
		return "", err
	}

	var resp response
	if err = c.enc.Decode(body, &resp); err != nil {
		return "", ResponseError(title, err)
	}
	return resp.content(), nil
}

func (c *Client) get(ctx context.Context, title string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, backoff.Permanent(RequestError(title, err))
	}

	params := url.Values{
		"action":        {"query"},
		"prop":          {"revisions"},
		"titles":        {title},
		"rvslots":       {"*"},
		"rvprop":        {"content"},
		"format":        {"json"},
		"formatversion": {"2"},
	}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil,
	)
	if err != nil {
		return nil, backoff.Permanent(RequestError(title, err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(RequestError(title, err))
		}
		return nil, RequestError(title, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, RequestError(title, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode >= http.StatusInternalServerError:
		slog.Debug("Retrying Wikispecies request",
			"title", title, "status", resp.StatusCode)
		return nil, RequestError(title, statusError(resp.StatusCode))
	default:
		return nil, backoff.Permanent(
			RequestError(title, statusError(resp.StatusCode)),
		)
	}
}

func newBackOff() *backoff.ExponentialBackOff {
	res := backoff.NewExponentialBackOff()
	res.InitialInterval = retryInterval
	res.MaxInterval = 4 * retryInterval
	return res
}

func statusError(code int) error {
	return fmt.Errorf("unexpected status %d %s", code, http.StatusText(code))
}

type response struct {
	Query struct {
		Pages []page `json:"pages"`
	} `json:"query"`
}

type page struct {
	Title     string     `json:"title"`
	Missing   bool       `json:"missing"`
	Invalid   bool       `json:"invalid"`
	Revisions []revision `json:"revisions"`
}

type revision struct {
	Slots struct {
		Main struct {
			Content string `json:"content"`
		} `json:"main"`
	} `json:"slots"`
}

func (r response) content() string {
	if len(r.Query.Pages) == 0 {
		return ""
	}
	p := r.Query.Pages[0]
	if p.Missing || p.Invalid || len(p.Revisions) == 0 {
		return ""
	}
	return p.Revisions[0].Slots.Main.Content
}
