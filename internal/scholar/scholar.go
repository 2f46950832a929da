// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar scrapes web search and Google Scholar pages for the
// heuristic author signals. Everything here is HTML held together by class
// names, so parse failures degrade to "no result" rather than erroring the
// pipeline.
package scholar

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/profscan/internal/httputil"
	"github.com/pdiddy/profscan/pkg/types"
)

// Page endpoints. Declared as vars so tests can substitute httptest servers.
var (
	googleSearchBase = "https://www.google.com/search"
	scholarBase      = "https://scholar.google.com"
)

// Client fetches and parses search and profile pages.
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxRetries int
}

// NewClient builds a scraping client from the shared HTTP settings.
func NewClient(cfg types.HTTPConfig, maxRetries int) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  cfg.UserAgent,
		maxRetries: maxRetries,
	}
}

// fetchDocument performs a retried GET and parses the body as HTML.
func (c *Client) fetchDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// SearchTitles returns the text of up to limit result headings for a web
// search query. The query is scoped to academic domains so that a
// "professor"/"faculty" heading is meaningful.
func (c *Client) SearchTitles(ctx context.Context, name string, limit int) ([]string, error) {
	query := name + " site:.edu OR site:.ac.uk OR site:.edu.au"
	params := url.Values{
		"q":   {query},
		"num": {strconv.Itoa(limit)},
	}

	doc, err := c.fetchDocument(ctx, googleSearchBase+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var titles []string
	doc.Find("h3").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		titles = append(titles, strings.TrimSpace(s.Text()))
		return len(titles) < limit
	})
	return titles, nil
}

// FindProfile resolves a name to a Google Scholar profile URL by locating
// the "Profiles" block on the results page, taking the first linked profile.
// Returns "" without an error when no profile block is present.
func (c *Client) FindProfile(ctx context.Context, name string) (string, error) {
	params := url.Values{"q": {name}}
	doc, err := c.fetchDocument(ctx, scholarBase+"/scholar?"+params.Encode())
	if err != nil {
		return "", err
	}

	var href string
	doc.Find("h4").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(s.Text(), "Profiles") {
			return true
		}
		if h, ok := s.Parent().Find("a[href]").First().Attr("href"); ok {
			href = h
		}
		return false
	})
	if href == "" {
		// Result markup shifts frequently; fall back to any citations link.
		href, _ = doc.Find(`a[href^="/citations?"]`).First().Attr("href")
	}
	if href == "" {
		return "", nil
	}
	if strings.HasPrefix(href, "/") {
		return scholarBase + href, nil
	}
	return href, nil
}

// HIndex reads the h-index from a Scholar profile's citation table. Returns
// -1 without an error when the table cell is missing or unparseable.
func (c *Client) HIndex(ctx context.Context, profileURL string) (int, error) {
	doc, err := c.fetchDocument(ctx, profileURL)
	if err != nil {
		return -1, err
	}

	hIndex := -1
	doc.Find("td").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) != "h-index" {
			return true
		}
		if n, convErr := strconv.Atoi(strings.TrimSpace(s.Next().Text())); convErr == nil {
			hIndex = n
		}
		return false
	})
	return hIndex, nil
}
