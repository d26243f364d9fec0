// Package enrichment discovers a missing email address by scanning a
// candidate's website. Every failure here is non-fatal: the outreach
// pipeline continues without an email.
package enrichment

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const fetchTimeout = 10 * time.Second

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

type Resolver struct {
	client *http.Client
}

func NewResolver(client *http.Client) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &Resolver{client: client}
}

// FindEmail fetches the site and looks for an address, mailto links
// first, then the page's visible text. Returns "" when nothing is found.
func (r *Resolver) FindEmail(ctx context.Context, website string) (string, error) {
	doc, err := r.fetchDocument(ctx, normalizeURL(website))
	if err != nil {
		return "", err
	}

	if email := mailtoAddress(doc); email != "" {
		return email, nil
	}

	if email := emailPattern.FindString(doc.Text()); email != "" {
		return email, nil
	}

	return "", nil
}

// normalizeURL defaults to https when the candidate record stores a bare
// domain like "acme.biz".
func normalizeURL(website string) string {
	site := strings.TrimSpace(website)
	if !strings.HasPrefix(site, "http://") && !strings.HasPrefix(site, "https://") {
		site = "https://" + site
	}
	return site
}

func (r *Resolver) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "BrokerBridge/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch website: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("website returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// mailtoAddress returns the first mailto target, stripped of query
// parameters like ?subject=.
func mailtoAddress(doc *goquery.Document) string {
	var email string
	doc.Find(`a[href^='mailto:']`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.Index(addr, "?"); i >= 0 {
			addr = addr[:i]
		}
		addr = strings.TrimSpace(addr)
		if emailPattern.MatchString(addr) {
			email = addr
			return false
		}
		return true
	})
	return email
}
