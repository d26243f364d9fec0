package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(body))
	}))
	t.Cleanup(site.Close)
	return site
}

func TestFindEmailPrefersMailtoLink(t *testing.T) {
	site := serveHTML(t, `<html><body>
		<p>Reach our team at info@acme.biz or call us.</p>
		<a href="mailto:sales@acme.biz?subject=Quote">Email sales</a>
	</body></html>`)

	r := NewResolver(site.Client())
	email, err := r.FindEmail(context.Background(), site.URL)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if email != "sales@acme.biz" {
		t.Errorf("email = %q, want the mailto target without query params", email)
	}
}

func TestFindEmailFallsBackToPageText(t *testing.T) {
	site := serveHTML(t, `<html><body>
		<footer>Questions? Write to support@acme.biz anytime.</footer>
	</body></html>`)

	r := NewResolver(site.Client())
	email, err := r.FindEmail(context.Background(), site.URL)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if email != "support@acme.biz" {
		t.Errorf("email = %q, want support@acme.biz", email)
	}
}

func TestFindEmailEmptyWhenPageHasNone(t *testing.T) {
	site := serveHTML(t, `<html><body><h1>Acme Cleaning</h1><p>Call 555-1212</p></body></html>`)

	r := NewResolver(site.Client())
	email, err := r.FindEmail(context.Background(), site.URL)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if email != "" {
		t.Errorf("email = %q, want empty", email)
	}
}

func TestFindEmailErrorStatus(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(site.Close)

	r := NewResolver(site.Client())
	if _, err := r.FindEmail(context.Background(), site.URL); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestFindEmailIgnoresInvalidMailto(t *testing.T) {
	site := serveHTML(t, `<html><body>
		<a href="mailto:">broken</a>
		<a href="mailto:hello@acme.biz">working</a>
	</body></html>`)

	r := NewResolver(site.Client())
	email, err := r.FindEmail(context.Background(), site.URL)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if email != "hello@acme.biz" {
		t.Errorf("email = %q, want hello@acme.biz", email)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"acme.biz", "https://acme.biz"},
		{" acme.biz ", "https://acme.biz"},
		{"http://acme.biz", "http://acme.biz"},
		{"https://acme.biz/contact", "https://acme.biz/contact"},
	}
	for _, tt := range tests {
		if got := normalizeURL(tt.in); got != tt.want {
			t.Errorf("normalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
