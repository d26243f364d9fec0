package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFromEnvFallsBackToMocks(t *testing.T) {
	t.Setenv("MAIL_API_KEY", "")
	t.Setenv("SMS_ACCOUNT_SID", "")
	t.Setenv("SMS_AUTH_TOKEN", "")

	if _, ok := EmailFromEnv().(*MockEmailSender); !ok {
		t.Errorf("missing mail credentials must select the mock sender")
	}
	if _, ok := SMSFromEnv().(*MockSMSSender); !ok {
		t.Errorf("missing sms credentials must select the mock sender")
	}
}

func TestFromEnvSelectsProviders(t *testing.T) {
	t.Setenv("MAIL_API_KEY", "sk-test")
	t.Setenv("SMS_ACCOUNT_SID", "AC123")
	t.Setenv("SMS_AUTH_TOKEN", "tok")

	if _, ok := EmailFromEnv().(*ProviderEmailSender); !ok {
		t.Errorf("mail credentials must select the provider sender")
	}
	if _, ok := SMSFromEnv().(*ProviderSMSSender); !ok {
		t.Errorf("sms credentials must select the provider sender")
	}
}

func TestProviderEmailCarriesTrackingID(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewProviderEmailSender(srv.URL, "sk-test")
	err := s.SendEmail(context.Background(), EmailMessage{
		To:         "info@acme.biz",
		FromEmail:  "jordan@brokerbridge.example",
		FromName:   "Jordan Okelo",
		Subject:    "Quick question",
		Body:       "Hello.",
		TrackingID: "trk-1",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	personalizations := captured["personalizations"].([]interface{})
	args := personalizations[0].(map[string]interface{})["custom_args"].(map[string]interface{})
	if args["tracking_id"] != "trk-1" {
		t.Errorf("tracking_id = %v, want trk-1", args["tracking_id"])
	}
}

func TestProviderEmailErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewProviderEmailSender(srv.URL, "sk-bad")
	if err := s.SendEmail(context.Background(), EmailMessage{To: "info@acme.biz"}); err == nil {
		t.Fatalf("expected error for 401 response")
	}
}

func TestProviderSMSPostsForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC123" || pass != "tok" {
			t.Errorf("basic auth = %q/%q", user, pass)
		}
		r.ParseForm()
		if r.PostForm.Get("To") != "+15551212" || r.PostForm.Get("Body") != "Hi from BrokerBridge" {
			t.Errorf("unexpected form: %v", r.PostForm)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := NewProviderSMSSender(srv.URL, "AC123", "tok")
	err := s.SendSMS(context.Background(), SMSMessage{
		From: "+15550000",
		To:   "+15551212",
		Body: "Hi from BrokerBridge",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
}
