package twilio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeWhatsApp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+14155552671", "whatsapp:+14155552671"},
		{"whatsapp:+14155552671", "whatsapp:+14155552671"},
		{" +4917612345678 ", "whatsapp:+4917612345678"},
	}
	for _, tt := range tests {
		if got := NormalizeWhatsApp(tt.in); got != tt.want {
			t.Errorf("NormalizeWhatsApp(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSendMessageSuccess(t *testing.T) {
	var gotPath, gotUser, gotPass string
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotForm = map[string]string{
			"From":     r.PostFormValue("From"),
			"To":       r.PostFormValue("To"),
			"Body":     r.PostFormValue("Body"),
			"MediaUrl": r.PostFormValue("MediaUrl"),
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM123","status":"queued","to":"whatsapp:+1","from":"whatsapp:+2"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "AC000", "token")
	c.SetBaseURL(srv.URL)

	msg, err := c.SendMessage(context.Background(), "whatsapp:+2", "whatsapp:+1", "hello", "http://example.com/doc.pdf")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.SID != "SM123" || msg.Status != "queued" {
		t.Errorf("unexpected message: %+v", msg)
	}
	if len(msg.Raw) == 0 {
		t.Error("expected raw response captured")
	}
	if gotPath != "/2010-04-01/Accounts/AC000/Messages.json" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotUser != "AC000" || gotPass != "token" {
		t.Errorf("unexpected basic auth %q:%q", gotUser, gotPass)
	}
	if gotForm["To"] != "whatsapp:+1" || gotForm["From"] != "whatsapp:+2" || gotForm["Body"] != "hello" {
		t.Errorf("unexpected form: %v", gotForm)
	}
	if gotForm["MediaUrl"] != "http://example.com/doc.pdf" {
		t.Errorf("unexpected MediaUrl %q", gotForm["MediaUrl"])
	}
}

func TestSendMessageOmitsEmptyMediaURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if _, ok := r.PostForm["MediaUrl"]; ok {
			t.Error("MediaUrl must be absent for plain messages")
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM1","status":"queued"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "AC000", "token")
	c.SetBaseURL(srv.URL)
	if _, err := c.SendMessage(context.Background(), "f", "t", "body", ""); err != nil {
		t.Fatalf("send: %v", err)
	}
}

func TestSendMessageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":20003,"message":"Authenticate"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "AC000", "bad-token")
	c.SetBaseURL(srv.URL)

	_, err := c.SendMessage(context.Background(), "f", "t", "body", "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Code != 20003 {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestConfigured(t *testing.T) {
	if NewClient(nil, "", "").Configured() {
		t.Error("blank credentials must not report configured")
	}
	if !NewClient(nil, "AC000", "tok").Configured() {
		t.Error("credentials present must report configured")
	}
}
