package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"business-admin-backend/internal/models"
	"business-admin-backend/internal/pdf"
	"business-admin-backend/internal/repository"
	"business-admin-backend/internal/twilio"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}, &models.Invoice{}, &models.LineItem{}, &models.MessageLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fakeProvider stands in for the Twilio Messages endpoint.
type fakeProvider struct {
	status   int
	payload  string
	requests []map[string]string
}

func (f *fakeProvider) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		f.requests = append(f.requests, map[string]string{
			"To":       r.PostFormValue("To"),
			"From":     r.PostFormValue("From"),
			"Body":     r.PostFormValue("Body"),
			"MediaUrl": r.PostFormValue("MediaUrl"),
		})
		w.WriteHeader(f.status)
		w.Write([]byte(f.payload))
	}
}

func newTestService(t *testing.T, db *gorm.DB, provider *fakeProvider) (*Service, string) {
	t.Helper()
	srv := httptest.NewServer(provider.handler(t))
	t.Cleanup(srv.Close)

	client := twilio.NewClient(srv.Client(), "AC000", "token")
	client.SetBaseURL(srv.URL)

	outDir := t.TempDir()
	svc := NewService(
		repository.NewInvoiceRepository(db),
		repository.NewMessageLogRepository(db),
		pdf.NewRenderer(outDir),
		client,
		"whatsapp:+14155238886",
		"http://localhost:8080/",
	)
	return svc, outDir
}

func seedInvoice(t *testing.T, db *gorm.DB, phone string) *models.Invoice {
	t.Helper()
	client := models.Client{Name: "Alice Johnson", Status: "Active", Phone: phone}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	inv := models.Invoice{InvoiceNumber: "INV-001", TotalAmount: "15.50", Status: models.InvoiceStatusDraft, ClientID: client.ID}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("invoice: %v", err)
	}
	li := models.LineItem{Description: "Consulting", Quantity: 2, UnitPrice: "7.75", Subtotal: "15.50", InvoiceID: inv.ID}
	if err := db.Create(&li).Error; err != nil {
		t.Fatalf("line item: %v", err)
	}
	return &inv
}

func invoiceStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var inv models.Invoice
	if err := db.First(&inv, id).Error; err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	return inv.Status
}

func TestSendTextSuccess(t *testing.T) {
	db := setupTestDB(t)
	provider := &fakeProvider{status: http.StatusCreated, payload: `{"sid":"SM1","status":"queued"}`}
	svc, _ := newTestService(t, db, provider)

	entry, err := svc.SendText(context.Background(), "+14155552671", "hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if entry.ProviderSID != "SM1" || !entry.Succeeded {
		t.Errorf("unexpected log entry: %+v", entry)
	}
	if len(provider.requests) != 1 {
		t.Fatalf("expected 1 provider call, got %d", len(provider.requests))
	}
	if provider.requests[0]["To"] != "whatsapp:+14155552671" {
		t.Errorf("destination not normalized: %q", provider.requests[0]["To"])
	}

	var count int64
	db.Model(&models.MessageLog{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 message log row, got %d", count)
	}
}

func TestSendTextValidation(t *testing.T) {
	db := setupTestDB(t)
	provider := &fakeProvider{status: http.StatusCreated, payload: `{}`}
	svc, _ := newTestService(t, db, provider)

	if _, err := svc.SendText(context.Background(), "", "hi"); !errors.Is(err, ErrPhoneRequired) {
		t.Errorf("expected ErrPhoneRequired, got %v", err)
	}
	if _, err := svc.SendText(context.Background(), "+1", ""); !errors.Is(err, ErrBodyRequired) {
		t.Errorf("expected ErrBodyRequired, got %v", err)
	}
	if len(provider.requests) != 0 {
		t.Errorf("provider must not be contacted on validation failure")
	}
}

func TestSendTextProviderFailureLogged(t *testing.T) {
	db := setupTestDB(t)
	provider := &fakeProvider{status: http.StatusUnauthorized, payload: `{"code":20003,"message":"Authenticate"}`}
	svc, _ := newTestService(t, db, provider)

	_, err := svc.SendText(context.Background(), "+14155552671", "hello")
	var apiErr *twilio.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}

	var entry models.MessageLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("load log: %v", err)
	}
	if entry.Succeeded {
		t.Error("failed dispatch must be logged as unsuccessful")
	}
	if entry.ProviderStatus != "401" {
		t.Errorf("expected provider status 401, got %q", entry.ProviderStatus)
	}
}

func TestSendInvoiceSuccess(t *testing.T) {
	db := setupTestDB(t)
	provider := &fakeProvider{status: http.StatusCreated, payload: `{"sid":"SM2","status":"queued"}`}
	svc, outDir := newTestService(t, db, provider)
	inv := seedInvoice(t, db, "+14155552671")

	sent, entry, err := svc.SendInvoice(context.Background(), inv.ID)
	if err != nil {
		t.Fatalf("send invoice: %v", err)
	}
	if sent.Status != models.InvoiceStatusSent {
		t.Errorf("expected Sent status, got %s", sent.Status)
	}
	if got := invoiceStatus(t, db, inv.ID); got != models.InvoiceStatusSent {
		t.Errorf("expected persisted Sent status, got %s", got)
	}

	// The PDF must be on disk before the provider call.
	filename := fmt.Sprintf("invoice_INV-001_%d.pdf", inv.ID)
	if _, err := os.Stat(filepath.Join(outDir, filename)); err != nil {
		t.Errorf("expected staged PDF: %v", err)
	}

	if len(provider.requests) != 1 {
		t.Fatalf("expected 1 provider call, got %d", len(provider.requests))
	}
	req := provider.requests[0]
	wantMedia := "http://localhost:8080/temp_invoices/" + filename
	if req["MediaUrl"] != wantMedia {
		t.Errorf("expected media URL %q, got %q", wantMedia, req["MediaUrl"])
	}
	if !strings.Contains(req["Body"], "INV-001") || !strings.Contains(req["Body"], "15.50") {
		t.Errorf("body must reference invoice number and total: %q", req["Body"])
	}

	if entry.Kind != models.MessageKindMedia || entry.InvoiceID == nil || *entry.InvoiceID != inv.ID {
		t.Errorf("unexpected log entry: %+v", entry)
	}
}

func TestSendInvoiceNoPhoneLeavesStatus(t *testing.T) {
	db := setupTestDB(t)
	provider := &fakeProvider{status: http.StatusCreated, payload: `{}`}
	svc, _ := newTestService(t, db, provider)
	inv := seedInvoice(t, db, "")

	_, _, err := svc.SendInvoice(context.Background(), inv.ID)
	if !errors.Is(err, ErrNoPhone) {
		t.Fatalf("expected ErrNoPhone, got %v", err)
	}
	if got := invoiceStatus(t, db, inv.ID); got != models.InvoiceStatusDraft {
		t.Errorf("status must stay Draft, got %s", got)
	}
	if len(provider.requests) != 0 {
		t.Error("provider must not be contacted without a phone number")
	}
}

func TestSendInvoiceProviderFailureLeavesStatus(t *testing.T) {
	db := setupTestDB(t)
	provider := &fakeProvider{status: http.StatusBadRequest, payload: `{"code":21211,"message":"Invalid To"}`}
	svc, _ := newTestService(t, db, provider)
	inv := seedInvoice(t, db, "+14155552671")

	_, _, err := svc.SendInvoice(context.Background(), inv.ID)
	if err == nil {
		t.Fatal("expected delivery error")
	}
	if got := invoiceStatus(t, db, inv.ID); got != models.InvoiceStatusDraft {
		t.Errorf("status must stay Draft on failure, got %s", got)
	}
}

func TestSendInvoiceUnknownID(t *testing.T) {
	db := setupTestDB(t)
	provider := &fakeProvider{status: http.StatusCreated, payload: `{}`}
	svc, _ := newTestService(t, db, provider)

	_, _, err := svc.SendInvoice(context.Background(), 999)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected record not found, got %v", err)
	}
}

func TestSendInvoiceRepeatedSendStaysSent(t *testing.T) {
	db := setupTestDB(t)
	provider := &fakeProvider{status: http.StatusCreated, payload: `{"sid":"SM3","status":"queued"}`}
	svc, _ := newTestService(t, db, provider)
	inv := seedInvoice(t, db, "+14155552671")

	if _, _, err := svc.SendInvoice(context.Background(), inv.ID); err != nil {
		t.Fatalf("first send: %v", err)
	}
	// No idempotency guard: a second invocation sends again.
	if _, _, err := svc.SendInvoice(context.Background(), inv.ID); err != nil {
		t.Fatalf("second send: %v", err)
	}
	if len(provider.requests) != 2 {
		t.Errorf("expected 2 provider calls, got %d", len(provider.requests))
	}
	if got := invoiceStatus(t, db, inv.ID); got != models.InvoiceStatusSent {
		t.Errorf("status after second send must still be Sent, got %s", got)
	}
}

func TestInvoiceFilenameSanitizesNumber(t *testing.T) {
	inv := &models.Invoice{ID: 7, InvoiceNumber: "2026/03 A"}
	if got := InvoiceFilename(inv); got != "invoice_2026-03_A_7.pdf" {
		t.Errorf("unexpected filename %q", got)
	}
}
