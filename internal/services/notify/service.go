package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"business-admin-backend/internal/models"
	"business-admin-backend/internal/pdf"
	"business-admin-backend/internal/repository"
	"business-admin-backend/internal/twilio"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	ErrNotConfigured = errors.New("messaging provider credentials are not configured")
	ErrNoPhone       = errors.New("client has no phone number on file")
	ErrPhoneRequired = errors.New("phone is required")
	ErrBodyRequired  = errors.New("message is required")
)

type Service struct {
	invoices      *repository.InvoiceRepository
	logs          *repository.MessageLogRepository
	renderer      *pdf.Renderer
	client        *twilio.Client
	sender        string
	publicBaseURL string
}

func NewService(
	invoices *repository.InvoiceRepository,
	logs *repository.MessageLogRepository,
	renderer *pdf.Renderer,
	client *twilio.Client,
	sender string,
	publicBaseURL string,
) *Service {
	return &Service{
		invoices:      invoices,
		logs:          logs,
		renderer:      renderer,
		client:        client,
		sender:        sender,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

// SendText submits a plain WhatsApp message to the given phone number.
func (s *Service) SendText(ctx context.Context, phone, body string) (*models.MessageLog, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, ErrPhoneRequired
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrBodyRequired
	}
	if !s.client.Configured() {
		return nil, ErrNotConfigured
	}

	to := twilio.NormalizeWhatsApp(phone)
	msg, sendErr := s.client.SendMessage(ctx, s.sender, to, body, "")
	entry := s.logAttempt(models.MessageKindText, to, body, "", nil, msg, sendErr)
	if sendErr != nil {
		return entry, sendErr
	}
	return entry, nil
}

// SendInvoice renders the invoice PDF, submits it as a media message to the
// invoice's client and, on provider acknowledgment, transitions the invoice
// to Sent. The PDF is written before the provider is contacted so the media
// URL is fetchable by the time the provider receives it.
func (s *Service) SendInvoice(ctx context.Context, invoiceID uint) (*models.Invoice, *models.MessageLog, error) {
	inv, err := s.invoices.GetByID(invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(inv.Client.Phone) == "" {
		return inv, nil, ErrNoPhone
	}
	if !s.client.Configured() {
		return inv, nil, ErrNotConfigured
	}

	filename := InvoiceFilename(inv)
	if _, err := s.renderer.RenderToFile(renderData(inv), filename); err != nil {
		return inv, nil, fmt.Errorf("generate invoice document: %w", err)
	}

	mediaURL := s.publicBaseURL + "/temp_invoices/" + filename
	to := twilio.NormalizeWhatsApp(inv.Client.Phone)
	body := fmt.Sprintf("Hello %s, please find invoice %s attached. Total due: %s.",
		inv.ClientName, inv.InvoiceNumber, inv.TotalAmount)

	msg, sendErr := s.client.SendMessage(ctx, s.sender, to, body, mediaURL)
	entry := s.logAttempt(models.MessageKindMedia, to, body, mediaURL, &inv.ID, msg, sendErr)
	if sendErr != nil {
		return inv, entry, sendErr
	}

	if err := s.invoices.UpdateStatus(inv.ID, models.InvoiceStatusSent); err != nil {
		return inv, entry, fmt.Errorf("message sent but status update failed: %w", err)
	}
	inv.Status = models.InvoiceStatusSent
	return inv, entry, nil
}

// ListMessages returns the dispatch history, newest first.
func (s *Service) ListMessages() ([]models.MessageLog, error) {
	return s.logs.List()
}

// InvoiceFilename derives the staged PDF name from the invoice number and
// row id.
func InvoiceFilename(inv *models.Invoice) string {
	number := strings.NewReplacer("/", "-", "\\", "-", " ", "_").Replace(inv.InvoiceNumber)
	return fmt.Sprintf("invoice_%s_%d.pdf", number, inv.ID)
}

func renderData(inv *models.Invoice) pdf.Invoice {
	data := pdf.Invoice{
		Number:     inv.InvoiceNumber,
		ClientName: inv.ClientName,
		IssueDate:  inv.IssueDate.Format("2006-01-02"),
		DueDate:    inv.DueDate.Format("2006-01-02"),
		Total:      inv.TotalAmount,
	}
	for _, li := range inv.LineItems {
		data.Items = append(data.Items, pdf.Item{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Subtotal:    li.Subtotal,
		})
	}
	return data
}

func (s *Service) logAttempt(kind, to, body, mediaURL string, invoiceID *uint, msg *twilio.Message, sendErr error) *models.MessageLog {
	entry := &models.MessageLog{
		ID:        uuid.New(),
		Kind:      kind,
		To:        to,
		Body:      body,
		MediaURL:  mediaURL,
		InvoiceID: invoiceID,
		Succeeded: sendErr == nil,
	}
	if msg != nil {
		entry.ProviderSID = msg.SID
		entry.ProviderStatus = msg.Status
		if len(msg.Raw) > 0 {
			entry.ProviderResponse = datatypes.JSON(msg.Raw)
		}
	}
	var apiErr *twilio.APIError
	if errors.As(sendErr, &apiErr) {
		entry.ProviderStatus = strconv.Itoa(apiErr.StatusCode)
	}
	if err := s.logs.Create(entry); err != nil {
		log.Printf("notify: failed to record message log: %v", err)
	}
	return entry
}
