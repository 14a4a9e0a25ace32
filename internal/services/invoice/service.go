package invoice

import (
	"errors"
	"fmt"
	"time"

	"business-admin-backend/internal/models"
	"business-admin-backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNumberRequired = errors.New("invoice_number is required")
	ErrNoLineItems    = errors.New("at least one line item is required")
	ErrClientNotFound = errors.New("client not found")
)

// InvalidSubtotalError reports which line item failed decimal validation.
type InvalidSubtotalError struct {
	Index    int
	Subtotal string
}

func (e *InvalidSubtotalError) Error() string {
	return fmt.Sprintf("line item %d has a non-numeric subtotal %q", e.Index+1, e.Subtotal)
}

type LineItemInput struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

type CreateInput struct {
	ClientID      uint
	InvoiceNumber string
	IssueDate     time.Time
	DueDate       time.Time
	Status        string
	LineItems     []LineItemInput
}

type Service struct {
	invoices *repository.InvoiceRepository
	clients  *repository.ClientRepository
	db       *gorm.DB
}

func NewService(invoices *repository.InvoiceRepository, clients *repository.ClientRepository) *Service {
	return &Service{
		invoices: invoices,
		clients:  clients,
		db:       invoices.DB(),
	}
}

// Create validates the line items, computes the total and persists the
// invoice header plus all line items in one transaction. Validation happens
// before any write, so a bad subtotal never leaves a header behind.
func (s *Service) Create(input CreateInput) (*models.Invoice, error) {
	if input.InvoiceNumber == "" {
		return nil, ErrNumberRequired
	}
	if len(input.LineItems) == 0 {
		return nil, ErrNoLineItems
	}

	client, err := s.clients.GetByID(input.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	total, err := sumSubtotals(input.LineItems)
	if err != nil {
		return nil, err
	}

	issueDate := input.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}
	dueDate := input.DueDate
	if dueDate.IsZero() {
		dueDate = issueDate.AddDate(0, 0, 30)
	}
	status := input.Status
	if status == "" {
		status = models.InvoiceStatusDraft
	}

	inv := &models.Invoice{
		InvoiceNumber: input.InvoiceNumber,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		TotalAmount:   total.StringFixed(2),
		Status:        status,
		ClientID:      client.ID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		for _, li := range input.LineItems {
			item := models.LineItem{
				Description: li.Description,
				Quantity:    li.Quantity,
				UnitPrice:   li.UnitPrice,
				Subtotal:    li.Subtotal,
				InvoiceID:   inv.ID,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			inv.LineItems = append(inv.LineItems, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	inv.ClientName = client.Name
	return inv, nil
}

// sumSubtotals validates each subtotal as a decimal and returns their sum.
// Subtotals are trusted verbatim; quantity and unit price are not used to
// recompute them.
func sumSubtotals(items []LineItemInput) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, li := range items {
		sub, err := decimal.NewFromString(li.Subtotal)
		if err != nil {
			return decimal.Zero, &InvalidSubtotalError{Index: i, Subtotal: li.Subtotal}
		}
		total = total.Add(sub)
	}
	return total, nil
}
