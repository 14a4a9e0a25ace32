package repository

import (
	"business-admin-backend/internal/models"

	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Expose DB for transactional callers
func (r *InvoiceRepository) DB() *gorm.DB {
	return r.db
}

// List returns all invoices hydrated with line items and client name.
func (r *InvoiceRepository) List() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Preload("LineItems").Preload("Client").Order("id").Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		invoices[i].ClientName = invoices[i].Client.Name
	}
	return invoices, nil
}

// GetByID fetches one invoice aggregate: header, line items, client name.
func (r *InvoiceRepository) GetByID(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Preload("LineItems").Preload("Client").First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	invoice.ClientName = invoice.Client.Name
	return &invoice, nil
}

// Delete removes the invoice and its line items in one transaction. The
// explicit line-item delete keeps the cascade independent of whether the
// store enforces foreign keys.
func (r *InvoiceRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Invoice{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("invoice_id = ?", id).Delete(&models.LineItem{}).Error
	})
}

func (r *InvoiceRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Invoice{}).Where("id = ?", id).Update("status", status).Error
}

func (r *InvoiceRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Invoice{}).Count(&count).Error
	return count, err
}

func (r *InvoiceRepository) CountByStatuses(statuses []string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Invoice{}).Where("status IN ?", statuses).Count(&count).Error
	return count, err
}

func (r *InvoiceRepository) CountByNumber(number string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Invoice{}).Where("invoice_number = ?", number).Count(&count).Error
	return count, err
}
