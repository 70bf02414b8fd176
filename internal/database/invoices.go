package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"rentalmanager/internal/models"
)

// MarkOverdueInvoices moves unpaid and partially paid invoices whose period
// ended before now to the overdue status.
func (d *Database) MarkOverdueInvoices(now time.Time) (int64, error) {
	var marked int64
	err := d.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Invoice{}).
			Where("status IN ? AND period_end < ?", []models.InvoiceStatus{models.InvoiceUnpaid, models.InvoicePartiallyPaid}, now).
			Updates(map[string]any{"status": models.InvoiceOverdue, "updated_at": now})
		if result.Error != nil {
			return fmt.Errorf("failed to mark overdue invoices: %v", result.Error)
		}
		marked = result.RowsAffected
		return nil
	})
	return marked, err
}
