package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/afriride/travel-booking/internal/model"
)

// InquiryRepo stores contact form submissions.
type InquiryRepo struct {
	db *sql.DB
}

// NewInquiryRepo returns an InquiryRepo bound to db.
func NewInquiryRepo(db *sql.DB) *InquiryRepo { return &InquiryRepo{db: db} }

// CreateInquiry inserts in and populates ID, Status and CreatedAt.
func (r *InquiryRepo) CreateInquiry(ctx context.Context, in *model.ContactInquiry) error {
	id := uuid.NewString()
	const q = `INSERT INTO contact_inquiries (id, name, email, phone, subject, message) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, id, in.Name, in.Email, nullString(in.Phone), in.Subject, in.Message); err != nil {
		return fmt.Errorf("insert contact inquiry: %w", err)
	}
	var created time.Time
	const sel = `SELECT status, created_at FROM contact_inquiries WHERE id = ?`
	if err := r.db.QueryRowContext(ctx, sel, id).Scan(&in.Status, &created); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("contact inquiry %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("read back contact inquiry: %w", err)
	}
	in.ID = id
	in.CreatedAt = &created
	return nil
}
