package repository

import (
	"errors"

	"gorm.io/gorm"

	"gramhealth-go/internal/model"
)

// AuditRepository persists screening audit records.
type AuditRepository interface {
	// Create stores audit. Replaying an already stored event is a no-op.
	Create(audit *model.ScreeningAudit) error
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates an AuditRepository backed by the screening_audits table.
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(audit *model.ScreeningAudit) error {
	err := r.db.Create(audit).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}
