package model

import "time"

// ScreeningAudit records that a screening happened. It carries no
// patient data: no age, gender or symptoms.
type ScreeningAudit struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID      string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"eventId"`
	Username     string    `gorm:"type:varchar(255);index;not null" json:"username"`
	PrimaryClass string    `gorm:"type:varchar(255);not null" json:"primaryClass"`
	Confidence   float64   `gorm:"not null" json:"confidence"`
	Resolved     bool      `gorm:"not null;default:false" json:"resolved"`
	Language     string    `gorm:"type:varchar(8);not null" json:"language"`
	OccurredAt   LocalTime `gorm:"not null" json:"occurredAt"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName pins the table name.
func (ScreeningAudit) TableName() string {
	return "screening_audits"
}
