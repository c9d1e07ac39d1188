package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StageDraft is one saved draft value for a complaint stage field.
type StageDraft struct {
	ID           uint   `gorm:"primaryKey"`
	TicketNumber string `gorm:"column:ticket_number;uniqueIndex:idx_stage_drafts_ticket_field"`
	Field        string `gorm:"column:field;uniqueIndex:idx_stage_drafts_ticket_field"`
	Value        string `gorm:"column:value"`
	UpdatedAt    time.Time
}

func (StageDraft) TableName() string {
	return "stage_drafts"
}

// DraftRepository stores stage drafts in Postgres. It satisfies draft.Store.
type DraftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) Put(ctx context.Context, ticket, field, value string) error {
	if value == "" {
		return r.db.WithContext(ctx).
			Where("ticket_number = ? AND field = ?", ticket, field).
			Delete(&StageDraft{}).Error
	}

	record := StageDraft{
		TicketNumber: ticket,
		Field:        field,
		Value:        value,
		UpdatedAt:    time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticket_number"}, {Name: "field"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
}

func (r *DraftRepository) Get(ctx context.Context, ticket, field string) (string, error) {
	var record StageDraft
	err := r.db.WithContext(ctx).
		Where("ticket_number = ? AND field = ?", ticket, field).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return record.Value, nil
}

func (r *DraftRepository) Fields(ctx context.Context, ticket string) (map[string]string, error) {
	var records []StageDraft
	err := r.db.WithContext(ctx).
		Where("ticket_number = ?", ticket).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string, len(records))
	for _, record := range records {
		fields[record.Field] = record.Value
	}
	return fields, nil
}

func (r *DraftRepository) ClearTicket(ctx context.Context, ticket string) error {
	return r.db.WithContext(ctx).
		Where("ticket_number = ?", ticket).
		Delete(&StageDraft{}).Error
}
