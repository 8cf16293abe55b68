package timeline

import (
	"context"

	"gorm.io/gorm"
)

// EntryStore is the persistence contract for timeline entries.
type EntryStore interface {
	ListByEvent(ctx context.Context, eventID uint) ([]TimelineEntry, error)
	GetByID(ctx context.Context, id uint) (*TimelineEntry, error)
	Insert(ctx context.Context, e *TimelineEntry) error
	Update(ctx context.Context, e *TimelineEntry) error
	Delete(ctx context.Context, id uint) error
}

// ReactionStore loads the raw reaction rows a tally is derived from.
type ReactionStore interface {
	ListByEntry(ctx context.Context, entryID uint) ([]Reaction, error)
}

// Repository implements EntryStore and ReactionStore on Postgres.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ===========================
// 📄 Entries for an event, newest first
func (r *Repository) ListByEvent(ctx context.Context, eventID uint) ([]TimelineEntry, error) {
	var entries []TimelineEntry
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*TimelineEntry, error) {
	var e TimelineEntry
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) Insert(ctx context.Context, e *TimelineEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *Repository) Update(ctx context.Context, e *TimelineEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&TimelineEntry{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ===========================
// 🎭 Raw reactions for one entry
func (r *Repository) ListByEntry(ctx context.Context, entryID uint) ([]Reaction, error) {
	var reactions []Reaction
	err := r.db.WithContext(ctx).
		Where("timeline_event_id = ?", entryID).
		Find(&reactions).Error
	return reactions, err
}
