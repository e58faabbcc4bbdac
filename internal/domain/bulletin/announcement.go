package bulletin

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
)

// Announcement is a property-wide notice written by an administrator
type Announcement struct {
	shared.BaseEntity
	Title       string
	Body        string
	AuthorID    uuid.UUID
	PublishedAt time.Time
}

// NewAnnouncement creates a published announcement
func NewAnnouncement(authorID uuid.UUID, title, body string) (*Announcement, error) {
	if authorID == uuid.Nil {
		return nil, shared.NewInvalidInputError("author_id", "is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewInvalidInputError("title", "is required")
	}
	if len(title) > 200 {
		return nil, shared.NewInvalidInputError("title", "cannot exceed 200 characters")
	}

	return &Announcement{
		BaseEntity:  shared.NewBaseEntity(),
		Title:       title,
		Body:        strings.TrimSpace(body),
		AuthorID:    authorID,
		PublishedAt: time.Now(),
	}, nil
}

// Edit replaces the announcement's title and body
func (a *Announcement) Edit(title, body string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewInvalidInputError("title", "is required")
	}
	a.Title = title
	a.Body = strings.TrimSpace(body)
	a.Touch()
	return nil
}

// AnnouncementRepository defines persistence operations for announcements
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *Announcement) error
	Update(ctx context.Context, announcement *Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Announcement, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Announcement, int64, error)
}
