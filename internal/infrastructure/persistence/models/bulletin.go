package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/bulletin"
)

// AnnouncementModel is the persistence model for announcements.
type AnnouncementModel struct {
	BaseModel
	Title       string    `gorm:"type:varchar(200);not null"`
	Body        string    `gorm:"type:text;not null"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	PublishedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AnnouncementModel) TableName() string {
	return "announcements"
}

// ToDomain converts the persistence model to a domain Announcement entity.
func (m *AnnouncementModel) ToDomain() *bulletin.Announcement {
	return &bulletin.Announcement{
		BaseEntity:  m.BaseModel.ToDomain(),
		Title:       m.Title,
		Body:        m.Body,
		AuthorID:    m.AuthorID,
		PublishedAt: m.PublishedAt,
	}
}

// FromDomain populates the persistence model from a domain Announcement entity.
func (m *AnnouncementModel) FromDomain(a *bulletin.Announcement) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Title = a.Title
	m.Body = a.Body
	m.AuthorID = a.AuthorID
	m.PublishedAt = a.PublishedAt
}

// AnnouncementModelFromDomain creates a new persistence model from a domain Announcement entity.
func AnnouncementModelFromDomain(a *bulletin.Announcement) *AnnouncementModel {
	m := &AnnouncementModel{}
	m.FromDomain(a)
	return m
}
