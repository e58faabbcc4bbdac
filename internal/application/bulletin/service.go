package bulletin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/bulletin"
	"github.com/rently/backend/internal/domain/shared"
)

// CreateAnnouncementRequest publishes a property-wide notice
type CreateAnnouncementRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
	Body  string `json:"body" binding:"omitempty,max=10000"`
}

// UpdateAnnouncementRequest is a patch over an announcement
type UpdateAnnouncementRequest struct {
	Title *string `json:"title" binding:"omitempty,min=1,max=200"`
	Body  *string `json:"body" binding:"omitempty,max=10000"`
}

// AnnouncementResponse represents an announcement in API responses
type AnnouncementResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body,omitempty"`
	AuthorID    uuid.UUID `json:"author_id"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AnnouncementListFilter represents query parameters for listing
type AnnouncementListFilter struct {
	Search   string `form:"search" binding:"omitempty,max=200"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// Service handles announcements. Writing is an admin concern; every
// authenticated tenant can read.
type Service struct {
	announcementRepo bulletin.AnnouncementRepository
}

// NewService creates a new bulletin Service
func NewService(announcementRepo bulletin.AnnouncementRepository) *Service {
	return &Service{announcementRepo: announcementRepo}
}

// Create publishes an announcement authored by the given admin
func (s *Service) Create(ctx context.Context, authorID uuid.UUID, req CreateAnnouncementRequest) (*AnnouncementResponse, error) {
	announcement, err := bulletin.NewAnnouncement(authorID, req.Title, req.Body)
	if err != nil {
		return nil, err
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}
	response := toAnnouncementResponse(announcement)
	return &response, nil
}

// Update edits an announcement's title or body
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateAnnouncementRequest) (*AnnouncementResponse, error) {
	announcement, err := s.announcementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if announcement == nil {
		return nil, shared.NewNotFoundError("Announcement", id.String())
	}

	title := announcement.Title
	if req.Title != nil {
		title = *req.Title
	}
	body := announcement.Body
	if req.Body != nil {
		body = *req.Body
	}
	if err := announcement.Edit(title, body); err != nil {
		return nil, err
	}

	if err := s.announcementRepo.Update(ctx, announcement); err != nil {
		return nil, err
	}
	response := toAnnouncementResponse(announcement)
	return &response, nil
}

// Delete removes an announcement
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.announcementRepo.Delete(ctx, id)
}

// Get returns a single announcement
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*AnnouncementResponse, error) {
	announcement, err := s.announcementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if announcement == nil {
		return nil, shared.NewNotFoundError("Announcement", id.String())
	}
	response := toAnnouncementResponse(announcement)
	return &response, nil
}

// List returns a paginated page of announcements, newest first by default
func (s *Service) List(ctx context.Context, filter AnnouncementListFilter) (*shared.Paginated[AnnouncementResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	} else {
		domainFilter.OrderBy = "published_at"
		domainFilter.OrderDir = "desc"
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	announcements, total, err := s.announcementRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]AnnouncementResponse, 0, len(announcements))
	for _, announcement := range announcements {
		items = append(items, toAnnouncementResponse(announcement))
	}
	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

func toAnnouncementResponse(announcement *bulletin.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:          announcement.ID,
		Title:       announcement.Title,
		Body:        announcement.Body,
		AuthorID:    announcement.AuthorID,
		PublishedAt: announcement.PublishedAt,
		CreatedAt:   announcement.CreatedAt,
		UpdatedAt:   announcement.UpdatedAt,
	}
}
