// Package branch provides the forum browsing read path: sections,
// branches and paged topic listings.
package branch

import (
	"context"
	"log/slog"

	"github.com/res5515/jcommune/internal/model"
	"github.com/res5515/jcommune/internal/pagination"
	"github.com/res5515/jcommune/internal/storage"
)

// Service reads branch and topic listings
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a branch service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// ListSections returns all sections in display order
func (s *Service) ListSections(ctx context.Context) ([]*model.Section, error) {
	return s.storage.ListSections(ctx)
}

// ListBranches returns all branches
func (s *Service) ListBranches(ctx context.Context) ([]*model.Branch, error) {
	return s.storage.ListBranches(ctx)
}

// BranchesBySection returns the branches belonging to a section
func (s *Service) BranchesBySection(ctx context.Context, sectionID model.SectionID) ([]*model.Branch, error) {
	return s.storage.ListBranchesBySection(ctx, sectionID)
}

// GetBranch returns a single branch
func (s *Service) GetBranch(ctx context.Context, id model.BranchID) (*model.Branch, error) {
	return s.storage.GetBranch(ctx, id)
}

// TopicPage returns one page of a branch's topics, newest activity first
func (s *Service) TopicPage(ctx context.Context, branchID model.BranchID, number, size int) ([]*model.Topic, pagination.Page, error) {
	topics, err := s.storage.ListTopics(ctx, branchID)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	page := pagination.New(number, size, len(topics))
	start, end := page.Bounds()
	return topics[start:end], page, nil
}
