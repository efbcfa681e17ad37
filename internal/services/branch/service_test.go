package branch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/res5515/jcommune/internal/model"
	"github.com/res5515/jcommune/internal/storage/memory"
	"github.com/res5515/jcommune/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) seedTopics(branchID model.BranchID, n int) {
	s.Require().NoError(s.storage.SaveBranch(s.ctx, &model.Branch{ID: branchID, SectionID: "sec-1"}))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		s.Require().NoError(s.storage.SaveTopic(s.ctx, &model.Topic{
			ID:        model.TopicID(string(rune('a' + i))),
			BranchID:  branchID,
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
}

func (s *ServiceSuite) TestTopicPageFirstPage() {
	s.seedTopics("b1", 5)

	topics, page, err := s.service.TopicPage(s.ctx, "b1", 1, 2)
	s.Require().NoError(err)
	s.Len(topics, 2)
	s.Equal(1, page.Number)
	s.Equal(3, page.TotalPages)
	s.Equal(5, page.TotalItems)

	// Newest activity first
	s.Equal(model.TopicID("e"), topics[0].ID)
	s.Equal(model.TopicID("d"), topics[1].ID)
}

func (s *ServiceSuite) TestTopicPageLastPageIsPartial() {
	s.seedTopics("b1", 5)

	topics, page, err := s.service.TopicPage(s.ctx, "b1", 3, 2)
	s.Require().NoError(err)
	s.Len(topics, 1)
	s.Equal(3, page.Number)
	s.Equal(model.TopicID("a"), topics[0].ID)
}

func (s *ServiceSuite) TestTopicPageOutOfRangeClamps() {
	s.seedTopics("b1", 5)

	topics, page, err := s.service.TopicPage(s.ctx, "b1", 99, 2)
	s.Require().NoError(err)
	s.Equal(3, page.Number)
	s.Len(topics, 1)
}

func (s *ServiceSuite) TestTopicPageEmptyBranch() {
	s.Require().NoError(s.storage.SaveBranch(s.ctx, &model.Branch{ID: "b1", SectionID: "sec-1"}))

	topics, page, err := s.service.TopicPage(s.ctx, "b1", 1, 10)
	s.Require().NoError(err)
	s.Empty(topics)
	s.Equal(0, page.TotalItems)
}

func (s *ServiceSuite) TestTopicPageUnknownBranch() {
	_, _, err := s.service.TopicPage(s.ctx, "nope", 1, 10)
	s.ErrorIs(err, model.ErrBranchNotFound)
}

func (s *ServiceSuite) TestListSections() {
	s.Require().NoError(s.storage.SaveSection(s.ctx, &model.Section{ID: "s2", Position: 2}))
	s.Require().NoError(s.storage.SaveSection(s.ctx, &model.Section{ID: "s1", Position: 1}))

	sections, err := s.service.ListSections(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(sections, 2)
	s.Equal(model.SectionID("s1"), sections[0].ID)
}

func (s *ServiceSuite) TestGetBranch() {
	s.Require().NoError(s.storage.SaveBranch(s.ctx, &model.Branch{ID: "b1", Name: "General"}))

	branch, err := s.service.GetBranch(s.ctx, "b1")
	s.Require().NoError(err)
	s.Equal("General", branch.Name)

	_, err = s.service.GetBranch(s.ctx, "nope")
	s.ErrorIs(err, model.ErrBranchNotFound)
}
