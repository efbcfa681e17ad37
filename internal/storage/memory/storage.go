package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/res5515/jcommune/internal/model"
	"github.com/res5515/jcommune/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users               map[model.UserID]*model.User
	usernameIndex       map[string]model.UserID
	commonUsers         map[model.UserID]*model.CommonUser
	commonUsernameIndex map[string]model.UserID
	sections            map[model.SectionID]*model.Section
	branches            map[model.BranchID]*model.Branch
	topics              map[model.TopicID]*model.Topic
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:               make(map[model.UserID]*model.User),
		usernameIndex:       make(map[string]model.UserID),
		commonUsers:         make(map[model.UserID]*model.CommonUser),
		commonUsernameIndex: make(map[string]model.UserID),
		sections:            make(map[model.SectionID]*model.Section),
		branches:            make(map[model.BranchID]*model.Branch),
		topics:              make(map[model.TopicID]*model.Topic),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	s.usernameIndex[user.Username] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// Common user operations

func (s *Storage) SaveCommonUser(ctx context.Context, cu *model.CommonUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commonUsers[cu.ID] = cu
	s.commonUsernameIndex[cu.Username] = cu.ID
	return nil
}

func (s *Storage) GetCommonUserByUsername(ctx context.Context, username string) (*model.CommonUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.commonUsernameIndex[username]
	if !ok {
		return nil, model.ErrCommonUserNotFound
	}
	cu, ok := s.commonUsers[id]
	if !ok {
		return nil, model.ErrCommonUserNotFound
	}
	return cu, nil
}

func (s *Storage) DeleteCommonUser(ctx context.Context, id model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cu, ok := s.commonUsers[id]; ok {
		delete(s.commonUsernameIndex, cu.Username)
	}
	delete(s.commonUsers, id)
	return nil
}

// Section operations

func (s *Storage) SaveSection(ctx context.Context, section *model.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections[section.ID] = section
	return nil
}

func (s *Storage) ListSections(ctx context.Context) ([]*model.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sections := make([]*model.Section, 0, len(s.sections))
	for _, section := range s.sections {
		sections = append(sections, section)
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Position < sections[j].Position
	})
	return sections, nil
}

// Branch operations

func (s *Storage) SaveBranch(ctx context.Context, branch *model.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches[branch.ID] = branch
	return nil
}

func (s *Storage) GetBranch(ctx context.Context, id model.BranchID) (*model.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	branch, ok := s.branches[id]
	if !ok {
		return nil, model.ErrBranchNotFound
	}
	return branch, nil
}

func (s *Storage) ListBranches(ctx context.Context) ([]*model.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	branches := make([]*model.Branch, 0, len(s.branches))
	for _, branch := range s.branches {
		branches = append(branches, branch)
	}
	sortBranches(branches)
	return branches, nil
}

func (s *Storage) ListBranchesBySection(ctx context.Context, sectionID model.SectionID) ([]*model.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.sections[sectionID]; !ok {
		return nil, model.ErrSectionNotFound
	}
	var branches []*model.Branch
	for _, branch := range s.branches {
		if branch.SectionID == sectionID {
			branches = append(branches, branch)
		}
	}
	sortBranches(branches)
	return branches, nil
}

func sortBranches(branches []*model.Branch) {
	sort.Slice(branches, func(i, j int) bool {
		return branches[i].ID < branches[j].ID
	})
}

// Topic operations

func (s *Storage) SaveTopic(ctx context.Context, topic *model.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics[topic.ID] = topic
	return nil
}

func (s *Storage) GetTopic(ctx context.Context, id model.TopicID) (*model.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	topic, ok := s.topics[id]
	if !ok {
		return nil, model.ErrTopicNotFound
	}
	return topic, nil
}

func (s *Storage) ListTopics(ctx context.Context, branchID model.BranchID) ([]*model.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.branches[branchID]; !ok {
		return nil, model.ErrBranchNotFound
	}
	var topics []*model.Topic
	for _, topic := range s.topics {
		if topic.BranchID == branchID {
			topics = append(topics, topic)
		}
	}
	sort.Slice(topics, func(i, j int) bool {
		return topics[i].UpdatedAt.After(topics[j].UpdatedAt)
	})
	return topics, nil
}
