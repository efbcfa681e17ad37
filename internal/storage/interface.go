package storage

import (
	"context"

	"github.com/res5515/jcommune/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations. SaveUser is a save-or-update keyed by user ID;
	// the username index is maintained alongside.
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Common user operations. Common users come from a shared external
	// identity store and are superseded by forum-owned registrations.
	SaveCommonUser(ctx context.Context, cu *model.CommonUser) error
	GetCommonUserByUsername(ctx context.Context, username string) (*model.CommonUser, error)
	DeleteCommonUser(ctx context.Context, id model.UserID) error

	// Section operations
	SaveSection(ctx context.Context, section *model.Section) error
	ListSections(ctx context.Context) ([]*model.Section, error)

	// Branch operations
	SaveBranch(ctx context.Context, branch *model.Branch) error
	GetBranch(ctx context.Context, id model.BranchID) (*model.Branch, error)
	ListBranches(ctx context.Context) ([]*model.Branch, error)
	ListBranchesBySection(ctx context.Context, sectionID model.SectionID) ([]*model.Branch, error)

	// Topic operations. ListTopics returns the branch's topics ordered
	// by last update, newest first.
	SaveTopic(ctx context.Context, topic *model.Topic) error
	GetTopic(ctx context.Context, id model.TopicID) (*model.Topic, error)
	ListTopics(ctx context.Context, branchID model.BranchID) ([]*model.Topic, error)
}
