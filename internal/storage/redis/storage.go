package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/res5515/jcommune/internal/model"
	"github.com/res5515/jcommune/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), string(user.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	id, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, model.UserID(id))
}

// Common user operations

func (s *Storage) SaveCommonUser(ctx context.Context, cu *model.CommonUser) error {
	data, err := json.Marshal(cu)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, commonUserKey(cu.ID), data, s.cfg.CommonUserTTL)
	pipe.Set(ctx, commonUsernameIndexKey(cu.Username), string(cu.ID), s.cfg.CommonUserTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCommonUserByUsername(ctx context.Context, username string) (*model.CommonUser, error) {
	id, err := s.client.Get(ctx, commonUsernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCommonUserNotFound
		}
		return nil, err
	}

	data, err := s.client.Get(ctx, commonUserKey(model.UserID(id))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCommonUserNotFound
		}
		return nil, err
	}

	var cu model.CommonUser
	if err := json.Unmarshal(data, &cu); err != nil {
		return nil, err
	}
	return &cu, nil
}

func (s *Storage) DeleteCommonUser(ctx context.Context, id model.UserID) error {
	data, err := s.client.Get(ctx, commonUserKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}

	var cu model.CommonUser
	if err := json.Unmarshal(data, &cu); err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, commonUserKey(id))
	pipe.Del(ctx, commonUsernameIndexKey(cu.Username))
	_, err = pipe.Exec(ctx)
	return err
}

// Section operations

func (s *Storage) SaveSection(ctx context.Context, section *model.Section) error {
	data, err := json.Marshal(section)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sectionKey(section.ID), data, 0)
	pipe.SAdd(ctx, sectionsIndexKey(), string(section.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListSections(ctx context.Context) ([]*model.Section, error) {
	ids, err := s.client.SMembers(ctx, sectionsIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	sections := make([]*model.Section, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, sectionKey(model.SectionID(id))).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		var section model.Section
		if err := json.Unmarshal(data, &section); err != nil {
			return nil, err
		}
		sections = append(sections, &section)
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Position < sections[j].Position
	})
	return sections, nil
}

// Branch operations

func (s *Storage) SaveBranch(ctx context.Context, branch *model.Branch) error {
	data, err := json.Marshal(branch)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, branchKey(branch.ID), data, 0)
	pipe.SAdd(ctx, branchesIndexKey(), string(branch.ID))
	pipe.SAdd(ctx, branchesForSectionIndexKey(branch.SectionID), string(branch.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetBranch(ctx context.Context, id model.BranchID) (*model.Branch, error) {
	data, err := s.client.Get(ctx, branchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrBranchNotFound
		}
		return nil, err
	}

	var branch model.Branch
	if err := json.Unmarshal(data, &branch); err != nil {
		return nil, err
	}
	return &branch, nil
}

func (s *Storage) ListBranches(ctx context.Context) ([]*model.Branch, error) {
	ids, err := s.client.SMembers(ctx, branchesIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	return s.branchesByIDs(ctx, ids)
}

func (s *Storage) ListBranchesBySection(ctx context.Context, sectionID model.SectionID) ([]*model.Branch, error) {
	exists, err := s.client.Exists(ctx, sectionKey(sectionID)).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrSectionNotFound
	}

	ids, err := s.client.SMembers(ctx, branchesForSectionIndexKey(sectionID)).Result()
	if err != nil {
		return nil, err
	}
	return s.branchesByIDs(ctx, ids)
}

func (s *Storage) branchesByIDs(ctx context.Context, ids []string) ([]*model.Branch, error) {
	branches := make([]*model.Branch, 0, len(ids))
	for _, id := range ids {
		branch, err := s.GetBranch(ctx, model.BranchID(id))
		if err != nil {
			if errors.Is(err, model.ErrBranchNotFound) {
				continue
			}
			return nil, err
		}
		branches = append(branches, branch)
	}
	sort.Slice(branches, func(i, j int) bool {
		return branches[i].ID < branches[j].ID
	})
	return branches, nil
}

// Topic operations

func (s *Storage) SaveTopic(ctx context.Context, topic *model.Topic) error {
	data, err := json.Marshal(topic)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, topicKey(topic.ID), data, 0)
	pipe.SAdd(ctx, topicsForBranchIndexKey(topic.BranchID), string(topic.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTopic(ctx context.Context, id model.TopicID) (*model.Topic, error) {
	data, err := s.client.Get(ctx, topicKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTopicNotFound
		}
		return nil, err
	}

	var topic model.Topic
	if err := json.Unmarshal(data, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

func (s *Storage) ListTopics(ctx context.Context, branchID model.BranchID) ([]*model.Topic, error) {
	exists, err := s.client.Exists(ctx, branchKey(branchID)).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrBranchNotFound
	}

	ids, err := s.client.SMembers(ctx, topicsForBranchIndexKey(branchID)).Result()
	if err != nil {
		return nil, err
	}

	topics := make([]*model.Topic, 0, len(ids))
	for _, id := range ids {
		topic, err := s.GetTopic(ctx, model.TopicID(id))
		if err != nil {
			if errors.Is(err, model.ErrTopicNotFound) {
				continue
			}
			return nil, err
		}
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		return topics[i].UpdatedAt.After(topics[j].UpdatedAt)
	})
	return topics, nil
}
