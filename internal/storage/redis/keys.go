package redis

import (
	"fmt"

	"github.com/res5515/jcommune/internal/model"
)

// Key prefix for all forum data
const keyPrefix = "jcommune"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// commonUserKey returns the Redis key for a CommonUser
func commonUserKey(id model.UserID) string {
	return fmt.Sprintf("%s:common_user:%s", keyPrefix, id)
}

// commonUsernameIndexKey returns the Redis key for the common-user username index
func commonUsernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:common_username:%s", keyPrefix, username)
}

// sectionKey returns the Redis key for a Section
func sectionKey(id model.SectionID) string {
	return fmt.Sprintf("%s:section:%s", keyPrefix, id)
}

// sectionsIndexKey returns the Redis key for the SET of all section ids
func sectionsIndexKey() string {
	return fmt.Sprintf("%s:idx:sections", keyPrefix)
}

// branchKey returns the Redis key for a Branch
func branchKey(id model.BranchID) string {
	return fmt.Sprintf("%s:branch:%s", keyPrefix, id)
}

// branchesIndexKey returns the Redis key for the SET of all branch ids
func branchesIndexKey() string {
	return fmt.Sprintf("%s:idx:branches", keyPrefix)
}

// branchesForSectionIndexKey returns the Redis key for the SET of branches in a section
func branchesForSectionIndexKey(sectionID model.SectionID) string {
	return fmt.Sprintf("%s:idx:branches_for_section:%s", keyPrefix, sectionID)
}

// topicKey returns the Redis key for a Topic
func topicKey(id model.TopicID) string {
	return fmt.Sprintf("%s:topic:%s", keyPrefix, id)
}

// topicsForBranchIndexKey returns the Redis key for the SET of topics in a branch
func topicsForBranchIndexKey(branchID model.BranchID) string {
	return fmt.Sprintf("%s:idx:topics_for_branch:%s", keyPrefix, branchID)
}
