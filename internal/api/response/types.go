package response

import (
	"time"

	"github.com/res5515/jcommune/internal/model"
	"github.com/res5515/jcommune/internal/pagination"
)

// UserResponse is the public representation of a user
type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Language     string    `json:"language"`
	Avatar       string    `json:"avatar,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
	LastLoginAt  time.Time `json:"last_login_at,omitempty"`
}

// UserFromModel converts a model User
func UserFromModel(u *model.User) UserResponse {
	return UserResponse{
		ID:           string(u.ID),
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Language:     u.Language,
		Avatar:       string(u.Avatar),
		RegisteredAt: u.RegisteredAt,
		LastLoginAt:  u.LastLoginAt,
	}
}

// LoginResponse is returned from a successful login. The session token
// mirrors the session cookie for clients that authenticate with a
// bearer header instead.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	SessionToken string       `json:"session_token"`
}

// SectionResponse is the public representation of a section
type SectionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SectionFromModel converts a model Section
func SectionFromModel(s *model.Section) SectionResponse {
	return SectionResponse{
		ID:          string(s.ID),
		Name:        s.Name,
		Description: s.Description,
	}
}

// SectionsFromModel converts a section listing
func SectionsFromModel(sections []*model.Section) []SectionResponse {
	out := make([]SectionResponse, len(sections))
	for i, s := range sections {
		out[i] = SectionFromModel(s)
	}
	return out
}

// BranchResponse is the public representation of a branch
type BranchResponse struct {
	ID          string `json:"id"`
	SectionID   string `json:"section_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TopicCount  int    `json:"topic_count"`
	PostCount   int    `json:"post_count"`
}

// BranchFromModel converts a model Branch
func BranchFromModel(b *model.Branch) BranchResponse {
	return BranchResponse{
		ID:          string(b.ID),
		SectionID:   string(b.SectionID),
		Name:        b.Name,
		Description: b.Description,
		TopicCount:  b.TopicCount,
		PostCount:   b.PostCount,
	}
}

// BranchesFromModel converts a branch listing
func BranchesFromModel(branches []*model.Branch) []BranchResponse {
	out := make([]BranchResponse, len(branches))
	for i, b := range branches {
		out[i] = BranchFromModel(b)
	}
	return out
}

// TopicResponse is the public representation of a topic
type TopicResponse struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	PostCount int       `json:"post_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TopicFromModel converts a model Topic
func TopicFromModel(t *model.Topic) TopicResponse {
	return TopicResponse{
		ID:        string(t.ID),
		BranchID:  string(t.BranchID),
		Title:     t.Title,
		Author:    t.Author,
		PostCount: t.PostCount,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// TopicPageResponse is one page of a branch's topics
type TopicPageResponse struct {
	Topics []TopicResponse `json:"topics"`
	Page   pagination.Page `json:"page"`
}

// TopicPageFromModel converts a topic page
func TopicPageFromModel(topics []*model.Topic, page pagination.Page) TopicPageResponse {
	out := make([]TopicResponse, len(topics))
	for i, t := range topics {
		out[i] = TopicFromModel(t)
	}
	return TopicPageResponse{Topics: out, Page: page}
}
