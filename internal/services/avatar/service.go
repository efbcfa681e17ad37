// Package avatar supplies avatar images for user profiles.
package avatar

import (
	"github.com/res5515/jcommune/internal/model"
	"github.com/res5515/jcommune/internal/services/auth"
)

// defaultImage is assigned to users who have not uploaded an avatar
const defaultImage model.ImageRef = "/resources/images/default-avatar.png"

// Service provides avatar images
type Service struct{}

// Ensure Service implements the provider contract
var _ auth.AvatarProvider = (*Service)(nil)

// New creates an avatar service
func New() *Service {
	return &Service{}
}

// DefaultImage returns the avatar assigned to new users
func (s *Service) DefaultImage() model.ImageRef {
	return defaultImage
}
