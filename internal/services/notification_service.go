package services

import (
	"context"
	"fmt"
	"log/slog"

	"food_ordering/internal/logger"
	"food_ordering/internal/models"
)

// EmailSender is the subset of pkg/mailer the notifications need.
type EmailSender interface {
	Enabled() bool
	SendTextEmail(ctx context.Context, to, subject, text string) error
}

type NotificationService interface {
	NotifyOwnerPromotion(ctx context.Context, user *models.User) error
}

type notificationService struct {
	mailer EmailSender
	log    *logger.Logger
}

func NewNotificationService(mailer EmailSender, log *logger.Logger) NotificationService {
	return &notificationService{mailer: mailer, log: log}
}

func (s *notificationService) NotifyOwnerPromotion(ctx context.Context, user *models.User) error {
	subject, body := ownerPromotionEmail(user)

	if s.mailer == nil || !s.mailer.Enabled() {
		s.log.Info("owner_promotion_email_skipped", logger.RequestID(ctx), "mail API not configured, email not sent",
			slog.String("to", user.Email),
		)
		return nil
	}

	if err := s.mailer.SendTextEmail(ctx, user.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send owner promotion email: %w", err)
	}

	s.log.Info("owner_promotion_email_sent", logger.RequestID(ctx), "owner promotion email sent",
		slog.String("to", user.Email),
	)
	return nil
}

func ownerPromotionEmail(user *models.User) (string, string) {
	name := user.FirstName
	if name == "" {
		name = user.Email
	}
	subject := "Your account can now manage a restaurant"
	body := fmt.Sprintf("Hello %s,\n\n"+
		"Your account has been upgraded to restaurant owner. "+
		"You can now create your restaurant and publish its menu.\n", name)
	return subject, body
}
