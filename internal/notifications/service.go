// Package notifications delivers SMS updates to victims. Without provider
// credentials it runs in simulate mode: messages are logged and recorded
// but never leave the process.
package notifications

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProviderConfig struct {
	AccountSID          string
	AuthToken           string
	MessagingServiceSID string
}

// Sender delivers a single SMS through the configured provider
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// Service formats portal events into SMS messages and records delivery
type Service struct {
	db       *gorm.DB
	sender   Sender
	simulate bool
	logger   *zap.Logger
}

func NewService(db *gorm.DB, cfg ProviderConfig, sender Sender, logger *zap.Logger) *Service {
	simulate := cfg.AccountSID == "" || cfg.AuthToken == ""
	if simulate {
		logger.Info("sms provider not configured, running in simulate mode")
	}
	return &Service{
		db:       db,
		sender:   sender,
		simulate: simulate,
		logger:   logger,
	}
}

var statusMessages = map[string]string{
	"UNDER_REVIEW":       "Your case %s is now under review.",
	"APPROVED":           "Good news. Your case %s has been approved for compensation.",
	"REJECTED":           "Your case %s was not approved. You may file a grievance for review.",
	"PAYMENT_PROCESSING": "Compensation payment for case %s is being processed to your bank account.",
	"COMPLETED":          "Compensation for case %s has been disbursed. Thank you.",
}

// CaseStatusChanged notifies the victim that their case moved to a new status.
func (s *Service) CaseStatusChanged(ctx context.Context, phone, caseNumber, status string) error {
	tmpl, ok := statusMessages[status]
	if !ok {
		tmpl = "Your case %s status has been updated to " + status + "."
	}
	return s.deliver(ctx, phone, fmt.Sprintf(tmpl, caseNumber))
}

// GrievanceFiled acknowledges a newly filed grievance.
func (s *Service) GrievanceFiled(ctx context.Context, phone, grievanceNumber string, priority string) error {
	msg := fmt.Sprintf("Your grievance %s has been registered with priority %s. You will be contacted shortly.",
		grievanceNumber, priority)
	return s.deliver(ctx, phone, msg)
}

func (s *Service) deliver(ctx context.Context, phone, message string) error {
	record := &SentNotification{
		Channel:   ChannelSMS,
		Recipient: phone,
		Content:   message,
		SentAt:    time.Now(),
	}

	if s.simulate || s.sender == nil {
		record.Status = DeliverySimulated
		s.logger.Info("simulated sms",
			zap.String("to", phone),
			zap.String("message", message))
		return s.record(ctx, record)
	}

	if err := s.sender.Send(ctx, phone, message); err != nil {
		record.Status = DeliveryFailed
		record.Error = err.Error()
		if recErr := s.record(ctx, record); recErr != nil {
			s.logger.Warn("failed to record notification", zap.Error(recErr))
		}
		return err
	}

	record.Status = DeliverySent
	return s.record(ctx, record)
}

func (s *Service) record(ctx context.Context, n *SentNotification) error {
	if s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(n).Error
}
