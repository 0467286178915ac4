package email

import (
	"fmt"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(apiKey, from, fromName string, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(apiKey),
		from:     from,
		fromName: fromName,
		logger:   logger,
	}
}

// SendWelcomeEmail greets a freshly registered user. Callers fire it on
// a goroutine; a failure only logs.
func (s *EmailService) SendWelcomeEmail(to, firstName string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.from),
		To:      []string{to},
		Subject: "Welcome to Recipebook",
		Html: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your account is ready. Publish your first recipe and start collecting favorites.</p>",
			firstName),
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		s.logger.Warn("welcome email failed", zap.String("to", to), zap.Error(err))
		return err
	}

	s.logger.Info("welcome email sent", zap.String("to", to))
	return nil
}
