// internal/mailer/mailer.go
package mailer

import (
	"fmt"

	"motomarket-service/internal/domain/listing"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends seller notifications over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

type Config struct {
	Host     string
	Port     int
	Email    string
	Password string
}

func New(cfg Config, logger *zap.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Email, cfg.Password),
		from:   cfg.Email,
		logger: logger,
	}
}

var statusSubjects = map[listing.Status]string{
	listing.StatusActive:   "Your listing has been approved",
	listing.StatusRejected: "Your listing has been rejected",
	listing.StatusSold:     "Your listing was marked as sold",
	listing.StatusPending:  "Your listing is back in review",
}

// SendStatusChanged tells the seller what happened to their listing after
// a moderation decision.
func (m *Mailer) SendStatusChanged(to, sellerName, title string, status listing.Status) error {
	subject, ok := statusSubjects[status]
	if !ok {
		subject = "Your listing status has changed"
	}

	body := fmt.Sprintf("Hello %s,\n\nThe status of your listing '%s' is now: %s.\n\nMotoMarket", sellerName, title, status)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send status mail to %s: %w", to, err)
	}
	m.logger.Debug("status mail sent", zap.String("to", to), zap.String("status", string(status)))
	return nil
}
