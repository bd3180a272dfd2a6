// Package notification sends order mails over SMTP.
package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mail is one outgoing message
type Mail struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Validate checks that the mail can be sent
func (m Mail) Validate() error {
	if m.To == "" {
		return errors.New("mail: recipient is required")
	}
	if m.Subject == "" {
		return errors.New("mail: subject is required")
	}
	if m.HTMLBody == "" && m.TextBody == "" {
		return errors.New("mail: body is required")
	}
	return nil
}

// Sender delivers mails
type Sender interface {
	Send(ctx context.Context, mail Mail) error
}

// dialer is the part of gomail.Dialer the SMTP sender uses
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender sends mails through an SMTP relay with gomail
type SMTPSender struct {
	from   string
	dialer dialer
	logger *zap.Logger
}

// NewSMTPSender creates an SMTP sender
func NewSMTPSender(cfg config.MailConfig, logger *zap.Logger) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, errors.New("mail.host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("mail.from is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPSender{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger.Named("mail"),
	}, nil
}

// Send builds the message and hands it to the relay. The context only
// guards against sending after cancellation; gomail itself does not take one.
func (s *SMTPSender) Send(ctx context.Context, mail Mail) error {
	if err := mail.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.dialer.DialAndSend(buildMessage(s.from, mail)); err != nil {
		return fmt.Errorf("mail to %s: %w", mail.To, err)
	}
	s.logger.Info("Mail sent", zap.String("to", mail.To), zap.String("subject", mail.Subject))
	return nil
}

func buildMessage(from string, mail Mail) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", mail.To)
	m.SetHeader("Subject", mail.Subject)
	switch {
	case mail.HTMLBody != "" && mail.TextBody != "":
		m.SetBody("text/plain", mail.TextBody)
		m.AddAlternative("text/html", mail.HTMLBody)
	case mail.HTMLBody != "":
		m.SetBody("text/html", mail.HTMLBody)
	default:
		m.SetBody("text/plain", mail.TextBody)
	}
	return m
}

// LogSender only logs mails. It is used when mail is disabled.
type LogSender struct {
	logger *zap.Logger

	mu   sync.Mutex
	sent []Mail
}

// NewLogSender creates a LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger.Named("mail")}
}

// Send records the mail
func (s *LogSender) Send(_ context.Context, mail Mail) error {
	if err := mail.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.sent = append(s.sent, mail)
	s.mu.Unlock()
	s.logger.Info("Mail delivery disabled, not sending", zap.String("to", mail.To), zap.String("subject", mail.Subject))
	return nil
}

// Sent returns the mails recorded so far
func (s *LogSender) Sent() []Mail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Mail, len(s.sent))
	copy(out, s.sent)
	return out
}

// NewSender returns an SMTP sender when mail is enabled, otherwise a LogSender
func NewSender(cfg config.MailConfig, logger *zap.Logger) (Sender, error) {
	if !cfg.Enabled {
		return NewLogSender(logger), nil
	}
	return NewSMTPSender(cfg, logger)
}
