package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Service sends transactional mail. Sends are best effort: callers log
// failures and never fail the request over them.
type Service interface {
	SendWelcome(to, name string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(cfg Config) Service {
	if cfg.Host == "" {
		return nopService{}
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendWelcome(to, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Bienvenido al sistema hospitalario")
	m.SetBody("text/plain", fmt.Sprintf("Hola %s, tu cuenta fue creada correctamente.", name))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

// nopService is used when SMTP is not configured.
type nopService struct{}

func (nopService) SendWelcome(to, name string) error { return nil }
