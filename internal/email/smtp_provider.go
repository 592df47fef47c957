package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig - конфигурация SMTP провайдера.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPProvider реализует Provider поверх gomail.
type SMTPProvider struct {
	config    SMTPConfig
	templates *TemplateManager
}

// NewSMTPProvider создает новый SMTP провайдер.
func NewSMTPProvider(config SMTPConfig) (*SMTPProvider, error) {
	tm, err := NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create template manager: %w", err)
	}

	p := &SMTPProvider{
		config:    config,
		templates: tm,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Send отправляет email сообщение.
func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(p.config.FromEmail, p.config.FromName))
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	d := gomail.NewDialer(
		p.config.Host,
		p.config.Port,
		p.config.Username,
		p.config.Password,
	)

	return d.DialAndSend(m)
}

// SendWelcome отправляет приветственное письмо после регистрации.
func (p *SMTPProvider) SendWelcome(to string, data WelcomeData) error {
	return p.sendTemplate(to, "Добро пожаловать в Portfolia!", "welcome", data)
}

// SendAccessRequested уведомляет владельца портфолио о новом запросе.
func (p *SMTPProvider) SendAccessRequested(to string, data AccessRequestedData) error {
	subject := fmt.Sprintf("Запрос доступа к портфолио «%s»", data.PortfolioTitle)
	return p.sendTemplate(to, subject, "access_requested", data)
}

// SendAccessDecided уведомляет автора запроса о решении владельца.
func (p *SMTPProvider) SendAccessDecided(to string, data AccessDecidedData) error {
	subject := fmt.Sprintf("Решение по запросу доступа к «%s»", data.PortfolioTitle)
	return p.sendTemplate(to, subject, "access_decided", data)
}

// Validate проверяет конфигурацию SMTP.
func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}
	if p.config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

func (p *SMTPProvider) sendTemplate(to, subject, templateName string, data interface{}) error {
	htmlBody, err := p.templates.Render(templateName, data)
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}
