package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"freshsales/internal/models"
)

type EmailService interface {
	SendDealWonEmail(to string, opp *models.Opportunity, customer *models.Customer, attachmentPath string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendDealWonEmail(to string, opp *models.Opportunity, customer *models.Customer, attachmentPath string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Deal won: %s", opp.Name))

	value := "n/a"
	if opp.ExpectedValue != nil {
		value = fmt.Sprintf("%.2f EUR", *opp.ExpectedValue)
	}
	body := fmt.Sprintf(`
		<h2>Deal won: %s</h2>
		<p>Opportunity #%d was closed as won.</p>
		<p>Customer <strong>%s</strong> (no. %d) was created with status "prospect".</p>
		<p>Expected value: %s</p>
	`, opp.Name, opp.ID, customer.CompanyName, customer.ID, value)

	m.SetBody("text/html", body)
	if attachmentPath != "" {
		m.Attach(attachmentPath)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send deal-won email: %w", err)
	}

	return nil
}
