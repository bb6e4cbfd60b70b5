package services

import (
	"errors"
	"fmt"
	"log"

	"freshsales/internal/models"
	"freshsales/internal/pdf"
	"freshsales/internal/utils"
)

// NotificationService fans a deal-won event out to email (with a PDF summary
// attached), telegram and SMS. Channels left nil are skipped, so deployments
// enable only what they configure.
type NotificationService struct {
	Email     EmailService
	EmailTo   string
	Telegram  *TelegramService
	SMS       *utils.Client
	SMSTo     string
	Documents pdf.Generator
}

func NewNotificationService(
	email EmailService,
	emailTo string,
	telegram *TelegramService,
	sms *utils.Client,
	smsTo string,
	documents pdf.Generator,
) *NotificationService {
	return &NotificationService{
		Email:     email,
		EmailTo:   emailTo,
		Telegram:  telegram,
		SMS:       sms,
		SMSTo:     smsTo,
		Documents: documents,
	}
}

// NotifyDealWon sends on every configured channel and reports the combined
// failures. A dead channel never blocks the others.
func (s *NotificationService) NotifyDealWon(opp *models.Opportunity, customer *models.Customer) error {
	var errs []error

	attachment := ""
	if s.Documents != nil {
		path, err := s.Documents.GenerateWonSummary(pdf.WonSummaryData{
			OpportunityID:   opp.ID,
			OpportunityName: opp.Name,
			CompanyName:     customer.CompanyName,
			CustomerID:      customer.ID,
			ExpectedValue:   opp.ExpectedValue,
			ClosedAt:        opp.StageChangedAt,
		})
		if err != nil {
			log.Printf("won-summary PDF for opportunity %d failed: %v", opp.ID, err)
			errs = append(errs, err)
		} else {
			attachment = path
		}
	}

	if s.Email != nil && s.EmailTo != "" {
		if err := s.Email.SendDealWonEmail(s.EmailTo, opp, customer, attachment); err != nil {
			errs = append(errs, err)
		}
	}

	if s.Telegram != nil {
		text := fmt.Sprintf(
			"🏆 <b>Deal won:</b> %s\nCustomer %q (no. %d) created as prospect.",
			opp.Name, customer.CompanyName, customer.ID)
		if err := s.Telegram.SendMessage(text); err != nil {
			errs = append(errs, err)
		}
	}

	if s.SMS != nil && s.SMSTo != "" {
		text := fmt.Sprintf("Deal won: %s (customer no. %d)", opp.Name, customer.ID)
		if _, err := s.SMS.SendSMS(s.SMSTo, text); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
