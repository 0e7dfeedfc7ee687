package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/minhlp/rental-service/internal/config"
	"github.com/minhlp/rental-service/internal/models"
	"github.com/minhlp/rental-service/internal/service"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendDepositReceipt sends a notification for a recorded deposit receipt
func (s *Sender) SendDepositReceipt(to string, deposit *models.Deposit) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if deposit.Kind == models.KindChi {
		e.Subject = "Deposit Refund Recorded"
	} else {
		e.Subject = "Deposit Receipt Recorded"
	}

	body := fmt.Sprintf(
		"A deposit receipt has been recorded.\n\n"+
			"Contract: %d\n"+
			"Amount: %s VND (%s)\n"+
			"Account: %s\n"+
			"Date: %s\n",
		deposit.ContractID, deposit.Amount.String(), deposit.Kind,
		deposit.AccountLabel, deposit.Date.Format("2006-01-02"),
	)
	if deposit.Note != "" {
		body += fmt.Sprintf("Note: %s\n", deposit.Note)
	}
	body += "\nBest regards,\nRental Service"
	e.Text = []byte(body)

	return s.send(e)
}

// SendSnapshotReport sends the nightly cashbook snapshot summary
func (s *Sender) SendSnapshotReport(to string, date time.Time, summary service.SnapshotSummary) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Cashbook Snapshot Report %s", date.Format("2006-01-02"))

	body := fmt.Sprintf(
		"Daily cashbook snapshot run for %s:\n\n"+
			"Processed: %d\n"+
			"Skipped:   %d\n"+
			"Failed:    %d\n"+
			"\nBest regards,\nRental Service",
		date.Format("2006-01-02"), summary.Processed, summary.Skipped, summary.Failed,
	)
	e.Text = []byte(body)

	return s.send(e)
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %v: %v", e.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Infof("Email sent to %v: %s", e.To, e.Subject)
	return nil
}
