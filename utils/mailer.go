package utils

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Mailer sends due reminders over SMTP.
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	log      *logrus.Logger
}

func NewMailer(host, port, username, password, from string, log *logrus.Logger) *Mailer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Mailer{Host: host, Port: port, Username: username, Password: password, From: from, log: log}
}

func (m *Mailer) SendDueReminder(to, customerName string, loanID uint, dueNumber int, dueDate time.Time, amount decimal.Decimal) error {
	e := email.NewEmail()
	e.From = m.From
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Loan #%d: installment %d due on %s", loanID, dueNumber, dueDate.Format("2006-01-02"))
	e.Text = []byte(DueReminderBody(customerName, loanID, dueNumber, dueDate, amount))

	addr := fmt.Sprintf("%s:%s", m.Host, m.Port)
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	m.log.WithFields(logrus.Fields{"to": to, "loan_id": loanID}).Info("due reminder emailed")
	return nil
}

func DueReminderBody(customerName string, loanID uint, dueNumber int, dueDate time.Time, amount decimal.Decimal) string {
	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"This is a reminder that installment %d of your loan #%d, amounting to %s, is due on %s.\n"+
			"Our collection agent will contact you. Please keep the amount ready.\n\n"+
			"Regards,\nLoan Office",
		customerName, dueNumber, loanID, amount.StringFixed(2), dueDate.Format("2006-01-02"),
	)
}
