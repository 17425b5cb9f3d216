package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Kumaravel655/loan-backend/metrics"
	"github.com/Kumaravel655/loan-backend/models"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Notifier delivers a due reminder to a customer.
type Notifier interface {
	SendDueReminder(to, customerName string, loanID uint, dueNumber int, dueDate time.Time, amount decimal.Decimal) error
}

// Reminder notifies assigned collectors (in-app) and customers (email) about
// dues falling on a given day.
type Reminder struct {
	store    Store
	notifier Notifier
	log      *logrus.Logger
	now      func() time.Time
}

// NewReminder builds a Reminder. notifier may be nil, which disables email.
func NewReminder(store Store, notifier Notifier, log *logrus.Logger) *Reminder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Reminder{
		store:    store,
		notifier: notifier,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SendDueReminders handles every pending due on day and returns how many
// dues were processed. Email failures are logged and do not stop the run.
func (r *Reminder) SendDueReminders(ctx context.Context, day time.Time) (int, error) {
	day = dateOf(day)
	dues, err := r.store.PendingDuesOn(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("list pending dues: %w", err)
	}

	for _, d := range dues {
		amount := d.DueAmount.StringFixed(moneyPlaces)
		if d.AssignedToID != nil {
			n := &models.Notification{
				UserID:  *d.AssignedToID,
				Title:   fmt.Sprintf("Collection due: loan #%d", d.LoanID),
				Message: fmt.Sprintf("Installment %d of %s (%s) is due on %s.", d.DueNumber, d.CustomerName, amount, d.DueDate.Format("2006-01-02")),
			}
			if err := r.store.CreateNotification(ctx, n); err != nil {
				return 0, fmt.Errorf("notify collector %d: %w", *d.AssignedToID, err)
			}
			metrics.RemindersSent.WithLabelValues("notification").Inc()
		}

		if r.notifier != nil && d.CustomerEmail != "" {
			if err := r.notifier.SendDueReminder(d.CustomerEmail, d.CustomerName, d.LoanID, d.DueNumber, d.DueDate, d.DueAmount); err != nil {
				r.log.WithError(err).WithField("due_id", d.DueID).Warn("due reminder email failed")
				continue
			}
			metrics.RemindersSent.WithLabelValues("email").Inc()
		}
	}

	r.log.WithFields(logrus.Fields{"day": day.Format("2006-01-02"), "dues": len(dues)}).Info("due reminders sent")
	return len(dues), nil
}

// Schedule registers the reminder run on c using a standard 5-field spec.
func (r *Reminder) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		if _, err := r.SendDueReminders(context.Background(), r.now()); err != nil {
			r.log.WithError(err).Error("due reminder run failed")
		}
	})
}
