package notify

import (
	"context"
	"fmt"
	"html"
	"sync"
	"time"

	"go.uber.org/zap"

	"campaignapi/logger"
	"campaignapi/models"
)

// Notifier is what the webhook handler sees: a fire-and-forget sink for
// confirmed donations. Implementations must never let a delivery failure
// reach the caller; by the time these run, the money has already moved.
type Notifier interface {
	DonationReceived(rec models.DonationRecord)
}

// Dispatcher fans a confirmed donation out to the donor receipt, the internal
// team email, and Slack. Any of the three integrations may be absent.
type Dispatcher struct {
	email          EmailSender
	slack          *SlackNotifier
	teamRecipients []string

	// wg lets tests and shutdown wait for in-flight dispatches.
	wg sync.WaitGroup
}

func NewDispatcher(email EmailSender, slackNotifier *SlackNotifier, teamRecipients []string) *Dispatcher {
	return &Dispatcher{
		email:          email,
		slack:          slackNotifier,
		teamRecipients: teamRecipients,
	}
}

// DonationReceived dispatches notifications on a detached goroutine and
// returns immediately. The webhook response is decided before any of this
// runs; failures are logged and absorbed.
func (d *Dispatcher) DonationReceived(rec models.DonationRecord) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Log.Error("notification dispatch panicked", zap.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		d.dispatch(ctx, rec)
	}()
}

// Wait blocks until all in-flight dispatches have finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(ctx context.Context, rec models.DonationRecord) {
	var wg sync.WaitGroup

	if d.email != nil && rec.Email != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.sendReceipt(ctx, rec)
		}()
	}
	if d.email != nil && len(d.teamRecipients) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			subject := fmt.Sprintf("New contribution: $%d from %s", rec.Amount, rec.Name)
			if _, err := d.email.SendEmail(ctx, d.teamRecipients, subject, buildTeamNotificationHTML(rec)); err != nil {
				logger.Log.Warn("failed to send team notification", zap.Error(err))
			}
		}()
	}
	if d.slack != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.slack.PostDonation(rec)
		}()
	}

	wg.Wait()
}

func (d *Dispatcher) sendReceipt(ctx context.Context, rec models.DonationRecord) {
	subject := "Thank you for your contribution"
	body := buildReceiptHTML(rec)

	pdfBytes, err := BuildReceiptPDF(rec)
	if err != nil {
		logger.Log.Warn("failed to build receipt PDF; sending receipt without attachment", zap.Error(err))
		if _, err := d.email.SendEmail(ctx, []string{rec.Email}, subject, body); err != nil {
			logger.Log.Warn("failed to send donor receipt", zap.Error(err))
		}
		return
	}

	filename := fmt.Sprintf("Receipt_%s.pdf", rec.PaymentRef)
	if _, err := d.email.SendEmailWithAttachment(ctx, []string{rec.Email}, subject, body, filename, pdfBytes); err != nil {
		logger.Log.Warn("failed to send donor receipt", zap.Error(err))
	}
}

// RelayForm sends a contact or endorsement submission to a campaign inbox.
// Unlike donation notifications this is synchronous: the form response should
// reflect whether the message actually went out.
func (d *Dispatcher) RelayForm(ctx context.Context, to, subject string, fields map[string]string, order []string) error {
	if d.email == nil {
		return fmt.Errorf("email not configured")
	}

	body := "<html><body><ul>"
	for _, name := range order {
		if v := fields[name]; v != "" {
			body += fmt.Sprintf("<li><strong>%s:</strong> %s</li>", html.EscapeString(name), html.EscapeString(v))
		}
	}
	body += "</ul></body></html>"

	_, err := d.email.SendEmail(ctx, []string{to}, subject, body)
	return err
}
