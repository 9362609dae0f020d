package notify

import (
	"fmt"
	"html"
	"strings"

	"campaignapi/models"
)

func donationKind(rec models.DonationRecord) string {
	if rec.Recurring {
		return "monthly recurring contribution"
	}
	return "one-time contribution"
}

// buildReceiptHTML renders the donor-facing receipt email body.
func buildReceiptHTML(rec models.DonationRecord) string {
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Georgia, 'Times New Roman', serif; color: #1a2744; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .amount { font-size: 28px; font-weight: bold; color: #1a2744; }
        .details { background-color: #f5f3ee; padding: 16px; border-radius: 4px; margin: 20px 0; }
        .footer { font-size: 12px; color: #777; border-top: 1px solid #ddd; padding-top: 12px; margin-top: 24px; }
    </style>
</head>
<body>
    <div class="container">
        <h2>Thank you, %s</h2>
        <p>Your %s has been received. Your support makes this campaign possible.</p>
        <div class="details">
            <div class="amount">$%d</div>
            <p>Reference: %s<br>Date: %s</p>
        </div>
        <p>Your official contribution receipt is attached for your records.</p>
        <p>With gratitude,<br><strong>The Campaign Team</strong></p>
        <div class="footer">
            <p>Contributions are not tax deductible. This receipt records a political contribution subject to statutory limits and disclosure requirements.</p>
        </div>
    </div>
</body>
</html>
`,
		html.EscapeString(rec.Name),
		donationKind(rec),
		rec.Amount,
		html.EscapeString(rec.PaymentRef),
		html.EscapeString(rec.Timestamp),
	)
	return strings.TrimSpace(body)
}

// buildTeamNotificationHTML renders the internal alert sent to the campaign
// team when a contribution is confirmed.
func buildTeamNotificationHTML(rec models.DonationRecord) string {
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body>
    <h3>New %s received</h3>
    <ul>
        <li><strong>Amount:</strong> $%d</li>
        <li><strong>Donor:</strong> %s (%s)</li>
        <li><strong>Type:</strong> %s</li>
        <li><strong>Reference:</strong> %s</li>
        <li><strong>Time:</strong> %s</li>
    </ul>
</body>
</html>
`,
		donationKind(rec),
		rec.Amount,
		html.EscapeString(rec.Name),
		html.EscapeString(rec.Email),
		rec.ContributorType,
		html.EscapeString(rec.PaymentRef),
		html.EscapeString(rec.Timestamp),
	)
	return strings.TrimSpace(body)
}
