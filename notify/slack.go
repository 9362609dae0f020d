package notify

import (
	"fmt"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"campaignapi/logger"
	"campaignapi/models"
)

// SlackNotifier posts confirmed donations to the team's Slack channel.
// Optional: the campaign runs fine without it.
type SlackNotifier struct {
	client  *slack.Client
	channel string
}

func NewSlackNotifier(botToken, channel string) *SlackNotifier {
	if botToken == "" || channel == "" {
		return nil
	}
	return &SlackNotifier{
		client:  slack.New(botToken),
		channel: channel,
	}
}

// PostDonation announces a confirmed contribution in the configured channel.
func (s *SlackNotifier) PostDonation(rec models.DonationRecord) {
	msg := fmt.Sprintf(
		":tada: New %s: *$%d* from *%s* (%s)\nReference: `%s`",
		donationKind(rec), rec.Amount, rec.Name, rec.ContributorType, rec.PaymentRef,
	)
	_, _, err := s.client.PostMessage(s.channel, slack.MsgOptionText(msg, false))
	if err != nil {
		logger.Log.Warn("failed to post donation to Slack", zap.Error(err))
	}
}
