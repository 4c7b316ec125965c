// Package twilio texts customer notifications to the phone number on the customer profile.
package twilio

import (
	"context"
	"fmt"

	"dispatch/internal/core/application/fanout"
	"dispatch/internal/core/ports"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSPublisher only reacts to customer channels; other channels and customers without a
// phone number are skipped silently.
type SMSPublisher struct {
	api      messageCreator
	from     string
	profiles ports.ProfileProvider
}

func NewSMSPublisher(accountSID, authToken, from string, profiles ports.ProfileProvider) *SMSPublisher {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return newSMSPublisher(client.Api, from, profiles)
}

func newSMSPublisher(api messageCreator, from string, profiles ports.ProfileProvider) *SMSPublisher {
	return &SMSPublisher{api: api, from: from, profiles: profiles}
}

func (p *SMSPublisher) Publish(ctx context.Context, channel string, n ports.Notification) error {
	if !fanout.IsCustomerChannel(channel) || n.Message == "" {
		return nil
	}
	customerID, ok := fanout.UserFromChannel(channel)
	if !ok {
		return nil
	}

	profile, err := p.profiles.Get(ctx, customerID)
	if err != nil {
		return fmt.Errorf("load customer %s: %w", customerID, err)
	}
	if profile.Phone == "" {
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(p.from)
	params.SetTo(profile.Phone)
	params.SetBody(n.Message)

	if _, err := p.api.CreateMessage(params); err != nil {
		return fmt.Errorf("send sms to customer %s: %w", customerID, err)
	}
	return nil
}
