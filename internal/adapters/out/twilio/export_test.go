package twilio

import "dispatch/internal/core/ports"

func NewSMSPublisherWithAPI(api messageCreator, from string, profiles ports.ProfileProvider) *SMSPublisher {
	return newSMSPublisher(api, from, profiles)
}
