package twilio_test

import (
	"context"
	"errors"
	"testing"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/adapters/out/twilio"
	"dispatch/internal/core/application/fanout"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type MockMessageCreator struct {
	mock.Mock
}

func (m *MockMessageCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	args := m.Called(params)
	msg, _ := args.Get(0).(*twilioApi.ApiV2010Message)
	return msg, args.Error(1)
}

func setup(t *testing.T) (*MockMessageCreator, *memory.ProfileDirectory) {
	t.Helper()
	return new(MockMessageCreator), memory.NewProfileDirectory(memory.NewStore())
}

var update = ports.Notification{Event: "order.status.updated", Message: "A driver accepted your order"}

func TestSMSPublisher_TextsCustomerPhone(t *testing.T) {
	api, profiles := setup(t)
	customer := kernel.Profile{ID: kernel.NewUUID(), Role: kernel.RoleCustomer, Phone: "+966500000001"}
	profiles.Put(customer)
	p := twilio.NewSMSPublisherWithAPI(api, "+15005550006", profiles)

	api.On("CreateMessage", mock.MatchedBy(func(params *twilioApi.CreateMessageParams) bool {
		return *params.To == "+966500000001" && *params.From == "+15005550006" && *params.Body == update.Message
	})).Return(&twilioApi.ApiV2010Message{}, nil).Once()

	require.NoError(t, p.Publish(t.Context(), fanout.CustomerChannel(customer.ID), update))
	api.AssertExpectations(t)
}

func TestSMSPublisher_SkipsOtherChannelsAndMissingPhones(t *testing.T) {
	api, profiles := setup(t)
	silent := kernel.Profile{ID: kernel.NewUUID(), Role: kernel.RoleCustomer}
	profiles.Put(silent)
	p := twilio.NewSMSPublisherWithAPI(api, "+15005550006", profiles)
	ctx := context.Background()

	require.NoError(t, p.Publish(ctx, fanout.DriverChannel(kernel.NewUUID()), update))
	require.NoError(t, p.Publish(ctx, fanout.OrdersChannel("Riyadh"), update))
	require.NoError(t, p.Publish(ctx, fanout.CustomerChannel(silent.ID), update))

	api.AssertNotCalled(t, "CreateMessage", mock.Anything)
}

func TestSMSPublisher_Errors(t *testing.T) {
	api, profiles := setup(t)
	customer := kernel.Profile{ID: kernel.NewUUID(), Role: kernel.RoleCustomer, Phone: "+966500000001"}
	profiles.Put(customer)
	p := twilio.NewSMSPublisherWithAPI(api, "+15005550006", profiles)

	err := p.Publish(t.Context(), fanout.CustomerChannel(kernel.NewUUID()), update)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	apiErr := errors.New("21211 invalid 'To' number")
	api.On("CreateMessage", mock.Anything).Return(nil, apiErr).Once()
	err = p.Publish(t.Context(), fanout.CustomerChannel(customer.ID), update)
	require.ErrorIs(t, err, apiErr)
	assert.Contains(t, err.Error(), customer.ID.String())
}
