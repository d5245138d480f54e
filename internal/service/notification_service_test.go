package service_test

import (
	"context"
	"testing"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exercise runs one create of every notifying entity
func exercise(t *testing.T, e *env) {
	t.Helper()
	ctx := context.Background()
	_, err := e.customers.CreateCustomer(ctx, "tester", service.CustomerRequest{Name: "Ravi Traders", Type: model.CustomerTypeWholesale})
	require.NoError(t, err)
	_, o := placeOrder(t, e)
	_, err = e.stock.CreateStock(ctx, "tester", grayStock("10"))
	require.NoError(t, err)
	_, err = e.returns.CreateReturn(ctx, "tester", service.ReturnRequest{
		OrderID: o.ID.String(), Product: "Cotton Poplin", Color: "Red",
		QuantityInMeters: d("1"), ReturnReason: "Damaged",
	})
	require.NoError(t, err)
}

func TestNotificationsDisabledMakeNoSends(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	settings, err := e.notifications.GetSettings(ctx)
	require.NoError(t, err)
	assert.False(t, settings.Enabled)
	assert.True(t, settings.OrderUpdates)
	assert.Empty(t, settings.Recipients)

	exercise(t, e)
	assert.Zero(t, e.sender.calls())

	_, err = e.notifications.UpdateSettings(ctx, "tester", service.NotificationSettingsRequest{
		Enabled:    boolPtr(false),
		Recipients: []string{"+919800000001"},
	})
	require.NoError(t, err)
	exercise(t, e)
	assert.Zero(t, e.sender.calls())
}

func TestNotificationsEnabledSendPerRecipient(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.notifications.UpdateSettings(ctx, "tester", service.NotificationSettingsRequest{
		Enabled:       boolPtr(true),
		Recipients:    []string{"+919800000001", " +919800000002 ", "+919800000001"},
		StockUpdates:  boolPtr(false),
		ReturnUpdates: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"+919800000001", "+919800000002"}, e.dispatcher.Settings().Recipients)

	// customer, product and order events reach both recipients; stock and return are off
	exercise(t, e)
	assert.Equal(t, 6, e.sender.calls())

	msgs, total, err := e.notifications.ListMessages(ctx, service.MessageQuery{Status: model.MessageStatusDelivered})
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)

	got, err := e.notifications.GetMessage(ctx, msgs[0].ID.String())
	require.NoError(t, err)
	assert.Equal(t, "SM1", got.ProviderID)
}

func TestUpdateSettingsRequiresRecipientsWhenEnabled(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.notifications.UpdateSettings(ctx, "tester", service.NotificationSettingsRequest{Enabled: boolPtr(true)})
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.False(t, e.dispatcher.Settings().Enabled)
}

func TestSendTestMessage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.notifications.SendTest(ctx, service.TestMessageRequest{})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = e.business.CreateBusiness(ctx, "tester", service.BusinessRequest{BusinessName: "Shree Textiles"})
	require.NoError(t, err)

	msgs, err := e.notifications.SendTest(ctx, service.TestMessageRequest{Recipients: []string{"+919800000003"}})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, model.MessageStatusDelivered, msgs[0].Status)
	assert.Contains(t, msgs[0].Body, "Shree Textiles")
	assert.Equal(t, 1, e.sender.calls())
}

func TestLoadSettingsPushesSnapshot(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.store.Notifications().SaveSettings(ctx, &model.WhatsappNotification{
		Enabled:    true,
		Recipients: model.StringList{"+919800000009"},
	}))
	require.NoError(t, e.notifications.LoadSettings(ctx))

	snap := e.dispatcher.Settings()
	assert.True(t, snap.Enabled)
	assert.Equal(t, []string{"+919800000009"}, snap.Recipients)
}
