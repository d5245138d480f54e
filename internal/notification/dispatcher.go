package notification

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/logger"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

// ErrNoRecipients is returned by SendTest when nobody would receive the message
var ErrNoRecipients = errors.New("no whatsapp recipients configured")

var deliveries = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "textile_whatsapp_messages_total",
	Help: "WhatsApp delivery attempts by event and outcome.",
}, []string{"event", "status"})

// Sender delivers one text message and returns the provider message id
type Sender interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// MessageStore persists the delivery log
type MessageStore interface {
	CreateMessage(ctx context.Context, msg *model.WhatsappMessage) error
}

// Publisher fans events out to live clients
type Publisher interface {
	Publish(event string, data any)
}

// Notifier is what services depend on
type Notifier interface {
	Notify(ctx context.Context, event Event, data map[string]string)
}

type Dispatcher struct {
	sender    Sender
	store     MessageStore
	publisher Publisher
	timeout   time.Duration
	log       *logrus.Logger

	mu       sync.RWMutex
	settings Settings
}

// NewDispatcher wires a dispatcher; publisher may be nil.
func NewDispatcher(sender Sender, store MessageStore, publisher Publisher, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		sender:    sender,
		store:     store,
		publisher: publisher,
		timeout:   timeout,
		log:       logger.Get("notify"),
	}
}

// UpdateSettings swaps the settings snapshot used by later dispatches
func (d *Dispatcher) UpdateSettings(s Settings) {
	s.Recipients = slices.Clone(s.Recipients)
	d.mu.Lock()
	d.settings = s
	d.mu.Unlock()
}

func (d *Dispatcher) Settings() Settings {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.settings
}

// Notify publishes the event and, when the settings allow it, sends one
// message per recipient. Delivery errors are logged and recorded, never returned.
func (d *Dispatcher) Notify(ctx context.Context, event Event, data map[string]string) {
	if d.publisher != nil {
		d.publisher.Publish(string(event), data)
	}

	settings := d.Settings()
	if !settings.Allows(event) {
		return
	}

	body := Render(event, data)
	d.deliver(ctx, event, body, settings.Recipients)
}

// SendTest sends the test template to the given recipients, or to the
// configured ones when none are given. The enabled toggle is ignored.
func (d *Dispatcher) SendTest(ctx context.Context, business string, recipients []string) ([]model.WhatsappMessage, error) {
	if len(recipients) == 0 {
		recipients = d.Settings().Recipients
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	body := Render(EventTest, map[string]string{"business": business})
	return d.deliver(ctx, EventTest, body, recipients), nil
}

func (d *Dispatcher) deliver(ctx context.Context, event Event, body string, recipients []string) []model.WhatsappMessage {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	results := make([]model.WhatsappMessage, 0, len(recipients))
	for _, to := range recipients {
		msg := model.WhatsappMessage{
			Event:     string(event),
			Recipient: to,
			Body:      body,
			Status:    model.MessageStatusDelivered,
		}

		providerID, err := d.sender.Send(ctx, to, body)
		if err != nil {
			msg.Status = model.MessageStatusNotDelivered
			msg.Error = err.Error()
			d.log.WithError(err).WithFields(logrus.Fields{
				"event":     event,
				"recipient": to,
			}).Warn("whatsapp delivery failed")
		} else {
			msg.ProviderID = providerID
		}
		deliveries.WithLabelValues(string(event), msg.Status).Inc()

		if err := d.store.CreateMessage(ctx, &msg); err != nil {
			d.log.WithError(err).WithField("event", event).Error("failed to record whatsapp message")
		}
		results = append(results, msg)
	}
	return results
}

// DisabledSender records every attempt as not delivered; used when no
// provider credentials are configured.
type DisabledSender struct{}

func (DisabledSender) Send(context.Context, string, string) (string, error) {
	return "", errors.New("whatsapp sender is not configured")
}
