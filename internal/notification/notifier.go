package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"pantry-sync-backend/config"
	"pantry-sync-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Notifier fans a message out to every stored push subscription.
type Notifier struct {
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
}

// NewNotifier creates a Notifier. Without VAPID keys it is a no-op.
func NewNotifier(db *gorm.DB, cfg config.PushConfig) *Notifier {
	n := &Notifier{db: db, sender: &WebPushSender{}}
	if cfg.PushEnabled() {
		n.webpush = &webpush.Options{
			Subscriber:      cfg.Subject,
			VAPIDPublicKey:  cfg.PublicKey,
			VAPIDPrivateKey: cfg.PrivateKey,
			TTL:             cfg.TTL,
		}
	}
	return n
}

// Enabled reports whether notifications are sent at all.
func (n *Notifier) Enabled() bool {
	return n.webpush != nil
}

// ItemAdded tells subscribers an item was put on a shopping list.
func (n *Notifier) ItemAdded(ctx context.Context, itemName, listLabel string) {
	n.Broadcast(ctx, fmt.Sprintf("%s added to %s", itemName, listLabel))
}

// Broadcast sends message to every subscription. Failures are logged, not returned.
func (n *Notifier) Broadcast(ctx context.Context, message string) {
	if !n.Enabled() {
		return
	}

	var subscriptions []model.PushSubscription
	if err := n.db.WithContext(ctx).Find(&subscriptions).Error; err != nil {
		log.Printf("Error fetching subscriptions: %v", err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	log.Printf("Sending %d notifications: %s", len(subscriptions), message)
	for _, sub := range subscriptions {
		n.send(ctx, sub, []byte(message))
	}
}

// send delivers one notification, deleting the subscription if the push service reports it gone.
func (n *Notifier) send(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := n.sender.Send(payload, wpSub, n.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := n.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
