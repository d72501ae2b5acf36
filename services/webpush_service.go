package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/zeeshansheikh0001/calorie-tracker-sub001/models"
)

// DeliveryErrorKind classifies a failed push attempt. The dispatcher
// never retries within a tick regardless of kind; the kind exists so the
// caller can clean up dead endpoints and alert on key misconfiguration.
type DeliveryErrorKind int

const (
	// DeliveryEndpointGone: the push service no longer knows this
	// endpoint (404/410). The registration can be garbage-collected.
	DeliveryEndpointGone DeliveryErrorKind = iota + 1
	// DeliveryTransientNetwork: timeout, connection failure or a 5xx
	// from the push service. The next tick may succeed.
	DeliveryTransientNetwork
	// DeliveryPayloadTooLarge: the push service rejected the message
	// size (413).
	DeliveryPayloadTooLarge
	// DeliveryUnauthorized: VAPID keys rejected (401/403). Fatal until
	// reconfigured; retrying per call is pointless.
	DeliveryUnauthorized
)

func (k DeliveryErrorKind) String() string {
	switch k {
	case DeliveryEndpointGone:
		return "endpoint_gone"
	case DeliveryTransientNetwork:
		return "transient_network"
	case DeliveryPayloadTooLarge:
		return "payload_too_large"
	case DeliveryUnauthorized:
		return "unauthorized"
	}
	return "unknown"
}

type DeliveryError struct {
	Kind       DeliveryErrorKind
	StatusCode int
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("push delivery failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("push delivery failed (%s): status %d", e.Kind, e.StatusCode)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// VAPIDConfig is the sender identity for web push, established once at
// startup and injected. Missing keys are a configuration error, caught
// in the constructor rather than on the first send.
type VAPIDConfig struct {
	PublicKey  string
	PrivateKey string
	Subject    string
}

// WebPushService delivers one payload to one endpoint over the Web Push
// protocol with VAPID authentication.
type WebPushService struct {
	vapid  VAPIDConfig
	client *http.Client
	ttl    int
}

// sendTimeout bounds a single push call so one hung endpoint cannot
// stall the whole tick.
const sendTimeout = 10 * time.Second

func NewWebPushService(vapid VAPIDConfig) (*WebPushService, error) {
	if vapid.PublicKey == "" || vapid.PrivateKey == "" {
		return nil, errors.New("webpush: VAPID key pair not configured")
	}
	if vapid.Subject == "" {
		return nil, errors.New("webpush: VAPID subject not configured")
	}
	return &WebPushService{
		vapid:  vapid,
		client: &http.Client{Timeout: sendTimeout},
		ttl:    60, // reminders are stale within a minute
	}, nil
}

// Send pushes the serialized payload to a single subscription. A non-nil
// return is always a *DeliveryError.
func (s *WebPushService) Send(ctx context.Context, sub models.PushSubscription, payload []byte) error {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		HTTPClient:      s.client,
		Subscriber:      s.vapid.Subject,
		VAPIDPublicKey:  s.vapid.PublicKey,
		VAPIDPrivateKey: s.vapid.PrivateKey,
		TTL:             s.ttl,
	})
	if err != nil {
		return &DeliveryError{Kind: DeliveryTransientNetwork, Err: err}
	}
	defer resp.Body.Close()
	return classifyStatus(resp.StatusCode)
}

func classifyStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound || code == http.StatusGone:
		return &DeliveryError{Kind: DeliveryEndpointGone, StatusCode: code}
	case code == http.StatusRequestEntityTooLarge:
		return &DeliveryError{Kind: DeliveryPayloadTooLarge, StatusCode: code}
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return &DeliveryError{Kind: DeliveryUnauthorized, StatusCode: code}
	default:
		return &DeliveryError{Kind: DeliveryTransientNetwork, StatusCode: code}
	}
}
