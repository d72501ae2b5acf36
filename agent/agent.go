// Package agent implements the client-side notification state machine:
// it turns a delivered push message into a visible system notification
// and, on click, navigates the application to the route for the
// notification's type.
//
// The agent runs inside the client runtime (a service worker or an
// embedded webview shell) and talks to the host through two small
// interfaces, NotificationSurface and WindowRegistry. Every handler
// finishes all of its work before returning, because the host only
// keeps the worker alive until the handler's completion signal.
package agent

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/zeeshansheikh0001/calorie-tracker-sub001/models"
)

// State is the lifecycle of the most recent notification.
type State int

const (
	StateIdle State = iota
	StateNotificationShown
	StateClicked
	StateDismissed
	StateTimedOutIgnored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateNotificationShown:
		return "notification_shown"
	case StateClicked:
		return "clicked"
	case StateDismissed:
		return "dismissed"
	case StateTimedOutIgnored:
		return "timed_out_ignored"
	}
	return "unknown"
}

// Notification is what the agent asks the host surface to display.
type Notification struct {
	Title string
	Body  string
	// Tag collapses duplicate deliveries of the same category into one
	// visible notification instead of stacking them.
	Tag  string
	Icon string
	// Path is the in-app route opened when the notification is clicked.
	Path string
}

// NotificationSurface is the host's system notification API.
type NotificationSurface interface {
	// Show displays the notification regardless of whether the app is
	// foregrounded, replacing any visible notification with the same tag.
	Show(ctx context.Context, n Notification) error
	Close(ctx context.Context, tag string) error
}

// AppWindow is one open application window or tab.
type AppWindow interface {
	Path() string
	Focus(ctx context.Context) error
}

// WindowRegistry enumerates and opens application windows.
type WindowRegistry interface {
	List(ctx context.Context) ([]AppWindow, error)
	Open(ctx context.Context, path string) error
}

// Fallback notification shown when a push arrives with a body the agent
// cannot parse. It routes to the app root on click.
const (
	fallbackTitle = "Calorie Tracker"
	fallbackBody  = "You have a new notification."
)

// Agent is the push-receipt state machine.
type Agent struct {
	surface NotificationSurface
	windows WindowRegistry
	log     *zap.Logger

	mu      sync.Mutex
	state   State
	current *Notification
}

func New(surface NotificationSurface, windows WindowRegistry, log *zap.Logger) *Agent {
	if log == nil {
		log = zap.NewNop()
	}
	return &Agent{
		surface: surface,
		windows: windows,
		log:     log,
		state:   StateIdle,
	}
}

// State reports the current lifecycle state.
func (a *Agent) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// HandlePush processes one inbound push event. A push with no body is a
// no-op. A body that does not parse as a notification payload degrades
// to a generic notification instead of crashing the agent.
func (a *Agent) HandlePush(ctx context.Context, body []byte) error {
	if len(body) == 0 {
		return nil
	}

	payload := a.parsePayload(body)
	n := Notification{
		Title: payload.Title,
		Body:  payload.Body,
		Tag:   tagFor(payload.Type),
		Icon:  payload.Icon,
		Path:  RouteFor(payload.Type),
	}

	if err := a.surface.Show(ctx, n); err != nil {
		return err
	}

	a.mu.Lock()
	a.state = StateNotificationShown
	a.current = &n
	a.mu.Unlock()
	return nil
}

// HandleClick runs the routing decision for the shown notification:
// close it, then focus an app window already on the target path, or open
// a new one. A click with nothing shown is ignored.
func (a *Agent) HandleClick(ctx context.Context) error {
	a.mu.Lock()
	n := a.current
	a.mu.Unlock()
	if n == nil {
		return nil
	}

	if err := a.surface.Close(ctx, n.Tag); err != nil {
		a.log.Warn("close notification failed", zap.Error(err))
	}
	if err := a.navigate(ctx, n.Path); err != nil {
		return err
	}

	a.mu.Lock()
	a.state = StateClicked
	a.current = nil
	a.mu.Unlock()
	return nil
}

// HandleDismiss records that the user swiped the notification away.
func (a *Agent) HandleDismiss() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateNotificationShown {
		return
	}
	a.state = StateDismissed
	a.current = nil
}

// HandleExpiry records that the notification aged out without any
// interaction.
func (a *Agent) HandleExpiry() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateNotificationShown {
		return
	}
	a.state = StateTimedOutIgnored
	a.current = nil
}

func (a *Agent) navigate(ctx context.Context, path string) error {
	wins, err := a.windows.List(ctx)
	if err != nil {
		return err
	}
	for _, w := range wins {
		if w.Path() == path {
			return w.Focus(ctx)
		}
	}
	return a.windows.Open(ctx, path)
}

func (a *Agent) parsePayload(body []byte) models.NotificationPayload {
	var p models.NotificationPayload
	if err := json.Unmarshal(body, &p); err != nil {
		a.log.Warn("unparsable push payload", zap.Error(err))
		return models.NotificationPayload{
			Title: fallbackTitle,
			Body:  fallbackBody,
			Type:  models.NotificationGeneral,
		}
	}
	if p.Title == "" {
		p.Title = fallbackTitle
	}
	if p.Body == "" {
		p.Body = fallbackBody
	}
	return p
}

func tagFor(t models.NotificationType) string {
	if t == "" {
		return string(models.NotificationGeneral)
	}
	return string(t)
}
