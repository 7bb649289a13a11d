// Package notify delivers best-effort owner notifications about guestbook
// activity. Delivery never blocks the caller and failures are only logged.
package notify

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/bettyshin1213/hbd-public/internal/config"
	"github.com/bettyshin1213/hbd-public/internal/pkg/bark"
	"go.uber.org/zap"
)

const (
	maxBodyRunes = 300
	timeLayout   = "2006-01-02 15:04"
)

// Event is a single notification.
type Event struct {
	Title string
	Body  string
}

// Sink accepts events for asynchronous delivery.
type Sink interface {
	Notify(e Event)
}

// Noop drops every event.
type Noop struct{}

func (Noop) Notify(Event) {}

// Multi fans an event out to several sinks.
type Multi []Sink

func (m Multi) Notify(e Event) {
	for _, s := range m {
		s.Notify(e)
	}
}

// New builds the sink set from config. Portfolio mode disables delivery.
func New(cfg *config.AppConfig, logger *zap.Logger) Sink {
	if cfg.PortfolioMode {
		return Noop{}
	}
	var sinks Multi
	if cfg.SlackWebhookURL != "" {
		sinks = append(sinks, NewSlack(cfg.SlackWebhookURL, logger))
	}
	if cfg.Bark.Key != "" {
		sinks = append(sinks, NewBark(bark.New(cfg.Bark.Key, cfg.Bark.ServerURL, cfg.BirthdayUsername), logger))
	}
	switch len(sinks) {
	case 0:
		return Noop{}
	case 1:
		return sinks[0]
	default:
		return sinks
	}
}

// Truncate cuts s to 300 runes and appends an ellipsis when it was longer.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxBodyRunes {
		return s
	}
	return string([]rune(s)[:maxBodyRunes]) + "…"
}

func MessageCreated(nickname, text string, at time.Time) Event {
	return Event{
		Title: "New guestbook message",
		Body:  fmt.Sprintf("- author: %s\n- time: %s\n- text:\n%s", nickname, at.Format(timeLayout), Truncate(text)),
	}
}

func MessageUpdated(nickname, text string, at time.Time) Event {
	return Event{
		Title: "Guestbook message edited",
		Body:  fmt.Sprintf("- author: %s\n- time: %s\n- new text:\n%s", nickname, at.Format(timeLayout), Truncate(text)),
	}
}

func MessageDeleted(id, nickname string, at time.Time) Event {
	return Event{
		Title: "Guestbook message deleted",
		Body:  fmt.Sprintf("- id: %s\n- time: %s\n- author: %s", id, at.Format(timeLayout), nickname),
	}
}
