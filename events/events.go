// Package events carries movement change notifications from the store to
// listening clients so they know when to refetch.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

type Type string

const (
	TypeReady   Type = "ready"
	TypeCreated Type = "created"
	TypeUpdated Type = "updated"
	TypeDeleted Type = "deleted"
)

// MovementEvent signals that a movement changed. It carries no movement
// content; receivers refetch the collection.
type MovementEvent struct {
	Type Type      `json:"type"`
	ID   int64     `json:"id,omitempty"`
	At   time.Time `json:"at"`
}

func NewMovementEvent(t Type, id int64) MovementEvent {
	return MovementEvent{Type: t, ID: id, At: time.Now().UTC()}
}

func (e MovementEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func MovementEventFromJSON(data []byte) (MovementEvent, error) {
	var e MovementEvent
	err := json.Unmarshal(data, &e)
	return e, err
}

// Publisher delivers movement events to some audience.
type Publisher interface {
	Publish(ctx context.Context, e MovementEvent) error
}

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e MovementEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Publish(context.Context, MovementEvent) error { return nil }
