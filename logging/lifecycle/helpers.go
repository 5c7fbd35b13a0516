package lifecycle

import (
	"context"

	"star-rush/server/logging"
)

const (
	// EventShipJoined is emitted when a connection spawns a ship.
	EventShipJoined logging.EventType = "lifecycle.ship_joined"
	// EventShipDisconnected is emitted when a ship leaves the world.
	EventShipDisconnected logging.EventType = "lifecycle.ship_disconnected"
	// EventNameSet is emitted when a ship's display name is accepted.
	EventNameSet logging.EventType = "lifecycle.name_set"
	// EventNameIgnored is emitted when a rename attempt arrives after the
	// first accepted name.
	EventNameIgnored logging.EventType = "lifecycle.name_ignored"
	// EventClassChanged is emitted when a ship switches stat profile.
	EventClassChanged logging.EventType = "lifecycle.class_changed"
)

// ShipJoinedPayload captures spawn metadata for a new ship.
type ShipJoinedPayload struct {
	SpawnX float64 `json:"spawnX"`
	SpawnY float64 `json:"spawnY"`
	Team   string  `json:"team"`
}

// ShipDisconnectedPayload captures how a ship left.
type ShipDisconnectedPayload struct {
	Reason string `json:"reason"`
}

// NamePayload carries the name involved in a set or ignored rename.
type NamePayload struct {
	Name string `json:"name"`
}

// ClassChangedPayload carries the resolved class key.
type ClassChangedPayload struct {
	Class string `json:"class"`
}

// ShipJoined publishes a ship join event.
func ShipJoined(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ShipJoinedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventShipJoined,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

// ShipDisconnected publishes a ship removal event.
func ShipDisconnected(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ShipDisconnectedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventShipDisconnected,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

// NameSet publishes acceptance of a ship's first display name.
func NameSet(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload NamePayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventNameSet,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

// NameIgnored publishes a silently dropped rename attempt.
func NameIgnored(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload NamePayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventNameIgnored,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

// ClassChanged publishes a class switch, including fallback resolutions.
func ClassChanged(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ClassChangedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventClassChanged,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, event)
}
