package gameplay

import (
	"context"

	"star-rush/server/logging"
)

const (
	// EventStarPickup is emitted when a ship collects a star.
	EventStarPickup logging.EventType = "gameplay.star_pickup"
	// EventScoreReset is emitted when the last ship leaves and both team
	// scores return to zero.
	EventScoreReset logging.EventType = "gameplay.score_reset"
)

// StarPickupPayload captures the scoring side of a pickup.
type StarPickupPayload struct {
	StarID int     `json:"starId"`
	Team   string  `json:"team"`
	Score  int     `json:"score"`
	XP     float64 `json:"xp"`
}

// ScoreResetPayload captures the scores discarded by a reset.
type ScoreResetPayload struct {
	Red  int `json:"red"`
	Blue int `json:"blue"`
}

// StarPickup publishes a successful star collection.
func StarPickup(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, star logging.EntityRef, payload StarPickupPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventStarPickup,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{star},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

// ScoreReset publishes the empty-world score reset.
func ScoreReset(ctx context.Context, pub logging.Publisher, tick uint64, payload ScoreResetPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventScoreReset,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}
