package services

import (
	"encoding/json"
	"log"
	"time"

	"recipeapi/internal/models"

	"github.com/google/uuid"
)

// Recipe change event types.
const (
	EventRecipeCreated = "recipe.created"
	EventRecipeUpdated = "recipe.updated"
	EventRecipeDeleted = "recipe.deleted"
)

// EventPublisher delivers change events. pkg/rabbitmq.Client implements it.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// RecipeEvent is the message body published when a recipe changes.
type RecipeEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	RecipeID   uint      `json:"recipe_id"`
	OwnerID    uint      `json:"owner_id"`
	Title      string    `json:"title,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newRecipeEvent(eventType string, recipe *models.Recipe) RecipeEvent {
	return RecipeEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		RecipeID:   recipe.ID,
		OwnerID:    recipe.UserID,
		Title:      recipe.Title,
		OccurredAt: time.Now().UTC(),
	}
}

// publish sends the event if a publisher is configured. Failures are logged
// and never returned: the change is already committed.
func publish(p EventPublisher, event RecipeEvent) {
	if p == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event to JSON: %v", event.Type, err)
		return
	}
	if err := p.Publish(event.Type, body); err != nil {
		log.Printf("Warning: failed to publish %s event for recipe %d: %v", event.Type, event.RecipeID, err)
	}
}
