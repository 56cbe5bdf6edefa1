package notify

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"inventory/internal/models"
)

// Publisher sends change events to a message broker.
type Publisher interface {
	PublishChange(event models.ChangeEvent) error
}

// Broker is a Notifier that forwards changes to a Publisher. The write has
// already been committed when it runs, so publish failures are only logged.
type Broker struct {
	publisher Publisher
	now       func() time.Time
}

// NewBroker creates a Broker around publisher.
func NewBroker(publisher Publisher) *Broker {
	return &Broker{
		publisher: publisher,
		now:       time.Now,
	}
}

// NotifyChange publishes a ChangeEvent for address.
func (b *Broker) NotifyChange(_ context.Context, address string) {
	address = normalize(address)
	event := models.ChangeEvent{
		ID:         uuid.New().String(),
		Address:    address,
		URI:        models.ContentScheme + "://" + models.ContentAuthority + "/" + address,
		OccurredAt: b.now().UTC(),
	}
	if err := b.publisher.PublishChange(event); err != nil {
		log.Printf("Warning: Failed to publish change event for %s: %v", address, err)
		return
	}
	log.Printf("Published change event %s for %s", event.ID, address)
}
