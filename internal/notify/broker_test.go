package notify_test

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"inventory/internal/models"
	"inventory/internal/notify"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// MockPublisher is a mock implementation of notify.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishChange(event models.ChangeEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func TestBroker_PublishesChangeEvent(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishChange", mock.MatchedBy(func(e models.ChangeEvent) bool {
		_, err := uuid.Parse(e.ID)
		return err == nil &&
			e.Address == "products/4" &&
			e.URI == "content://com.example.android.inventoryapp/products/4" &&
			!e.OccurredAt.IsZero()
	})).Return(nil).Once()

	notify.NewBroker(publisher).NotifyChange(context.Background(), "/products/4")

	publisher.AssertExpectations(t)
}

func TestBroker_PublishFailureIsSwallowed(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishChange", mock.Anything).Return(errors.New("channel closed")).Once()

	assert.NotPanics(t, func() {
		notify.NewBroker(publisher).NotifyChange(context.Background(), "products")
	})
	publisher.AssertExpectations(t)
}
