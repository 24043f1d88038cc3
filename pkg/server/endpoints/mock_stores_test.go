package endpoints

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/demotours/tours-backend/pkg/media"
	"github.com/demotours/tours-backend/pkg/server/store"
)

// MockItinerariesStore implements store.ItinerariesStore for testing using testify/mock
type MockItinerariesStore struct {
	mock.Mock
}

func NewMockItinerariesStore() *MockItinerariesStore {
	return &MockItinerariesStore{}
}

func (m *MockItinerariesStore) ListItineraries() ([]store.Itinerary, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Itinerary), args.Error(1)
}

func (m *MockItinerariesStore) FetchItinerary(slug string) (*store.Itinerary, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Itinerary), args.Error(1)
}

func (m *MockItinerariesStore) CreateItinerary(payload *store.NewItinerary) (string, error) {
	args := m.Called(payload)
	return args.String(0), args.Error(1)
}

func (m *MockItinerariesStore) DeleteItineraryGraph(itinerary *store.Itinerary) error {
	args := m.Called(itinerary)
	return args.Error(0)
}

// MockMediaClient implements media.Client for testing using testify/mock
type MockMediaClient struct {
	mock.Mock
}

func NewMockMediaClient() *MockMediaClient {
	return &MockMediaClient{}
}

func (m *MockMediaClient) Destroy(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}

func (m *MockMediaClient) SignUpload(timestamp int64) (*media.SignedUpload, error) {
	args := m.Called(timestamp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.SignedUpload), args.Error(1)
}
