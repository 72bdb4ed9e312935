package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"parcel/internal/domain/service"
)

// TokenService is a mock of service.TokenService.
type TokenService struct {
	mock.Mock
}

func (m *TokenService) GenerateTokens(accountID string, roles []string) (string, string, error) {
	args := m.Called(accountID, roles)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *TokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *TokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *TokenService) GetRefreshTokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

// PasswordHasher is a mock of service.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// AuthVerifier is a mock of service.AuthVerifier.
type AuthVerifier struct {
	mock.Mock
}

func (m *AuthVerifier) VerifyIDToken(ctx context.Context, idToken string) (*service.Identity, error) {
	args := m.Called(ctx, idToken)
	if identity, ok := args.Get(0).(*service.Identity); ok {
		return identity, args.Error(1)
	}

	return nil, args.Error(1)
}

// NotificationService is a mock of service.NotificationService.
type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	args := m.Called(ctx, token, title, body, data)

	return args.Error(0)
}

func (m *NotificationService) SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, []string, error) {
	args := m.Called(ctx, tokens, title, body, data)

	var invalid []string
	if got, ok := args.Get(2).([]string); ok {
		invalid = got
	}

	return args.Int(0), args.Int(1), invalid, args.Error(3)
}

// EventPublisher is a mock of service.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *EventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// QRCodeService is a mock of service.QRCodeService.
type QRCodeService struct {
	mock.Mock
}

func (m *QRCodeService) GenerateCollectionQR(orderID, pin string) ([]byte, error) {
	args := m.Called(orderID, pin)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *QRCodeService) ParseCollectionQR(qrData string) (*service.CollectionCode, error) {
	args := m.Called(qrData)
	if code, ok := args.Get(0).(*service.CollectionCode); ok {
		return code, args.Error(1)
	}

	return nil, args.Error(1)
}

// ScheduleQueue is a mock of service.ScheduleQueue.
type ScheduleQueue struct {
	mock.Mock
}

func (m *ScheduleQueue) Enqueue(ctx context.Context, orderID string, activateAt time.Time) error {
	args := m.Called(ctx, orderID, activateAt)

	return args.Error(0)
}

func (m *ScheduleQueue) Remove(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)

	return args.Error(0)
}

func (m *ScheduleQueue) PopDue(ctx context.Context, now time.Time) ([]string, error) {
	args := m.Called(ctx, now)
	if ids, ok := args.Get(0).([]string); ok {
		return ids, args.Error(1)
	}

	return nil, args.Error(1)
}

// ImageStore is a mock of service.ImageStore.
type ImageStore struct {
	mock.Mock
}

func (m *ImageStore) SaveProfileImage(ctx context.Context, userID string, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, userID, contentType, data)

	return args.String(0), args.Error(1)
}

func (m *ImageStore) DeleteProfileImage(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

// MapsService is a mock of service.MapsService.
type MapsService struct {
	mock.Mock
}

func (m *MapsService) Geocode(ctx context.Context, address string) (*service.Place, error) {
	args := m.Called(ctx, address)
	if place, ok := args.Get(0).(*service.Place); ok {
		return place, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MapsService) Directions(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (*service.Route, error) {
	args := m.Called(ctx, fromLat, fromLng, toLat, toLng)
	if route, ok := args.Get(0).(*service.Route); ok {
		return route, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MapsService) Autocomplete(ctx context.Context, query string) ([]*service.Place, error) {
	args := m.Called(ctx, query)
	if places, ok := args.Get(0).([]*service.Place); ok {
		return places, args.Error(1)
	}

	return nil, args.Error(1)
}
