package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"parcel/internal/domain/entity"
)

// UserRepository is a mock of repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) UpsertProfile(ctx context.Context, profile *entity.UserProfile) error {
	args := m.Called(ctx, profile)

	return args.Error(0)
}

func (m *UserRepository) FindProfileByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	args := m.Called(ctx, id)
	if profile, ok := args.Get(0).(*entity.UserProfile); ok {
		return profile, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) FindAdminByEmail(ctx context.Context, email string) (*entity.AdminAccount, error) {
	args := m.Called(ctx, email)
	if admin, ok := args.Get(0).(*entity.AdminAccount); ok {
		return admin, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserRepository) CreateAdmin(ctx context.Context, admin *entity.AdminAccount) error {
	args := m.Called(ctx, admin)

	return args.Error(0)
}

// PaymentMethodRepository is a mock of repository.PaymentMethodRepository.
type PaymentMethodRepository struct {
	mock.Mock
}

func (m *PaymentMethodRepository) CreatePaymentMethod(ctx context.Context, method *entity.PaymentMethod) error {
	args := m.Called(ctx, method)

	return args.Error(0)
}

func (m *PaymentMethodRepository) FindPaymentMethodsByUser(ctx context.Context, userID string) ([]*entity.PaymentMethod, error) {
	args := m.Called(ctx, userID)
	if methods, ok := args.Get(0).([]*entity.PaymentMethod); ok {
		return methods, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *PaymentMethodRepository) DeletePaymentMethod(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
