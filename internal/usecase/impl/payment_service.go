package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcel/internal/domain/entity"
	"parcel/internal/domain/repository"
	"parcel/internal/usecase"
)

type paymentService struct {
	methods repository.PaymentMethodRepository
	now     func() time.Time
}

// NewPaymentService creates a new payment service instance
func NewPaymentService(methods repository.PaymentMethodRepository) usecase.PaymentUsecase {
	return &paymentService{
		methods: methods,
		now:     time.Now,
	}
}

// AddPaymentMethod stores a payment option for a user.
func (s *paymentService) AddPaymentMethod(ctx context.Context, method *entity.PaymentMethod) (*entity.PaymentMethod, error) {
	if method.UserID == "" {
		return nil, errors.New("payment method requires a user id")
	}
	if method.Kind != "cash" && method.Kind != "card" {
		return nil, fmt.Errorf("unsupported payment kind: %s", method.Kind)
	}
	method.CreatedAt = s.now().UTC()

	if err := s.methods.CreatePaymentMethod(ctx, method); err != nil {
		return nil, fmt.Errorf("failed to add payment method: %w", err)
	}

	return method, nil
}

// ListPaymentMethods returns a user's stored payment options.
func (s *paymentService) ListPaymentMethods(ctx context.Context, userID string) ([]*entity.PaymentMethod, error) {
	return s.methods.FindPaymentMethodsByUser(ctx, userID)
}

// DeletePaymentMethod removes a stored payment option after checking
// ownership.
func (s *paymentService) DeletePaymentMethod(ctx context.Context, userID, methodID string) error {
	stored, err := s.methods.FindPaymentMethodsByUser(ctx, userID)
	if err != nil {
		return err
	}

	for _, m := range stored {
		if m.ID == methodID {
			return s.methods.DeletePaymentMethod(ctx, methodID)
		}
	}

	return repository.ErrPaymentMethodNotFound
}
