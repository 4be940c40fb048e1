package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/cresxjohn/qwik-sub001/internal/domain"
)

// PaymentRepository defines the interface for payment data operations.
// Implementations must round-trip every scheduling field verbatim; the
// engine's invariants only hold over consistent snapshots.
type PaymentRepository interface {
	// Create persists a new payment and its reminder specs
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment with its reminder specs
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)

	// List retrieves all payments with their reminder specs
	List(ctx context.Context) ([]*domain.Payment, error)

	// Update rewrites a payment and replaces its reminder specs
	Update(ctx context.Context, payment *domain.Payment) error

	// Delete removes a payment and its reminder specs
	Delete(ctx context.Context, id uuid.UUID) error
}
