package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/cresxjohn/qwik-sub001/internal/config"
	"github.com/cresxjohn/qwik-sub001/internal/domain"
	"github.com/cresxjohn/qwik-sub001/internal/repository"
	"github.com/cresxjohn/qwik-sub001/internal/schedule"
	customError "github.com/cresxjohn/qwik-sub001/pkg/errors"
)

const nextDueCacheTTL = 24 * time.Hour

type PaymentService struct {
	Repo   repository.PaymentRepository
	redis  *redis.Client
	config *config.Config
}

func NewPaymentService(
	repo repository.PaymentRepository,
	redis *redis.Client,
	config *config.Config,
) *PaymentService {
	return &PaymentService{
		Repo:   repo,
		redis:  redis,
		config: config,
	}
}

// CreatePayment builds a payment from the request, runs it through the
// scheduling engine and persists the normalized record. Nothing is written
// when the recurrence rule is rejected.
func (s *PaymentService) CreatePayment(ctx context.Context, request *domain.CreatePaymentRequest) (*domain.Payment, error) {
	startDate, err := domain.ParseDate(request.StartDate)
	if err != nil {
		return nil, customError.NewBusinessError(customError.ErrCodeInvalidRecurrencePattern, err.Error(), err)
	}

	payment := domain.Payment{
		ID:              uuid.New(),
		Name:            request.Name,
		Amount:          request.Amount,
		Category:        request.Category,
		Recurring:       request.Recurring,
		Recurrence:      request.Recurrence.Pattern(),
		LegacyFrequency: domain.LegacyFrequency(request.LegacyFrequency),
		StartDate:       startDate,
		Reminders:       reminderSetFromRequest(request.Reminders),
	}

	if request.EndDate != "" {
		endDate, err := domain.ParseDate(request.EndDate)
		if err != nil {
			return nil, customError.NewBusinessError(customError.ErrCodeInvalidRecurrencePattern, err.Error(), err)
		}
		payment.EndDate = endDate
	}

	normalized, err := schedule.NormalizePayment(payment)
	if err != nil {
		return nil, customError.WrapInvalidRecurrencePattern(err)
	}

	now := time.Now()
	normalized.CreatedAt = now
	normalized.UpdatedAt = now

	if err = s.Repo.Create(ctx, &normalized); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.cacheNextDue(ctx, &normalized)

	return &normalized, nil
}

// UpdatePayment replaces a payment's user-editable fields and renormalizes
// the schedule. The last payment date survives edits; only completions move it.
func (s *PaymentService) UpdatePayment(ctx context.Context, id uuid.UUID, request *domain.UpdatePaymentRequest) (*domain.Payment, error) {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPaymentNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	startDate, err := domain.ParseDate(request.StartDate)
	if err != nil {
		return nil, customError.NewBusinessError(customError.ErrCodeInvalidRecurrencePattern, err.Error(), err)
	}

	payment := *existing
	payment.Name = request.Name
	payment.Amount = request.Amount
	payment.Category = request.Category
	payment.Recurring = request.Recurring
	payment.Recurrence = request.Recurrence.Pattern()
	payment.StartDate = startDate
	payment.EndDate = domain.Date{}
	payment.Reminders = reminderSetFromRequest(request.Reminders)

	if request.EndDate != "" {
		endDate, err := domain.ParseDate(request.EndDate)
		if err != nil {
			return nil, customError.NewBusinessError(customError.ErrCodeInvalidRecurrencePattern, err.Error(), err)
		}
		payment.EndDate = endDate
	}

	normalized, err := schedule.NormalizePayment(payment)
	if err != nil {
		return nil, customError.WrapInvalidRecurrencePattern(err)
	}
	normalized.UpdatedAt = time.Now()

	if err = s.Repo.Update(ctx, &normalized); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.cacheNextDue(ctx, &normalized)

	return &normalized, nil
}

// CompletePayment records that the payment was made on the given date and
// advances the series, terminating it when the end date is passed.
func (s *PaymentService) CompletePayment(ctx context.Context, id uuid.UUID, completionDate domain.Date) (*domain.Payment, error) {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPaymentNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if completionDate.IsEmpty() {
		return nil, customError.WrapInvalidCompletionDate("completion date is required")
	}
	if completionDate.Before(existing.StartDate) {
		return nil, customError.WrapInvalidCompletionDate(
			fmt.Sprintf("completion date %s precedes start date %s", completionDate, existing.StartDate))
	}

	completed, err := schedule.CompletePayment(*existing, completionDate)
	if err != nil {
		return nil, customError.WrapInvalidRecurrencePattern(err)
	}
	completed.UpdatedAt = time.Now()

	if err = s.Repo.Update(ctx, &completed); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.cacheNextDue(ctx, &completed)

	return &completed, nil
}

// GetPayment returns one payment, renormalized so callers always observe
// consistent derived fields even for records written by older versions.
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	payment, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPaymentNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	normalized, err := schedule.NormalizePayment(*payment)
	if err != nil {
		return nil, customError.WrapInvalidRecurrencePattern(err)
	}

	return &normalized, nil
}

// ListPayments returns the full payment set, renormalized as a batch.
func (s *PaymentService) ListPayments(ctx context.Context) ([]*domain.Payment, error) {
	stored, err := s.Repo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	payments := make([]domain.Payment, 0, len(stored))
	for _, p := range stored {
		payments = append(payments, *p)
	}

	normalized, err := schedule.NormalizeAll(payments)
	if err != nil {
		return nil, customError.WrapInvalidRecurrencePattern(err)
	}

	result := make([]*domain.Payment, 0, len(normalized))
	for i := range normalized {
		result = append(result, &normalized[i])
	}
	return result, nil
}

func (s *PaymentService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapPaymentNotFound(id.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if s.redis != nil {
		s.redis.Del(ctx, nextDueCacheKey(id))
	}
	return nil
}

// GetNextDueDate answers the due-date lookup the summary and reminder
// consumers hit constantly, via cache when possible.
func (s *PaymentService) GetNextDueDate(ctx context.Context, id uuid.UUID) (domain.Date, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, nextDueCacheKey(id)).Result(); err == nil {
			if due, err := domain.ParseDate(cached); err == nil {
				return due, nil
			}
		}
	}

	payment, err := s.GetPayment(ctx, id)
	if err != nil {
		return domain.Date{}, err
	}

	s.cacheNextDue(ctx, payment)
	return payment.NextDueDate, nil
}

// ReminderDates resolves a payment's reminder specs against its next due date.
func (s *PaymentService) ReminderDates(ctx context.Context, id uuid.UUID) ([]domain.Date, error) {
	payment, err := s.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	return schedule.ResolveReminders(payment.NextDueDate, payment.Reminders), nil
}

// DueReminders returns every reminder that should fire on the given date.
func (s *PaymentService) DueReminders(ctx context.Context, on domain.Date) ([]domain.ReminderDispatch, error) {
	payments, err := s.ListPayments(ctx)
	if err != nil {
		return nil, err
	}

	var dispatches []domain.ReminderDispatch
	for _, payment := range payments {
		for _, trigger := range schedule.ResolveReminders(payment.NextDueDate, payment.Reminders) {
			if trigger.Equal(on) {
				dispatches = append(dispatches, domain.ReminderDispatch{
					PaymentID:   payment.ID,
					PaymentName: payment.Name,
					DueDate:     payment.NextDueDate,
					TriggerDate: trigger,
				})
			}
		}
	}

	return dispatches, nil
}

func (s *PaymentService) cacheNextDue(ctx context.Context, payment *domain.Payment) {
	if s.redis == nil {
		return
	}
	// Cache failures are invisible to callers; the repository stays the
	// source of truth.
	s.redis.Set(ctx, nextDueCacheKey(payment.ID), payment.NextDueDate.String(), nextDueCacheTTL)
}

func nextDueCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("payment:next-due:%s", id)
}

func reminderSetFromRequest(reminders []domain.ReminderRequest) domain.ReminderSet {
	set := domain.NewReminderSet()
	for _, r := range reminders {
		set.Add(domain.ReminderSpec{Kind: domain.ReminderKind(r.Kind), Days: r.Days})
	}
	return set
}
