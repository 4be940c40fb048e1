package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/cresxjohn/qwik-sub001/internal/domain"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// paymentRow flattens the payment and its optional recurrence pattern onto
// one row. A NULL frequency means no pattern is attached.
type paymentRow struct {
	ID              uuid.UUID       `db:"id"`
	Name            string          `db:"name"`
	Amount          decimal.Decimal `db:"amount"`
	Category        string          `db:"category"`
	Recurring       bool            `db:"recurring"`
	LegacyFrequency sql.NullString  `db:"legacy_frequency"`
	Frequency       sql.NullString  `db:"frequency"`
	Interval        sql.NullInt64   `db:"recur_interval"`
	WeeklyDays      pq.Int64Array   `db:"weekly_days"`
	MonthlyType     sql.NullString  `db:"monthly_type"`
	MonthlyDay      sql.NullInt64   `db:"monthly_day"`
	MonthlyWeek     sql.NullInt64   `db:"monthly_week"`
	MonthlyWeekday  sql.NullInt64   `db:"monthly_weekday"`
	StartDate       time.Time       `db:"start_date"`
	EndDate         sql.NullTime    `db:"end_date"`
	LastPaymentDate sql.NullTime    `db:"last_payment_date"`
	NextDueDate     time.Time       `db:"next_due_date"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

type reminderRow struct {
	PaymentID uuid.UUID `db:"payment_id"`
	Kind      string    `db:"kind"`
	Days      int       `db:"days"`
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, name, amount, category, recurring, legacy_frequency,
			frequency, recur_interval, weekly_days, monthly_type, monthly_day, monthly_week, monthly_weekday,
			start_date, end_date, last_payment_date, next_due_date, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	row := toRow(payment)
	_, err = tx.ExecContext(ctx, query,
		row.ID, row.Name, row.Amount, row.Category, row.Recurring, row.LegacyFrequency,
		row.Frequency, row.Interval, row.WeeklyDays, row.MonthlyType, row.MonthlyDay, row.MonthlyWeek, row.MonthlyWeekday,
		row.StartDate, row.EndDate, row.LastPaymentDate, row.NextDueDate, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if err = insertReminders(ctx, tx, payment); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `
		SELECT id, name, amount, category, recurring, legacy_frequency,
		       frequency, recur_interval, weekly_days, monthly_type, monthly_day, monthly_week, monthly_weekday,
		       start_date, end_date, last_payment_date, next_due_date, created_at, updated_at
		FROM payments
		WHERE id = $1
	`

	var row paymentRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}

	payment := fromRow(&row)
	if err := r.loadReminders(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

func (r *paymentRepository) List(ctx context.Context) ([]*domain.Payment, error) {
	query := `
		SELECT id, name, amount, category, recurring, legacy_frequency,
		       frequency, recur_interval, weekly_days, monthly_type, monthly_day, monthly_week, monthly_weekday,
		       start_date, end_date, last_payment_date, next_due_date, created_at, updated_at
		FROM payments
		ORDER BY next_due_date, name
	`

	var rows []paymentRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	payments := make([]*domain.Payment, 0, len(rows))
	for i := range rows {
		payment := fromRow(&rows[i])
		if err := r.loadReminders(ctx, payment); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	return payments, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	query := `
		UPDATE payments
		SET name = $2, amount = $3, category = $4, recurring = $5, legacy_frequency = $6,
		    frequency = $7, recur_interval = $8, weekly_days = $9, monthly_type = $10,
		    monthly_day = $11, monthly_week = $12, monthly_weekday = $13,
		    start_date = $14, end_date = $15, last_payment_date = $16, next_due_date = $17,
		    updated_at = $18
		WHERE id = $1
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	row := toRow(payment)
	result, err := tx.ExecContext(ctx, query,
		row.ID, row.Name, row.Amount, row.Category, row.Recurring, row.LegacyFrequency,
		row.Frequency, row.Interval, row.WeeklyDays, row.MonthlyType,
		row.MonthlyDay, row.MonthlyWeek, row.MonthlyWeekday,
		row.StartDate, row.EndDate, row.LastPaymentDate, row.NextDueDate,
		time.Now(),
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM payment_reminders WHERE payment_id = $1`, payment.ID); err != nil {
		return err
	}
	if err = insertReminders(ctx, tx, payment); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM payment_reminders WHERE payment_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

func (r *paymentRepository) loadReminders(ctx context.Context, payment *domain.Payment) error {
	var rows []reminderRow
	query := `SELECT payment_id, kind, days FROM payment_reminders WHERE payment_id = $1`
	if err := r.db.SelectContext(ctx, &rows, query, payment.ID); err != nil {
		return err
	}

	payment.Reminders = domain.NewReminderSet()
	for _, row := range rows {
		payment.Reminders.Add(domain.ReminderSpec{Kind: domain.ReminderKind(row.Kind), Days: row.Days})
	}
	return nil
}

func insertReminders(ctx context.Context, tx *sqlx.Tx, payment *domain.Payment) error {
	query := `INSERT INTO payment_reminders (payment_id, kind, days) VALUES ($1, $2, $3)`
	for _, spec := range payment.Reminders.Specs() {
		if _, err := tx.ExecContext(ctx, query, payment.ID, string(spec.Kind), spec.Days); err != nil {
			return err
		}
	}
	return nil
}

func toRow(p *domain.Payment) *paymentRow {
	row := &paymentRow{
		ID:          p.ID,
		Name:        p.Name,
		Amount:      p.Amount,
		Category:    p.Category,
		Recurring:   p.Recurring,
		StartDate:   p.StartDate.Time,
		NextDueDate: p.NextDueDate.Time,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	if p.LegacyFrequency != "" {
		row.LegacyFrequency = sql.NullString{String: string(p.LegacyFrequency), Valid: true}
	}
	if !p.EndDate.IsEmpty() {
		row.EndDate = sql.NullTime{Time: p.EndDate.Time, Valid: true}
	}
	if !p.LastPaymentDate.IsEmpty() {
		row.LastPaymentDate = sql.NullTime{Time: p.LastPaymentDate.Time, Valid: true}
	}

	if rec := p.Recurrence; rec != nil {
		row.Frequency = sql.NullString{String: string(rec.Frequency), Valid: true}
		row.Interval = sql.NullInt64{Int64: int64(rec.Interval), Valid: true}
		for _, day := range rec.SortedWeeklyDays() {
			row.WeeklyDays = append(row.WeeklyDays, int64(day))
		}
		if rec.MonthlyType != "" {
			row.MonthlyType = sql.NullString{String: string(rec.MonthlyType), Valid: true}
			row.MonthlyDay = sql.NullInt64{Int64: int64(rec.MonthlyDay), Valid: true}
			row.MonthlyWeek = sql.NullInt64{Int64: int64(rec.MonthlyWeek), Valid: true}
			row.MonthlyWeekday = sql.NullInt64{Int64: int64(rec.MonthlyWeekday), Valid: true}
		}
	}

	return row
}

func fromRow(row *paymentRow) *domain.Payment {
	payment := &domain.Payment{
		ID:              row.ID,
		Name:            row.Name,
		Amount:          row.Amount,
		Category:        row.Category,
		Recurring:       row.Recurring,
		LegacyFrequency: domain.LegacyFrequency(row.LegacyFrequency.String),
		StartDate:       domain.DateOf(row.StartDate),
		NextDueDate:     domain.DateOf(row.NextDueDate),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}

	if row.EndDate.Valid {
		payment.EndDate = domain.DateOf(row.EndDate.Time)
	}
	if row.LastPaymentDate.Valid {
		payment.LastPaymentDate = domain.DateOf(row.LastPaymentDate.Time)
	}

	if row.Frequency.Valid {
		rec := &domain.RecurrencePattern{
			Frequency:      domain.Frequency(row.Frequency.String),
			Interval:       int(row.Interval.Int64),
			MonthlyType:    domain.MonthlyType(row.MonthlyType.String),
			MonthlyDay:     int(row.MonthlyDay.Int64),
			MonthlyWeek:    int(row.MonthlyWeek.Int64),
			MonthlyWeekday: int(row.MonthlyWeekday.Int64),
		}
		for _, day := range row.WeeklyDays {
			rec.WeeklyDays = append(rec.WeeklyDays, int(day))
		}
		payment.Recurrence = rec
	}

	return payment
}
