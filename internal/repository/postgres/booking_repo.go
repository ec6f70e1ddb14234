package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hearbill/internal/domain"
	"hearbill/internal/port"
)

type bookingRepo struct {
	db *sqlx.DB
}

// NewBookingRepo creates a new PostgreSQL-backed BookingRepository.
func NewBookingRepo(db *sqlx.DB) port.BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	booking.ID = uuid.New()
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if booking.Status == "" {
		booking.Status = domain.BookingPending
	}

	query := `INSERT INTO bookings (id, patient_id, patient_name, device_id, advance_amount,
		status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		booking.ID, booking.PatientID, booking.PatientName, booking.DeviceID,
		booking.AdvanceAmount, booking.Status, booking.Notes, booking.CreatedBy,
		booking.CreatedAt, booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("bookingRepo.Create: %w", err)
	}
	return nil
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.db.GetContext(ctx, &booking, "SELECT * FROM bookings WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("bookingRepo.GetByID: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepo) List(ctx context.Context, status domain.BookingStatus, offset, limit int) ([]domain.Booking, int, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = "WHERE status = $1"
		args = append(args, status)
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM bookings "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("bookingRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM bookings %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var bookings []domain.Booking
	err = r.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("bookingRepo.List: %w", err)
	}
	return bookings, total, nil
}

func (r *bookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	booking.UpdatedAt = time.Now().UTC()
	query := `UPDATE bookings SET advance_amount = $1, status = $2, notes = $3, updated_at = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		booking.AdvanceAmount, booking.Status, booking.Notes, booking.UpdatedAt, booking.ID)
	if err != nil {
		return fmt.Errorf("bookingRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
