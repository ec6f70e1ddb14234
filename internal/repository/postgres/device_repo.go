package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hearbill/internal/domain"
	"hearbill/internal/port"
)

type deviceRepo struct {
	db *sqlx.DB
}

// NewDeviceRepo creates a new PostgreSQL-backed DeviceRepository.
func NewDeviceRepo(db *sqlx.DB) port.DeviceRepository {
	return &deviceRepo{db: db}
}

func (r *deviceRepo) Create(ctx context.Context, device *domain.Device) error {
	device.ID = uuid.New()
	now := time.Now().UTC()
	device.CreatedAt = now
	device.UpdatedAt = now
	if device.Status == "" {
		device.Status = domain.DeviceAvailable
	}

	query := `INSERT INTO devices (id, brand, model, serial_number, hsn_code, gst_rate_percent,
		unit_price, location, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		device.ID, device.Brand, device.Model, device.SerialNumber, device.HSNCode,
		device.GSTRatePercent, device.UnitPrice, device.Location, device.Status,
		device.CreatedAt, device.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateSerial
		}
		return fmt.Errorf("deviceRepo.Create: %w", err)
	}
	return nil
}

func (r *deviceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Device, error) {
	var device domain.Device
	err := r.db.GetContext(ctx, &device, "SELECT * FROM devices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("deviceRepo.GetByID: %w", err)
	}
	return &device, nil
}

func (r *deviceRepo) GetBySerial(ctx context.Context, serial string) (*domain.Device, error) {
	var device domain.Device
	err := r.db.GetContext(ctx, &device, "SELECT * FROM devices WHERE serial_number = $1", serial)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("deviceRepo.GetBySerial: %w", err)
	}
	return &device, nil
}

func (r *deviceRepo) List(ctx context.Context, status domain.DeviceStatus, location string, offset, limit int) ([]domain.Device, int, error) {
	conds := []string{}
	args := []interface{}{}
	if status != "" {
		args = append(args, status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if location != "" {
		args = append(args, location)
		conds = append(conds, fmt.Sprintf("location = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM devices "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("deviceRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM devices %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var devices []domain.Device
	err = r.db.SelectContext(ctx, &devices, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("deviceRepo.List: %w", err)
	}
	return devices, total, nil
}

func (r *deviceRepo) Update(ctx context.Context, device *domain.Device) error {
	device.UpdatedAt = time.Now().UTC()
	query := `UPDATE devices SET brand = $1, model = $2, serial_number = $3, hsn_code = $4,
		gst_rate_percent = $5, unit_price = $6, location = $7, updated_at = $8 WHERE id = $9`
	result, err := r.db.ExecContext(ctx, query,
		device.Brand, device.Model, device.SerialNumber, device.HSNCode,
		device.GSTRatePercent, device.UnitPrice, device.Location, device.UpdatedAt, device.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateSerial
		}
		return fmt.Errorf("deviceRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus is a compare-and-set on the device status so two concurrent
// sales or bookings cannot both claim the same unit.
func (r *deviceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.DeviceStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE devices SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3",
		to, id, from)
	if err != nil {
		return fmt.Errorf("deviceRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		var exists bool
		if err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM devices WHERE id = $1)", id); err == nil && !exists {
			return domain.ErrNotFound
		}
		return domain.ErrDeviceUnavailable
	}
	return nil
}

func (r *deviceRepo) SetLocation(ctx context.Context, id uuid.UUID, location string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE devices SET location = $1, updated_at = NOW() WHERE id = $2", location, id)
	if err != nil {
		return fmt.Errorf("deviceRepo.SetLocation: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *deviceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM devices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deviceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *deviceRepo) CountByStatus(ctx context.Context) (map[domain.DeviceStatus]int, error) {
	rows, err := r.db.QueryxContext(ctx, "SELECT status, COUNT(*) AS n FROM devices GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("deviceRepo.CountByStatus: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.DeviceStatus]int)
	for rows.Next() {
		var status domain.DeviceStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("deviceRepo.CountByStatus scan: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
