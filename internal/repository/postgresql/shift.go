package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rotaworks/rota-backend-go/internal/domain/shift"
	"github.com/rotaworks/rota-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `
	s.id, s.title, s.role, s.type_of_shift, s.user_id, s.location_id,
	s.date, s.start_time, s.finish_time, s.num_of_shifts_per_day,
	s.status, s.clock_in_time, s.clock_out_time, s.created_at, s.updated_at,
	u.name AS worker_name, u.email AS worker_email, u.role AS worker_role,
	l.name AS location_name, l.address AS location_address, l.post_code AS location_post_code,
	l.distance AS location_distance, l.constituency AS location_constituency,
	l.admin_district AS location_admin_district`

const shiftJoins = `
	FROM shifts s
	LEFT JOIN users u ON u.id = s.user_id
	LEFT JOIN locations l ON l.id = s.location_id`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	var types []string

	err := row.Scan(
		&s.ID, &s.Title, &s.Role, &types, &s.UserID, &s.LocationID,
		&s.Date, &s.StartTime, &s.FinishTime, &s.NumOfShiftsPerDay,
		&s.Status, &s.ClockInTime, &s.ClockOutTime, &s.CreatedAt, &s.UpdatedAt,
		&s.WorkerName, &s.WorkerEmail, &s.WorkerRole,
		&s.LocationName, &s.LocationAddress, &s.LocationPostCode,
		&s.LocationDistance, &s.LocationConstituency, &s.LocationAdminDistrict,
	)
	if err != nil {
		return shift.Shift{}, err
	}

	s.TypeOfShift = make([]shift.ShiftType, 0, len(types))
	for _, t := range types {
		s.TypeOfShift = append(s.TypeOfShift, shift.ShiftType(t))
	}

	return s, nil
}

func shiftTypesToStrings(types []shift.ShiftType) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, newShift shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	if newShift.ID == "" {
		newShift.ID = uuid.New().String()
	}

	query := `
		INSERT INTO shifts (
			id, title, role, type_of_shift, user_id, location_id,
			date, start_time, finish_time, num_of_shifts_per_day, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newShift.ID,
		newShift.Title,
		newShift.Role,
		shiftTypesToStrings(newShift.TypeOfShift),
		newShift.UserID,
		newShift.LocationID,
		newShift.Date,
		newShift.StartTime,
		newShift.FinishTime,
		newShift.NumOfShiftsPerDay,
		newShift.Status,
	).Scan(&newShift.CreatedAt, &newShift.UpdatedAt)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return newShift, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + shiftColumns + shiftJoins + `
	WHERE s.id = $1`

	found, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift by id: %w", err)
	}

	return found, nil
}

// Update implements shift.ShiftRepository. The row is only touched while
// it is still Scheduled so a concurrent clock-in or cancellation wins.
func (r *shiftRepositoryImpl) Update(ctx context.Context, updated shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET title = $1, role = $2, type_of_shift = $3, user_id = $4, location_id = $5,
			date = $6, start_time = $7, finish_time = $8, num_of_shifts_per_day = $9,
			updated_at = NOW()
		WHERE id = $10 AND status = $11
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		updated.Title,
		updated.Role,
		shiftTypesToStrings(updated.TypeOfShift),
		updated.UserID,
		updated.LocationID,
		updated.Date,
		updated.StartTime,
		updated.FinishTime,
		updated.NumOfShiftsPerDay,
		updated.ID,
		shift.StatusScheduled,
	).Scan(&updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrStatusConflict
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return updated, nil
}

// Delete implements shift.ShiftRepository. Deletion is allowed in any
// status.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM shifts
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// MarkCancelled implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) MarkCancelled(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`
	commandTag, err := q.Exec(ctx, query, shift.StatusCancelled, id, shift.StatusScheduled)
	if err != nil {
		return fmt.Errorf("failed to cancel shift: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrStatusConflict
	}
	return nil
}

// MarkClockedIn implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) MarkClockedIn(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET status = $1, clock_in_time = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`
	commandTag, err := q.Exec(ctx, query, shift.StatusInProgress, at, id, shift.StatusScheduled)
	if err != nil {
		return fmt.Errorf("failed to clock in shift: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrStatusConflict
	}
	return nil
}

// MarkClockedOut implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) MarkClockedOut(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET status = $1, clock_out_time = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`
	commandTag, err := q.Exec(ctx, query, shift.StatusCompleted, at, id, shift.StatusInProgress)
	if err != nil {
		return fmt.Errorf("failed to clock out shift: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrStatusConflict
	}
	return nil
}

// ListByDateRange implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListByDateRange(ctx context.Context, from, to time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + shiftColumns + shiftJoins + `
	WHERE s.date >= $1 AND s.date <= $2
	ORDER BY s.date ASC, s.start_time ASC`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts by date range: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	return shifts, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.Shift, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND s.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND s.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*) FROM shifts s WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shifts: %w", err)
	}

	// Build ORDER BY
	orderByField := "s.date"
	switch filter.SortBy {
	case "startTime":
		orderByField = "s.start_time"
	case "finishTime":
		orderByField = "s.finish_time"
	case "title":
		orderByField = "s.title"
	case "role":
		orderByField = "s.role"
	case "status":
		orderByField = "s.status"
	case "createdAt":
		orderByField = "s.created_at"
	case "updatedAt":
		orderByField = "s.updated_at"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	// Build query with pagination
	selectQuery := fmt.Sprintf(`SELECT%s%s
	WHERE %s
	ORDER BY %s %s
	LIMIT $%d OFFSET $%d`, shiftColumns, shiftJoins, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 10
	}
	args = append(args, limit, filter.Offset())

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	return shifts, total, nil
}
