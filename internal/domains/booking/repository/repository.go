package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks -mock_names Booking=MockRepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"tably/infras/otel"
	"tably/infras/postgres"
	"tably/internal/domains/booking/model"
	"tably/shared/constant"
	gDto "tably/shared/dto"
	"tably/shared/failure"
	"tably/shared/logger"
	gRepo "tably/shared/repository"
	"tably/shared/timezone"
)

const lockableColumns = "id, restaurant_id, guest_name, guest_email, guest_phone, party_size, " +
	"booking_time, turn_time_minutes, status, request_expires_at, confirmation_code, notes, " +
	"created_by, modified_by"

// TransitionParams drives a status change that also rewrites the booking's
// table assignments, all inside one transaction.
type TransitionParams struct {
	BookingID string
	From      model.Status
	To        model.Status
	// TableIDs replace the current assignment set when KeepAssignments is false.
	TableIDs        []string
	KeepAssignments bool
	// Force skips the in-transaction conflict re-check; the conditional
	// status update still applies.
	Force   bool
	History model.StatusHistory
}

// TransitionOutcome reports what the transaction decided. Exactly one of
// Updated, CurrentStatus-mismatch, or Conflicts explains a non-update.
type TransitionOutcome struct {
	Updated       bool
	Found         bool
	CurrentStatus model.Status
	Conflicts     []model.Conflict
}

type Booking interface {
	Create(ctx context.Context, booking model.Booking, history model.StatusHistory) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	CodeExists(ctx context.Context, restaurantID, code string) (bool, error)
	GetActiveBetween(ctx context.Context, restaurantID string, from, to time.Time, excludeID string) ([]model.Booking, error)
	TransitionStatus(ctx context.Context, bookingID string, from, to model.Status, history model.StatusHistory) (bool, error)
	TransitionWithAssignments(ctx context.Context, params TransitionParams) (TransitionOutcome, error)
	AppendHistory(ctx context.Context, history model.StatusHistory) error
	ListExpired(ctx context.Context, restaurantID string, now time.Time) ([]model.Booking, error)
	ListRestaurantIDsWithExpired(ctx context.Context, now time.Time) ([]string, error)
	ListHistory(ctx context.Context, bookingID string) ([]model.StatusHistory, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	assignments gRepo.Repository[model.TableAssignment]
	history     gRepo.Repository[model.StatusHistory]
	db          *postgres.Connection
	otel        otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository:  gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		assignments: gRepo.NewRepository[model.TableAssignment]("table_assignment", model.AssignmentTableName, "booking_id", db, otel),
		history:     gRepo.NewRepository[model.StatusHistory]("status_history", model.HistoryTableName, "id", db, otel),
		db:          db,
		otel:        otel,
	}
}

// Create writes the booking, its assignment rows, and the initial history
// entry in one transaction. When the booking claims tables, the conflict scan
// runs again inside this transaction under an advisory lock on the restaurant:
// two concurrent creates for the same window cannot see each other's
// uncommitted rows, so the locks alone cannot order them.
func (repo *repositoryImpl) Create(ctx context.Context, booking model.Booking, history model.StatusHistory) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if len(booking.TableIDs) > 0 && booking.Status.Occupying() {
		if _, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", booking.RestaurantID); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to lock restaurant for create: %w", err)
		}

		var conflicts []model.Conflict

		conflicts, err = repo.lockedConflicts(ctx, tx, booking, booking.TableIDs)
		if err != nil {
			return err
		}

		if len(conflicts) > 0 {
			err = failure.Conflict("requested tables are already booked for this window")

			return err //nolint:wrapcheck
		}
	}

	if err = repo.InsertTx(ctx, tx, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	if len(booking.TableIDs) > 0 {
		if err = repo.insertAssignments(ctx, tx, booking.ID, booking.TableIDs); err != nil {
			return err
		}
	}

	if err = repo.history.InsertTx(ctx, tx, history); err != nil {
		return fmt.Errorf("failed to insert booking history: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) CodeExists(ctx context.Context, restaurantID, code string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CodeExists")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRestaurantID, Operator: gDto.FilterOperatorEq, Value: restaurantID, Table: model.TableName},
			gDto.Filter{Field: model.FieldConfirmationCode, Operator: gDto.FilterOperatorEq, Value: code, Table: model.TableName},
		},
	}

	return repo.Exist(ctx, filter) //nolint:wrapcheck
}

// GetActiveBetween returns non-terminal bookings of the restaurant whose
// start time falls inside [from, to). Callers own the overlap decision.
func (repo *repositoryImpl) GetActiveBetween(ctx context.Context, restaurantID string, from, to time.Time, excludeID string) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetActiveBetween")
	defer scope.End()

	filters := []any{
		gDto.Filter{Field: model.FieldRestaurantID, Operator: gDto.FilterOperatorEq, Value: restaurantID, Table: model.TableName},
		gDto.Filter{Field: model.FieldStatus, ArgName: "statuses", Operator: gDto.FilterOperatorIn, Value: []string{string(model.StatusPending), string(model.StatusConfirmed)}, Table: model.TableName},
		gDto.Filter{Field: model.FieldBookingTime, ArgName: "window_from", Operator: gDto.FilterOperatorGreaterEq, Value: from, Table: model.TableName},
		gDto.Filter{Field: model.FieldBookingTime, ArgName: "window_to", Operator: gDto.FilterOperatorLessEq, Value: to, Table: model.TableName},
	}

	if excludeID != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldID, ArgName: "exclude_id", Operator: gDto.FilterOperatorNotEq, Value: excludeID, Table: model.TableName})
	}

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldBookingTime, SortDir: gDto.SortDirAsc}

	return repo.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// TransitionStatus moves the booking from one status to another only if it
// still holds the expected status, and appends the history row in the same
// transaction. The conditional update makes concurrent transitions settle
// with exactly one winner.
func (repo *repositoryImpl) TransitionStatus(ctx context.Context, bookingID string, from, to model.Status, history model.StatusHistory) (updated bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.TransitionStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	updated, err = repo.transitionTx(ctx, tx, bookingID, from, to, history.ChangedBy)
	if err != nil {
		return false, err
	}

	if !updated {
		_ = tx.Rollback()

		return false, nil
	}

	if err = repo.history.InsertTx(ctx, tx, history); err != nil {
		return false, fmt.Errorf("failed to insert booking history: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transition: %w", err)
	}

	return true, nil
}

// TransitionWithAssignments is the accept/reassign transaction. It locks the
// booking and every non-terminal booking sharing its window, re-checks table
// conflicts under those locks, performs the conditional status update, and
// rewrites the assignment rows. Any failure rolls the whole transition back.
func (repo *repositoryImpl) TransitionWithAssignments(ctx context.Context, params TransitionParams) (outcome TransitionOutcome, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.TransitionWithAssignments")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return outcome, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil || !outcome.Updated {
			_ = tx.Rollback()
		}
	}()

	target, found, err := repo.lockBooking(ctx, tx, params.BookingID)
	if err != nil {
		return outcome, err
	}

	if !found {
		return TransitionOutcome{Found: false}, nil
	}

	outcome.Found = true
	outcome.CurrentStatus = target.Status

	if target.Status != params.From {
		return outcome, nil
	}

	if !params.Force {
		conflicts, err := repo.lockedConflicts(ctx, tx, target, params.TableIDs)
		if err != nil {
			return outcome, err
		}

		if len(conflicts) > 0 {
			outcome.Conflicts = conflicts

			return outcome, nil
		}
	}

	updated, err := repo.transitionTx(ctx, tx, params.BookingID, params.From, params.To, params.History.ChangedBy)
	if err != nil {
		return outcome, err
	}

	if !updated {
		// Lost the row between lock and update; treat as a state race.
		return outcome, nil
	}

	if !params.KeepAssignments {
		deleteFilter := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: "booking_id", Operator: gDto.FilterOperatorEq, Value: params.BookingID, Table: model.AssignmentTableName},
			},
		}

		if err = repo.assignments.DeleteTx(ctx, tx, deleteFilter); err != nil {
			return outcome, fmt.Errorf("failed to clear table assignments: %w", err)
		}

		if len(params.TableIDs) > 0 {
			if err = repo.insertAssignments(ctx, tx, params.BookingID, params.TableIDs); err != nil {
				return outcome, err
			}
		}
	}

	if err = repo.history.InsertTx(ctx, tx, params.History); err != nil {
		return outcome, fmt.Errorf("failed to insert booking history: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return outcome, fmt.Errorf("failed to commit transition: %w", err)
	}

	outcome.Updated = true

	return outcome, nil
}

func (repo *repositoryImpl) ListExpired(ctx context.Context, restaurantID string, now time.Time) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListExpired")
	defer scope.End()

	filters := []any{
		gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: string(model.StatusPending), Table: model.TableName},
		gDto.Filter{Field: model.FieldRequestExpiresAt, Operator: gDto.FilterIsNotNull, Table: model.TableName},
		gDto.Filter{Field: model.FieldRequestExpiresAt, ArgName: "expires_before", Operator: gDto.FilterOperatorLessEq, Value: now, Table: model.TableName},
	}

	if restaurantID != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldRestaurantID, Operator: gDto.FilterOperatorEq, Value: restaurantID, Table: model.TableName})
	}

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldRequestExpiresAt, SortDir: gDto.SortDirAsc}

	return repo.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) ListRestaurantIDsWithExpired(ctx context.Context, now time.Time) (ids []string, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListRestaurantIDsWithExpired")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"SELECT DISTINCT restaurant_id FROM %s WHERE status = $1 AND request_expires_at IS NOT NULL AND request_expires_at <= $2",
		model.TableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &ids, query, string(model.StatusPending), now)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list restaurants with expired requests: %w", err)
	}

	return ids, nil
}

// AppendHistory writes an audit row that is not part of a status transition,
// such as an accept attempt refused during revalidation. The booking row
// itself stays untouched.
func (repo *repositoryImpl) AppendHistory(ctx context.Context, history model.StatusHistory) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.AppendHistory")
	defer scope.End()

	return repo.history.Insert(ctx, history) //nolint:wrapcheck
}

func (repo *repositoryImpl) ListHistory(ctx context.Context, bookingID string) ([]model.StatusHistory, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListHistory")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: "booking_id", Operator: gDto.FilterOperatorEq, Value: bookingID, Table: model.HistoryTableName},
		},
	}

	params := gDto.QueryParams{SortBy: model.HistoryTableName + ".changed_at", SortDir: gDto.SortDirAsc}

	return repo.history.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) insertAssignments(ctx context.Context, tx *sqlx.Tx, bookingID string, tableIDs []string) error {
	rows := make([]model.TableAssignment, len(tableIDs))
	for i, tableID := range tableIDs {
		rows[i] = model.TableAssignment{
			BookingID: bookingID,
			TableID:   tableID,
			Position:  i,
			CreatedAt: timezone.Now(),
		}
	}

	if err := repo.assignments.InsertBulkTx(ctx, tx, rows); err != nil {
		return fmt.Errorf("failed to insert table assignments: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) lockBooking(ctx context.Context, tx *sqlx.Tx, bookingID string) (booking model.Booking, found bool, err error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 FOR UPDATE", lockableColumns, model.TableName)

	err = tx.GetContext(ctx, &booking, query, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking, false, nil
		}

		logger.ErrorWithStack(err)

		return booking, false, fmt.Errorf("failed to lock booking: %w", err)
	}

	return booking, true, nil
}

// lockedConflicts locks every non-terminal booking that could dispute the
// target's window and reports those actually occupying one of the requested
// tables. Locking pending rows too means a concurrent accept blocks here and
// re-reads the winner's committed status.
func (repo *repositoryImpl) lockedConflicts(ctx context.Context, tx *sqlx.Tx, target model.Booking, tableIDs []string) ([]model.Conflict, error) {
	if len(tableIDs) == 0 {
		return nil, nil
	}

	// Widest window a competitor can occupy; keeps the lock set small.
	from := target.Start().Add(-24 * time.Hour)
	to := target.End()

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE restaurant_id = ? AND id != ? AND status IN (?) AND booking_time >= ? AND booking_time < ? ORDER BY id FOR UPDATE",
		lockableColumns, model.TableName,
	)

	query, args, err := sqlx.In(query, target.RestaurantID, target.ID,
		[]string{string(model.StatusPending), string(model.StatusConfirmed)}, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to build competitor lock query: %w", err)
	}

	var competitors []model.Booking

	err = tx.SelectContext(ctx, &competitors, tx.Rebind(query), args...)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to lock competing bookings: %w", err)
	}

	occupying := competitors[:0]
	for _, c := range competitors {
		if c.Status.Occupying() && model.Overlaps(target.Start(), target.End(), c.Start(), c.End()) {
			occupying = append(occupying, c)
		}
	}

	if len(occupying) == 0 {
		return nil, nil
	}

	assignments, err := repo.assignmentsFor(ctx, tx, occupying)
	if err != nil {
		return nil, err
	}

	requested := make(map[string]struct{}, len(tableIDs))
	for _, id := range tableIDs {
		requested[id] = struct{}{}
	}

	var conflicts []model.Conflict

	for _, c := range occupying {
		for _, a := range assignments[c.ID] {
			if _, ok := requested[a]; !ok {
				continue
			}

			conflicts = append(conflicts, model.Conflict{
				BookingID:   c.ID,
				TableID:     a,
				GuestName:   c.GuestName,
				PartySize:   c.PartySize,
				BookingTime: c.BookingTime,
				EndTime:     c.End(),
			})
		}
	}

	return conflicts, nil
}

func (repo *repositoryImpl) assignmentsFor(ctx context.Context, tx *sqlx.Tx, bookings []model.Booking) (map[string][]string, error) {
	ids := make([]string, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}

	query, args, err := sqlx.In(
		fmt.Sprintf("SELECT booking_id, table_id, position FROM %s WHERE booking_id IN (?) ORDER BY booking_id, position", model.AssignmentTableName),
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build assignment query: %w", err)
	}

	var rows []model.TableAssignment

	err = tx.SelectContext(ctx, &rows, tx.Rebind(query), args...)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to load table assignments: %w", err)
	}

	result := make(map[string][]string, len(bookings))
	for _, row := range rows {
		result[row.BookingID] = append(result[row.BookingID], row.TableID)
	}

	return result, nil
}

func (repo *repositoryImpl) transitionTx(ctx context.Context, tx *sqlx.Tx, bookingID string, from, to model.Status, actor string) (bool, error) {
	query := fmt.Sprintf(
		"UPDATE %s SET status = $1, modified_by = $2, modified_at = NOW(), request_expires_at = NULL WHERE id = $3 AND status = $4",
		model.TableName,
	)

	result, err := tx.ExecContext(ctx, query, string(to), actor, bookingID, string(from))
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to update booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected == 1, nil
}
