package place

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/candilib/DTE-BookingService/internal/domain"
	"github.com/candilib/DTE-BookingService/pkg/dbmetrics"
	"github.com/candilib/DTE-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с местами экзаменов
// Колонка inspecteur намеренно отсутствует во всех выборках:
// данные экзаменатора не покидают хранилище
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мест
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var placeColumns = []string{
	"id",
	"centre_id",
	"date",
	"booked_by",
	"created_at",
	"updated_at",
}

// FindAvailableByCentre получает свободные места центра в диапазоне дат
// end == nil означает отсутствие верхней границы
func (r *Repository) FindAvailableByCentre(ctx context.Context, centreID int64, begin time.Time, end *time.Time) ([]*domain.Place, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(placeColumns...).
		From("places").
		Where(squirrel.Eq{"centre_id": centreID}).
		Where(squirrel.Eq{"booked_by": nil}).
		Where(squirrel.GtOrEq{"date": begin}).
		OrderBy("date ASC")

	if end != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *end})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindAvailableByCentre - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindAvailableByCentre - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanPlaces(rows)
}

// FindByCentreAndDate получает свободные места центра на один календарный день
func (r *Repository) FindByCentreAndDate(ctx context.Context, centreID int64, day time.Time) ([]*domain.Place, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := domain.StartOfDay(day)
	nextDay := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select(placeColumns...).
		From("places").
		Where(squirrel.Eq{"centre_id": centreID}).
		Where(squirrel.Eq{"booked_by": nil}).
		Where(squirrel.GtOrEq{"date": dayStart}).
		Where(squirrel.Lt{"date": nextDay}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByCentreAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByCentreAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanPlaces(rows)
}

// FindBookedByCandidat получает текущую бронь кандидата вместе с центром
func (r *Repository) FindBookedByCandidat(ctx context.Context, candidatID int64) (*domain.BookedPlace, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"p.id",
		"p.centre_id",
		"p.date",
		"p.booked_by",
		"p.created_at",
		"p.updated_at",
		"c.id",
		"c.nom",
		"c.departement",
		"c.adresse",
		"c.active",
	).
		From("places p").
		Join("centres c ON c.id = p.centre_id").
		Where(squirrel.Eq{"p.booked_by": candidatID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindBookedByCandidat - build select query: %v", ErrBuildQuery, err)
	}

	var booked domain.BookedPlace
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booked.ID,
		&booked.CentreID,
		&booked.Date,
		&booked.BookedBy,
		&createdAt,
		&updatedAt,
		&booked.Centre.ID,
		&booked.Centre.Nom,
		&booked.Centre.Departement,
		&booked.Centre.Adresse,
		&booked.Centre.Active,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindBookedByCandidat - scan place: %v", ErrScanRow, err)
	}

	booked.CreatedAt = createdAt.Time
	booked.UpdatedAt = updatedAt.Time

	return &booked, nil
}

// ConditionalAssign атомарно находит одно свободное место на центр и дату
// и закрепляет его за кандидатом. Условие booked_by IS NULL входит в сам
// UPDATE: два конкурентных запроса не могут забронировать одно место.
// Если свободных мест нет - ErrPlaceAlreadyBooked
func (r *Repository) ConditionalAssign(ctx context.Context, centreID int64, date time.Time, candidatID int64) (*domain.Place, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("places").
		Set("booked_by", candidatID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Expr(
			`id = (SELECT id FROM places
			       WHERE centre_id = ? AND date = ? AND booked_by IS NULL
			       ORDER BY id
			       LIMIT 1
			       FOR UPDATE SKIP LOCKED)`,
			centreID, date,
		)).
		Suffix("RETURNING id, centre_id, date, booked_by, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ConditionalAssign - build update query: %v", ErrBuildQuery, err)
	}

	var place domain.Place
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&place.ID,
		&place.CentreID,
		&place.Date,
		&place.BookedBy,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlaceAlreadyBooked
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ConditionalAssign - execute update: %v", ErrExecQuery, err)
	}

	place.CreatedAt = createdAt.Time
	place.UpdatedAt = updatedAt.Time

	return &place, nil
}

// Release снимает бронь с места. Выполняется безусловно: провал
// последующих шагов (например уведомления) не откатывает освобождение
func (r *Repository) Release(ctx context.Context, placeID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("places").
		Set("booked_by", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": placeID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPlaceNotFound
	}

	return nil
}

// scanPlaces сканирует результаты запроса в слайс мест
func (r *Repository) scanPlaces(rows *sql.Rows) ([]*domain.Place, error) {
	places := make([]*domain.Place, 0)

	for rows.Next() {
		var place domain.Place
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&place.ID,
			&place.CentreID,
			&place.Date,
			&place.BookedBy,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanPlaces - scan row: %v", ErrScanRow, err)
		}

		place.CreatedAt = createdAt.Time
		place.UpdatedAt = updatedAt.Time

		places = append(places, &place)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPlaces - rows error: %v", ErrScanRow, err)
	}

	return places, nil
}
