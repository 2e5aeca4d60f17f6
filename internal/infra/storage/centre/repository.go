package centre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/candilib/DTE-BookingService/internal/domain"
	"github.com/candilib/DTE-BookingService/pkg/dbmetrics"
	"github.com/candilib/DTE-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с экзаменационными центрами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория центров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var centreColumns = []string{
	"id",
	"nom",
	"departement",
	"adresse",
	"active",
	"created_at",
	"updated_at",
}

// GetByID получает центр по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Centre, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(centreColumns...).
		From("centres").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanCentre(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// FindAllByName получает все центры с указанным именем, отсортированные по ID
// Имя центра уникально только внутри департамента, поэтому результатов
// может быть несколько - неоднозначность разрешает вызывающая сторона
func (r *Repository) FindAllByName(ctx context.Context, nom string) ([]*domain.Centre, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(centreColumns...).
		From("centres").
		Where(squirrel.Eq{"nom": nom}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindAllByName - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindAllByName - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	centres := make([]*domain.Centre, 0)
	for rows.Next() {
		var c domain.Centre
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&c.ID,
			&c.Nom,
			&c.Departement,
			&c.Adresse,
			&c.Active,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: FindAllByName - scan row: %v", ErrScanRow, err)
		}

		c.CreatedAt = createdAt.Time
		c.UpdatedAt = updatedAt.Time
		centres = append(centres, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindAllByName - rows error: %v", ErrScanRow, err)
	}

	return centres, nil
}

// FindByNameAndDepartement получает центр по имени внутри департамента
func (r *Repository) FindByNameAndDepartement(ctx context.Context, nom, departement string) (*domain.Centre, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(centreColumns...).
		From("centres").
		Where(squirrel.Eq{"nom": nom}).
		Where(squirrel.Eq{"departement": departement}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByNameAndDepartement - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanCentre(executor.QueryRowContext(ctx, query, args...), "FindByNameAndDepartement")
}

func (r *Repository) scanCentre(row *sql.Row, op string) (*domain.Centre, error) {
	var c domain.Centre
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.Nom,
		&c.Departement,
		&c.Adresse,
		&c.Active,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCentreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan centre: %v", ErrScanRow, op, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
