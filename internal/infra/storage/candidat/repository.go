package candidat

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

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с кандидатами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория кандидатов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var candidatColumns = []string{
	"id",
	"code_neph",
	"nom_naissance",
	"prenom",
	"email",
	"departement",
	"can_book_after",
	"date_reussite_etg",
	"nb_echecs_pratiques",
	"is_validated",
	"created_at",
	"updated_at",
}

// GetByID получает кандидата по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Candidat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(candidatColumns...).
		From("candidats").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanCandidat(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// FindByNephAndName получает кандидата по номеру NEPH и фамилии при рождении
// Используется синхронизацией Aurige
func (r *Repository) FindByNephAndName(ctx context.Context, codeNeph, nomNaissance string) (*domain.Candidat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(candidatColumns...).
		From("candidats").
		Where(squirrel.Eq{"code_neph": codeNeph}).
		Where(squirrel.Eq{"nom_naissance": nomNaissance}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByNephAndName - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanCandidat(executor.QueryRowContext(ctx, query, args...), "FindByNephAndName")
}

// UpdateCanBookAfter условно обновляет дату допуска кандидата.
// Запись выполняется только если новое значение строго позже текущего
// (или текущее отсутствует) - монотонный инвариант обеспечивается на
// уровне хранилища, без блокировок. Равное значение - no-op.
// Возвращает true, если запись произошла, false - если пропущена
func (r *Repository) UpdateCanBookAfter(ctx context.Context, id int64, canBookAfter time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("candidats").
		Set("can_book_after", canBookAfter).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Or{
			squirrel.Eq{"can_book_after": nil},
			squirrel.Lt{"can_book_after": canBookAfter},
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: UpdateCanBookAfter - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: UpdateCanBookAfter - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateCanBookAfter - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// MarkValidated помечает кандидата прошедшим проверку Aurige
func (r *Repository) MarkValidated(ctx context.Context, id int64, validated bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("candidats").
		Set("is_validated", validated).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkValidated - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkValidated - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkValidated - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCandidatNotFound
	}

	return nil
}

func (r *Repository) scanCandidat(row *sql.Row, op string) (*domain.Candidat, error) {
	var c domain.Candidat
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.CodeNeph,
		&c.NomNaissance,
		&c.Prenom,
		&c.Email,
		&c.Departement,
		&c.CanBookAfter,
		&c.DateReussiteETG,
		&c.NbEchecsPratiques,
		&c.IsValidated,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCandidatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan candidat: %v", ErrScanRow, op, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
