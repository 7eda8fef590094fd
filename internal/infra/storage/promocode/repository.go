package promocode

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/velmor/VCS-ConsultationService/internal/domain"
	"github.com/velmor/VCS-ConsultationService/pkg/dbmetrics"
	"github.com/velmor/VCS-ConsultationService/pkg/psqlbuilder"
)

const uniqueViolationCode = "23505"

var promoCodeColumns = []string{
	"id",
	"code",
	"discount_type",
	"value",
	"usage_limit",
	"usage_count",
	"min_purchase",
	"max_discount",
	"starts_at",
	"expires_at",
	"enabled",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с промокодами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория промокодов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый промокод
// Код хранится в верхнем регистре, уникальность обеспечивается индексом БД
func (r *Repository) Create(ctx context.Context, code *domain.PromoCode) (*domain.PromoCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("promo_codes").
		Columns(
			"code",
			"discount_type",
			"value",
			"usage_limit",
			"usage_count",
			"min_purchase",
			"max_discount",
			"starts_at",
			"expires_at",
			"enabled",
		).
		Values(
			code.Code,
			code.Type,
			code.Value,
			code.UsageLimit,
			code.UsageCount,
			code.MinPurchase,
			code.MaxDiscount,
			code.StartsAt,
			code.ExpiresAt,
			code.Enabled,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&code.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	code.CreatedAt = createdAt.Time
	code.UpdatedAt = updatedAt.Time

	return code, nil
}

// GetByCode получает промокод по коду (регистронезависимо)
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(promoCodeColumns...).
		From("promo_codes").
		Where(squirrel.Expr("UPPER(code) = UPPER(?)", code)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	promo, err := r.scanPromoCode(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPromoCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan promo code: %v", ErrScanRow, err)
	}

	return promo, nil
}

// List возвращает все промокоды, отсортированные по дате создания (сначала новые)
func (r *Repository) List(ctx context.Context) ([]*domain.PromoCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(promoCodeColumns...).
		From("promo_codes").
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	codes := make([]*domain.PromoCode, 0)
	for rows.Next() {
		promo, err := r.scanPromoCode(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		codes = append(codes, promo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return codes, nil
}

// Update обновляет параметры промокода (кроме кода и счетчика использований)
func (r *Repository) Update(ctx context.Context, code *domain.PromoCode) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("promo_codes").
		Set("discount_type", code.Type).
		Set("value", code.Value).
		Set("usage_limit", code.UsageLimit).
		Set("min_purchase", code.MinPurchase).
		Set("max_discount", code.MaxDiscount).
		Set("starts_at", code.StartsAt).
		Set("expires_at", code.ExpiresAt).
		Set("enabled", code.Enabled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Expr("UPPER(code) = UPPER(?)", code.Code)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPromoCodeNotFound
	}

	return nil
}

// Delete удаляет промокод
func (r *Repository) Delete(ctx context.Context, code string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("promo_codes").
		Where(squirrel.Expr("UPPER(code) = UPPER(?)", code)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPromoCodeNotFound
	}

	return nil
}

// IncrementUsage списывает одно использование промокода
// Проверка лимита и инкремент выполняются одним условным UPDATE,
// поэтому конкурентные списания не могут превысить usage_limit
// (read-modify-write здесь недопустим)
func (r *Repository) IncrementUsage(ctx context.Context, code string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("promo_codes").
		Set("usage_count", squirrel.Expr("usage_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Expr("UPPER(code) = UPPER(?)", code)).
		Where(squirrel.Expr("(usage_limit IS NULL OR usage_count < usage_limit)")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Ноль строк: либо кода нет, либо guard по лимиту не прошел
		if _, err := r.GetByCode(ctx, code); err != nil {
			return err
		}
		return ErrUsageLimitReached
	}

	return nil
}

// ReleaseUsage возвращает одно использование промокода
// Компенсация для случая, когда внешнее резервирование не удалось
// после успешного списания
func (r *Repository) ReleaseUsage(ctx context.Context, code string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("promo_codes").
		Set("usage_count", squirrel.Expr("usage_count - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Expr("UPPER(code) = UPPER(?)", code)).
		Where(squirrel.Gt{"usage_count": 0}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReleaseUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReleaseUsage - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReleaseUsage - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPromoCodeNotFound
	}

	return nil
}

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanPromoCode(row scanner) (*domain.PromoCode, error) {
	var promo domain.PromoCode
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&promo.ID,
		&promo.Code,
		&promo.Type,
		&promo.Value,
		&promo.UsageLimit,
		&promo.UsageCount,
		&promo.MinPurchase,
		&promo.MaxDiscount,
		&promo.StartsAt,
		&promo.ExpiresAt,
		&promo.Enabled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	promo.CreatedAt = createdAt.Time
	promo.UpdatedAt = updatedAt.Time

	return &promo, nil
}
