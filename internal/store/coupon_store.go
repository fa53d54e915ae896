package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"workshop-bridge/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const couponColumns = `id, name, code, discount_type, discount_value, max_discount_amount,
	min_order_amount, usage_limit, usage_limit_per_user, usage_count,
	start_date, end_date, is_active, created_at, updated_at`

// couponStore implements CouponStore using PostgreSQL.
type couponStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponStore creates a new PostgreSQL-backed coupon store.
func NewCouponStore(pool *pgxpool.Pool, logger zerolog.Logger) CouponStore {
	return &couponStore{
		pool:   pool,
		logger: logger.With().Str("store", "coupon").Logger(),
	}
}

// GetByCode retrieves a coupon by its code, uppercased before matching.
func (s *couponStore) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := fmt.Sprintf(`SELECT %s FROM coupons WHERE code = $1`, couponColumns)

	row := s.pool.QueryRow(ctx, query, strings.ToUpper(code))
	coupon, err := scanCoupon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug().Str("code", code).Msg("coupon not found")
			return nil, model.ErrCouponNotFound
		}
		s.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon by code")
		return nil, fmt.Errorf("failed to query coupon by code: %w", err)
	}

	return coupon, nil
}

// GetByID retrieves a coupon by its ID.
func (s *couponStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	query := fmt.Sprintf(`SELECT %s FROM coupons WHERE id = $1`, couponColumns)

	row := s.pool.QueryRow(ctx, query, id)
	coupon, err := scanCoupon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCouponNotFound
		}
		s.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return coupon, nil
}

// List retrieves coupons newest first, narrowed by the filter.
func (s *couponStore) List(ctx context.Context, filter model.CouponFilter) ([]model.Coupon, error) {
	query := fmt.Sprintf(`SELECT %s FROM coupons`, couponColumns)

	var conditions []string
	if filter.ActiveOnly {
		conditions = append(conditions,
			`is_active = true`,
			`start_date <= now()`,
			`(end_date IS NULL OR end_date > now())`,
		)
	}
	if filter.ExpiredOnly {
		conditions = append(conditions, `end_date < now()`)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query coupons")
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, *coupon)
	}

	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating coupon rows")
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, nil
}

// Create inserts a new coupon and returns the stored row. The code is
// stored uppercased.
func (s *couponStore) Create(ctx context.Context, c *model.Coupon) (*model.Coupon, error) {
	query := fmt.Sprintf(`
		INSERT INTO coupons (id, name, code, discount_type, discount_value,
			max_discount_amount, min_order_amount, usage_limit,
			usage_limit_per_user, usage_count, start_date, end_date, is_active,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())
		RETURNING %s`, couponColumns)

	row := s.pool.QueryRow(ctx, query,
		c.ID,
		c.Name,
		strings.ToUpper(c.Code),
		c.DiscountType,
		c.DiscountValue,
		c.MaxDiscountAmount,
		c.MinOrderAmount,
		c.UsageLimit,
		c.UsageLimitPerUser,
		c.UsageCount,
		c.StartDate,
		c.EndDate,
		c.IsActive,
	)

	created, err := scanCoupon(row)
	if err != nil {
		s.logger.Error().Err(err).Str("code", c.Code).Msg("failed to create coupon")
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	s.logger.Info().Str("coupon_id", created.ID.String()).Str("code", created.Code).Msg("coupon created")

	return created, nil
}

// Update applies a partial update and returns the stored row. Only the
// fields set on the update are touched; the code is uppercased when
// changed.
func (s *couponStore) Update(ctx context.Context, id uuid.UUID, update *model.CouponUpdate) (*model.Coupon, error) {
	var (
		sets []string
		args []interface{}
	)

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		addSet("name", *update.Name)
	}
	if update.Code != nil {
		addSet("code", strings.ToUpper(*update.Code))
	}
	if update.DiscountType != nil {
		addSet("discount_type", *update.DiscountType)
	}
	if update.DiscountValue != nil {
		addSet("discount_value", *update.DiscountValue)
	}
	if update.MaxDiscountAmount != nil {
		addSet("max_discount_amount", *update.MaxDiscountAmount)
	}
	if update.MinOrderAmount != nil {
		addSet("min_order_amount", *update.MinOrderAmount)
	}
	if update.UsageLimit != nil {
		addSet("usage_limit", *update.UsageLimit)
	}
	if update.UsageLimitPerUser != nil {
		addSet("usage_limit_per_user", *update.UsageLimitPerUser)
	}
	if update.StartDate != nil {
		addSet("start_date", *update.StartDate)
	}
	if update.EndDate != nil {
		addSet("end_date", *update.EndDate)
	}
	if update.IsActive != nil {
		addSet("is_active", *update.IsActive)
	}

	if len(sets) == 0 {
		return s.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE coupons SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), couponColumns)

	row := s.pool.QueryRow(ctx, query, args...)
	updated, err := scanCoupon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCouponNotFound
		}
		s.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to update coupon")
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	s.logger.Info().Str("coupon_id", id.String()).Msg("coupon updated")

	return updated, nil
}

// Delete removes a coupon unconditionally.
func (s *couponStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		s.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to delete coupon")
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}

	s.logger.Info().Str("coupon_id", id.String()).Msg("coupon deleted")

	return nil
}

// IncrementUsage atomically increments the usage counter database-side
// and returns the updated row. The increment is a single UPDATE so
// concurrent redemptions never lose counts.
func (s *couponStore) IncrementUsage(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	query := fmt.Sprintf(`
		UPDATE coupons
		SET usage_count = usage_count + 1, updated_at = now()
		WHERE id = $1
		RETURNING %s`, couponColumns)

	row := s.pool.QueryRow(ctx, query, id)
	coupon, err := scanCoupon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCouponNotFound
		}
		s.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to increment coupon usage")
		return nil, fmt.Errorf("failed to increment coupon usage: %w", err)
	}

	s.logger.Debug().
		Str("coupon_id", id.String()).
		Int("usage_count", coupon.UsageCount).
		Msg("coupon usage incremented")

	return coupon, nil
}

// scanCoupon scans one coupon row from a pgx.Row or pgx.Rows.
func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Code,
		&c.DiscountType,
		&c.DiscountValue,
		&c.MaxDiscountAmount,
		&c.MinOrderAmount,
		&c.UsageLimit,
		&c.UsageLimitPerUser,
		&c.UsageCount,
		&c.StartDate,
		&c.EndDate,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
