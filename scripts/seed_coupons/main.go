// Seeds a handful of sample coupons for local development. Run against
// the service-role connection so row-level security does not block the
// inserts.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"workshop-bridge/internal/config"
	"workshop-bridge/internal/database"
	"workshop-bridge/internal/model"
	"workshop-bridge/internal/store"

	"github.com/google/uuid"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.Database.ServiceConnectionString(), cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer pool.Close()

	coupons := store.NewCouponStore(pool, logger)

	now := time.Now()
	nextMonth := now.AddDate(0, 1, 0)
	lastWeek := now.AddDate(0, 0, -7)

	samples := []model.Coupon{
		{
			ID:            uuid.New(),
			Name:          "Summer 10% off",
			Code:          "SUMMER10",
			DiscountType:  model.DiscountTypePercentage,
			DiscountValue: 10,
			StartDate:     lastWeek,
			EndDate:       &nextMonth,
			IsActive:      true,
		},
		{
			ID:                uuid.New(),
			Name:              "Welcome discount, capped",
			Code:              "WELCOME20",
			DiscountType:      model.DiscountTypePercentage,
			DiscountValue:     20,
			MaxDiscountAmount: floatPtr(30),
			StartDate:         lastWeek,
			IsActive:          true,
		},
		{
			ID:             uuid.New(),
			Name:           "Flat discount on big orders",
			Code:           "FLAT25",
			DiscountType:   model.DiscountTypeFixedAmount,
			DiscountValue:  25,
			MinOrderAmount: floatPtr(100),
			StartDate:      lastWeek,
			IsActive:       true,
		},
		{
			ID:            uuid.New(),
			Name:          "Limited run",
			Code:          "FIRST50",
			DiscountType:  model.DiscountTypePercentage,
			DiscountValue: 15,
			UsageLimit:    intPtr(50),
			StartDate:     lastWeek,
			IsActive:      true,
		},
	}

	for _, c := range samples {
		sample := c
		created, err := coupons.Create(ctx, &sample)
		if err != nil {
			logger.Warn().Err(err).Str("code", c.Code).Msg("skipping coupon")
			continue
		}
		fmt.Printf("seeded %s (%s)\n", created.Code, created.Name)
	}

	return nil
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
