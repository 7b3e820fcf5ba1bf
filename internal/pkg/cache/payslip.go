// Package cache keeps remote payslips in Redis so repeated report views do
// not hit the payroll API.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"github.com/redis/go-redis/v9"
)

const (
	PayslipKeyPrefix  = "payslip:"
	DefaultPayslipTTL = 10 * time.Minute
)

func PayslipKey(employeeID string, period payroll.Period) string {
	return fmt.Sprintf("%s%s:%04d-%02d", PayslipKeyPrefix, employeeID, period.Year, period.Month)
}

// CachedSource is a read-through cache in front of another payslip source.
// Redis failures never fail a request.
type CachedSource struct {
	rdb  redis.Cmdable
	next payroll.PayslipSource
	ttl  time.Duration
}

func NewCachedSource(rdb redis.Cmdable, next payroll.PayslipSource, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultPayslipTTL
	}
	return &CachedSource{rdb: rdb, next: next, ttl: ttl}
}

// Payslip implements payroll.PayslipSource.
func (c *CachedSource) Payslip(ctx context.Context, in payroll.PayslipInput) (payroll.Payslip, error) {
	key := PayslipKey(in.Employee.ID, in.Period)

	cached, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		var slip payroll.Payslip
		if err := json.Unmarshal([]byte(cached), &slip); err == nil {
			return slip, nil
		}
		slog.Warn("discarding corrupt cached payslip", "key", key)
	case !errors.Is(err, redis.Nil):
		slog.Warn("payslip cache read failed", "key", key, "error", err)
	}

	slip, err := c.next.Payslip(ctx, in)
	if err != nil {
		return payroll.Payslip{}, err
	}

	data, err := json.Marshal(slip)
	if err != nil {
		slog.Warn("failed to encode payslip for cache", "key", key, "error", err)
		return slip, nil
	}
	if err := c.rdb.Set(ctx, key, string(data), c.ttl).Err(); err != nil {
		slog.Warn("payslip cache write failed", "key", key, "error", err)
	}

	return slip, nil
}

// Invalidate drops the cached payslip, e.g. after attendance for the period
// was corrected.
func (c *CachedSource) Invalidate(ctx context.Context, employeeID string, period payroll.Period) error {
	return c.rdb.Del(ctx, PayslipKey(employeeID, period)).Err()
}
