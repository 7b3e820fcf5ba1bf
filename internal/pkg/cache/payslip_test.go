package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls int
	slip  payroll.Payslip
	err   error
}

func (s *countingSource) Payslip(ctx context.Context, in payroll.PayslipInput) (payroll.Payslip, error) {
	s.calls++
	return s.slip, s.err
}

func input() payroll.PayslipInput {
	return payroll.PayslipInput{
		Employee: employee.Employee{ID: "emp-1"},
		Period:   payroll.Period{Month: 3, Year: 2025},
	}
}

func remoteSlip() payroll.Payslip {
	return payroll.Payslip{
		EmployeeID: "emp-1",
		Period:     payroll.Period{Month: 3, Year: 2025},
		NetSalary:  decimal.NewFromInt(2330),
		Source:     payroll.SourceRemote,
	}
}

func TestPayslipKey(t *testing.T) {
	assert.Equal(t, "payslip:emp-1:2025-03", PayslipKey("emp-1", payroll.Period{Month: 3, Year: 2025}))
}

func TestCachedSource(t *testing.T) {
	ctx := context.Background()
	key := PayslipKey("emp-1", payroll.Period{Month: 3, Year: 2025})
	encoded, err := json.Marshal(remoteSlip())
	require.NoError(t, err)

	t.Run("cache hit skips the source", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		next := &countingSource{}
		mock.ExpectGet(key).SetVal(string(encoded))

		slip, err := NewCachedSource(db, next, time.Minute).Payslip(ctx, input())
		require.NoError(t, err)
		assert.Equal(t, 0, next.calls)
		assert.True(t, decimal.NewFromInt(2330).Equal(slip.NetSalary))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache miss stores the result", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		next := &countingSource{slip: remoteSlip()}
		mock.ExpectGet(key).RedisNil()
		mock.ExpectSet(key, string(encoded), time.Minute).SetVal("OK")

		slip, err := NewCachedSource(db, next, time.Minute).Payslip(ctx, input())
		require.NoError(t, err)
		assert.Equal(t, 1, next.calls)
		assert.Equal(t, "emp-1", slip.EmployeeID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis errors are ignored", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		next := &countingSource{slip: remoteSlip()}
		mock.ExpectGet(key).SetErr(errors.New("connection refused"))
		mock.ExpectSet(key, string(encoded), DefaultPayslipTTL).SetErr(errors.New("connection refused"))

		slip, err := NewCachedSource(db, next, 0).Payslip(ctx, input())
		require.NoError(t, err)
		assert.Equal(t, 1, next.calls)
		assert.Equal(t, payroll.SourceRemote, slip.Source)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt entry is refetched", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		next := &countingSource{slip: remoteSlip()}
		mock.ExpectGet(key).SetVal("{not json")
		mock.ExpectSet(key, string(encoded), time.Minute).SetVal("OK")

		_, err := NewCachedSource(db, next, time.Minute).Payslip(ctx, input())
		require.NoError(t, err)
		assert.Equal(t, 1, next.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("source errors are not cached", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		next := &countingSource{err: payroll.ErrRemoteUnavailable}
		mock.ExpectGet(key).RedisNil()

		_, err := NewCachedSource(db, next, time.Minute).Payslip(ctx, input())
		assert.ErrorIs(t, err, payroll.ErrRemoteUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCachedSource_Invalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	key := PayslipKey("emp-1", payroll.Period{Month: 3, Year: 2025})
	mock.ExpectDel(key).SetVal(1)

	err := NewCachedSource(db, &countingSource{}, time.Minute).Invalidate(context.Background(), "emp-1", payroll.Period{Month: 3, Year: 2025})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
