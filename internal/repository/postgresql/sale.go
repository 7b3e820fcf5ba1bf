package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/sale"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/database"
)

type saleRepository struct {
	db *database.DB
}

func NewSaleRepository(db *database.DB) sale.SaleRepository {
	return &saleRepository{db: db}
}

// Create implements sale.SaleRepository.
func (r *saleRepository) Create(ctx context.Context, s sale.Sale) (sale.Sale, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	query := `
		INSERT INTO sales (id, specialist, specialist_id, date, amount, total, invoice_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := q.QueryRow(ctx, query, s.ID, s.Specialist, s.SpecialistID, s.Date, s.Amount, s.Total, s.InvoiceNo).
		Scan(&s.CreatedAt)
	if err != nil {
		return sale.Sale{}, fmt.Errorf("failed to create sale: %w", err)
	}
	return s, nil
}

// ListByPeriod implements sale.SaleRepository.
func (r *saleRepository) ListByPeriod(ctx context.Context, month, year int) ([]sale.Sale, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, specialist, specialist_id, date, amount, total, invoice_no, created_at
		FROM sales
		WHERE EXTRACT(MONTH FROM date) = $1 AND EXTRACT(YEAR FROM date) = $2
		ORDER BY date, id
	`
	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	var sales []sale.Sale
	for rows.Next() {
		var s sale.Sale
		if err := rows.Scan(&s.ID, &s.Specialist, &s.SpecialistID, &s.Date, &s.Amount, &s.Total, &s.InvoiceNo, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sales, nil
}
