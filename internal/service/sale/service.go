package sale

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/employee"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/sale"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/validator"
)

type SaleServiceImpl struct {
	saleRepo     sale.SaleRepository
	employeeRepo employee.EmployeeRepository
}

func NewSaleService(saleRepo sale.SaleRepository, employeeRepo employee.EmployeeRepository) sale.SaleService {
	return &SaleServiceImpl{
		saleRepo:     saleRepo,
		employeeRepo: employeeRepo,
	}
}

// CreateSale implements sale.SaleService. A sale that names a specialist id
// gets the employee's current name; older clients send only the name.
func (s *SaleServiceImpl) CreateSale(ctx context.Context, req sale.CreateSaleRequest) (sale.SaleResponse, error) {
	if err := req.Validate(); err != nil {
		return sale.SaleResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return sale.SaleResponse{}, fmt.Errorf("invalid date: %w", err)
	}

	newSale := sale.Sale{
		Specialist: strings.TrimSpace(req.Specialist),
		Date:       date,
		Amount:     req.Amount,
		Total:      req.Total,
		InvoiceNo:  req.InvoiceNo,
	}

	if req.SpecialistID != nil && strings.TrimSpace(*req.SpecialistID) != "" {
		emp, err := s.employeeRepo.GetByID(ctx, strings.TrimSpace(*req.SpecialistID))
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return sale.SaleResponse{}, validator.ValidationErrors{{
					Field:   "specialist_id",
					Message: "specialist not found",
				}}
			}
			return sale.SaleResponse{}, fmt.Errorf("failed to get specialist: %w", err)
		}
		newSale.SpecialistID = &emp.ID
		newSale.Specialist = emp.Name
	}

	created, err := s.saleRepo.Create(ctx, newSale)
	if err != nil {
		return sale.SaleResponse{}, fmt.Errorf("failed to create sale: %w", err)
	}

	return sale.ToResponse(created), nil
}

// ListSales implements sale.SaleService.
func (s *SaleServiceImpl) ListSales(ctx context.Context, month, year int) ([]sale.SaleResponse, error) {
	if !validator.IsValidPeriod(month, year) {
		return nil, validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be 1-12 and year a four digit year",
		}}
	}

	sales, err := s.saleRepo.ListByPeriod(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	out := make([]sale.SaleResponse, 0, len(sales))
	for _, sl := range sales {
		out = append(out, sale.ToResponse(sl))
	}
	return out, nil
}
