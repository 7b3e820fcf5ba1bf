package sale

import (
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateSaleRequest struct {
	Specialist   string           `json:"specialist"`
	SpecialistID *string          `json:"specialist_id,omitempty"`
	Date         string           `json:"date"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Total        *decimal.Decimal `json:"total,omitempty"`
	InvoiceNo    *string          `json:"invoice_no,omitempty"`
}

func (r *CreateSaleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Specialist) && (r.SpecialistID == nil || validator.IsEmpty(*r.SpecialistID)) {
		errs.Add("specialist", "specialist or specialist_id is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "must be in YYYY-MM-DD format")
	}
	if r.Amount == nil && r.Total == nil {
		errs.Add("amount", "amount or total is required")
	}
	if (r.Amount != nil && r.Amount.IsNegative()) || (r.Total != nil && r.Total.IsNegative()) {
		errs.Add("amount", "must be non-negative")
	}

	return errs.Err()
}

type SaleResponse struct {
	ID           string          `json:"id"`
	Specialist   string          `json:"specialist"`
	SpecialistID *string         `json:"specialist_id,omitempty"`
	Date         string          `json:"date"`
	Value        decimal.Decimal `json:"value"`
	InvoiceNo    *string         `json:"invoice_no,omitempty"`
}

func ToResponse(s Sale) SaleResponse {
	return SaleResponse{
		ID:           s.ID,
		Specialist:   s.Specialist,
		SpecialistID: s.SpecialistID,
		Date:         s.Date.Format("2006-01-02"),
		Value:        s.Value(),
		InvoiceNo:    s.InvoiceNo,
	}
}
