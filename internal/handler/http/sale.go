package http

import (
	"net/http"
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/sale"
	"github.com/lumiere-salon/salon-backend-go/internal/handler/http/response"
)

type SaleHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
}

type saleHandlerImpl struct {
	saleService sale.SaleService
	now         func() time.Time
}

func NewSaleHandler(saleService sale.SaleService) SaleHandler {
	return &saleHandlerImpl{
		saleService: saleService,
		now:         time.Now,
	}
}

// List returns the sales of a month, the current one when month or year is missing.
func (h *saleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	month := getIntQueryParam(r, "month", int(now.Month()))
	year := getIntQueryParam(r, "year", now.Year())

	result, err := h.saleService.ListSales(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *saleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req sale.CreateSaleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.saleService.CreateSale(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Sale recorded", result)
}
