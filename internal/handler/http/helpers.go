package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"github.com/lumiere-salon/salon-backend-go/internal/handler/http/response"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/validator"
)

// claimString reads a string claim put in the context by jwtauth.Verifier.
func claimString(r *http.Request, key string) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	value, _ := claims[key].(string)
	return value
}

func getUserIDFromContext(r *http.Request) string {
	return claimString(r, "user_id")
}

// getEmployeeIDFromContext is empty for accounts without a staff record.
func getEmployeeIDFromContext(r *http.Request) string {
	return claimString(r, "employee_id")
}

// requireUser writes 401 and reports false when the request carries no user.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return "", false
	}
	return userID, true
}

// decodeJSON writes 400 and reports false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Debug("request decode error", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// decodeOptional decodes a JSON body when one was sent.
func decodeOptional(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// pathID reads a required URL parameter, writing 400 when it is empty.
func pathID(w http.ResponseWriter, r *http.Request, param, label string) (string, bool) {
	id := chi.URLParam(r, param)
	if id == "" {
		response.BadRequest(w, label+" is required", nil)
		return "", false
	}
	return id, true
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getOptionalIntQueryParam returns nil when key is absent or not a number.
func getOptionalIntQueryParam(r *http.Request, key string) *int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return nil
	}
	return &intVal
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}

// periodFromQuery reads the required month and year query parameters.
func periodFromQuery(r *http.Request) (payroll.Period, error) {
	var errs validator.ValidationErrors

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		errs.Add("month", "month is required")
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		errs.Add("year", "year is required")
	}
	if len(errs) > 0 {
		return payroll.Period{}, errs
	}

	period := payroll.Period{Month: month, Year: year}
	if err := period.Validate(); err != nil {
		return payroll.Period{}, err
	}
	return period, nil
}

// optionalString maps an absent query value to nil.
func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
