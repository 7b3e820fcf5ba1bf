// Package payrollapi talks to the optional remote payroll service that
// computes payslips on the salon's behalf.
package payrollapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/payroll"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Config for the remote payroll API. Client credentials are optional; when
// ClientID is empty requests go out unauthenticated.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string

	// RatePerSecond caps outbound requests; 0 disables throttling.
	RatePerSecond float64
	Burst         int
	Timeout       time.Duration

	// HTTPClient is used as the transport base, mainly by tests.
	HTTPClient *http.Client
}

// defaultFetchTimeout bounds a shared fetch when Config.Timeout is unset.
const defaultFetchTimeout = 30 * time.Second

type RemoteSource struct {
	baseURL      string
	client       *http.Client
	limiter      *rate.Limiter
	fetchTimeout time.Duration
	sf           singleflight.Group
}

func NewRemoteSource(ctx context.Context, cfg Config) (*RemoteSource, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid payroll api url %q", cfg.BaseURL)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	if cfg.Timeout > 0 {
		c := *client
		c.Timeout = cfg.Timeout
		client = &c
	}

	if cfg.ClientID != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}
		// The token source keeps the base client for its own token requests.
		ctx = context.WithValue(ctx, oauth2.HTTPClient, client)
		authed := cc.Client(ctx)
		authed.Timeout = client.Timeout
		client = authed
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	fetchTimeout := cfg.Timeout
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}

	return &RemoteSource{
		baseURL:      base.String(),
		client:       client,
		limiter:      limiter,
		fetchTimeout: fetchTimeout,
	}, nil
}

// Payslip implements payroll.PayslipSource. Only the employee id and period of
// the input are sent; the remote service owns the attendance data.
//
// Concurrent calls for the same payslip share one request. The shared request
// is detached from any single caller and bounded by the fetch timeout; each
// caller stops waiting when its own ctx is done.
func (r *RemoteSource) Payslip(ctx context.Context, in payroll.PayslipInput) (payroll.Payslip, error) {
	key := fmt.Sprintf("%s|%d|%d", in.Employee.ID, in.Period.Month, in.Period.Year)
	shared := context.WithoutCancel(ctx)
	ch := r.sf.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(shared, r.fetchTimeout)
		defer cancel()
		return r.fetch(fetchCtx, in.Employee.ID, in.Period)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return payroll.Payslip{}, res.Err
		}
		return res.Val.(payroll.Payslip), nil
	case <-ctx.Done():
		return payroll.Payslip{}, fmt.Errorf("%w: %v", payroll.ErrRemoteUnavailable, ctx.Err())
	}
}

func (r *RemoteSource) fetch(ctx context.Context, employeeID string, period payroll.Period) (payroll.Payslip, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return payroll.Payslip{}, fmt.Errorf("%w: %v", payroll.ErrRemoteUnavailable, err)
		}
	}

	q := url.Values{}
	q.Set("month", strconv.Itoa(period.Month))
	q.Set("year", strconv.Itoa(period.Year))
	endpoint := fmt.Sprintf("%s/employees/%s/payslip?%s", r.baseURL, url.PathEscape(employeeID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return payroll.Payslip{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("%w: %v", payroll.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return payroll.Payslip{}, fmt.Errorf("%w: status %d: %s", payroll.ErrRemoteUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var slip payroll.Payslip
	if err := json.NewDecoder(resp.Body).Decode(&slip); err != nil {
		return payroll.Payslip{}, fmt.Errorf("%w: decode payslip: %v", payroll.ErrRemoteUnavailable, err)
	}

	if slip.EmployeeID == "" {
		slip.EmployeeID = employeeID
	}
	if slip.Period.Month == 0 {
		slip.Period = period
	}
	slip.Source = payroll.SourceRemote

	return slip, nil
}
