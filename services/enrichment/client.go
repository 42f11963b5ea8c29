package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"social_cases_go/logger"
	"social_cases_go/metrics"
)

// Endpoints holds the base URL of each sibling service
type Endpoints struct {
	Employees  string
	Business   string
	Users      string
	Parameters string
}

// HTTPGateway implements Gateway over the sibling services' JSON APIs
type HTTPGateway struct {
	endpoints Endpoints
	client    *http.Client
}

// NewHTTPGateway creates a gateway with the given per-request timeout
func NewHTTPGateway(endpoints Endpoints, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		endpoints: endpoints,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetEmployee implements Gateway
func (g *HTTPGateway) GetEmployee(ctx context.Context, token string, id uint) (*Employee, error) {
	var employee Employee
	url := fmt.Sprintf("%s/employees/%d", g.endpoints.Employees, id)
	if err := g.do(ctx, ServiceEmployees, http.MethodGet, url, token, nil, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// UpdateEmployeeCaseStatus implements Gateway
func (g *HTTPGateway) UpdateEmployeeCaseStatus(ctx context.Context, token string, id uint, hasSocialCase bool) error {
	url := fmt.Sprintf("%s/employees/%d", g.endpoints.Employees, id)
	body := map[string]bool{"has_social_case": hasSocialCase}
	return g.do(ctx, ServiceEmployees, http.MethodPatch, url, token, body, nil)
}

// GetBusiness implements Gateway
func (g *HTTPGateway) GetBusiness(ctx context.Context, token string, id uint) (*Business, error) {
	var business Business
	url := fmt.Sprintf("%s/business/%d", g.endpoints.Business, id)
	if err := g.do(ctx, ServiceBusiness, http.MethodGet, url, token, nil, &business); err != nil {
		return nil, err
	}
	return &business, nil
}

// GetParameter implements Gateway. kind is the catalog path, e.g. "areas".
func (g *HTTPGateway) GetParameter(ctx context.Context, token string, kind string, id uint) (*Parameter, error) {
	var param Parameter
	url := fmt.Sprintf("%s/%s/%d", g.endpoints.Parameters, strings.Trim(kind, "/"), id)
	if err := g.do(ctx, ServiceParameters, http.MethodGet, url, token, nil, &param); err != nil {
		return nil, err
	}
	return &param, nil
}

// GetUser implements Gateway
func (g *HTTPGateway) GetUser(ctx context.Context, token string, id uint) (*User, error) {
	var user User
	url := fmt.Sprintf("%s/users/%d", g.endpoints.Users, id)
	if err := g.do(ctx, ServiceUsers, http.MethodGet, url, token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *HTTPGateway) do(ctx context.Context, service, method, url, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &UpstreamError{Service: service, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return &UpstreamError{Service: service, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.record(service, "error")
		logger.Log.Warnw("Upstream request failed", "service", service, "method", method, "url", url, "error", err)
		return &UpstreamError{Service: service, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.record(service, "error")
		logger.Log.Warnw("Upstream returned error status", "service", service, "method", method, "url", url, "status", resp.StatusCode)
		return &UpstreamError{Service: service, StatusCode: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			g.record(service, "error")
			return &UpstreamError{Service: service, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}

	g.record(service, "ok")
	return nil
}

func (g *HTTPGateway) record(service, outcome string) {
	metrics.UpstreamRequests.WithLabelValues(service, outcome).Inc()
}
