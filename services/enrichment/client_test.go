package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestGateway(url string) *HTTPGateway {
	return NewHTTPGateway(Endpoints{
		Employees:  url,
		Business:   url,
		Users:      url,
		Parameters: url,
	}, 5*time.Second)
}

func TestGetEmployee(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/employees/41", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": 41,
			"names": "JUAN",
			"paternalSurname": "PEREZ",
			"maternalSurname": "SOTO",
			"gender": "M",
			"nationality": {"id": 1, "description": "CHILENA"}
		}`)
	}))
	defer server.Close()

	employee, err := newTestGateway(server.URL).GetEmployee(context.Background(), "tok", 41)
	assert.NoError(t, err)
	assert.Equal(t, uint(41), employee.ID)
	assert.Equal(t, "JUAN PEREZ SOTO", employee.FullName())
	assert.Equal(t, "CHILENA", employee.Nationality.Description)
	assert.Nil(t, employee.CurrentJob)
}

func TestUpdateEmployeeCaseStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/employees/41", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]bool
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]bool{"has_social_case": false}, body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := newTestGateway(server.URL).UpdateEmployeeCaseStatus(context.Background(), "tok", 41, false)
	assert.NoError(t, err)
}

func TestGetBusiness(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/business/11", r.URL.Path)
		fmt.Fprint(w, `{"id": 11, "rut": "76.000.000-1", "businessName": "EMP 34", "socialService": "SI",
			"region": {"id": 2, "name": "ANTOFAGASTA"}, "commune": {"id": 5, "name": "CALAMA"}}`)
	}))
	defer server.Close()

	business, err := newTestGateway(server.URL).GetBusiness(context.Background(), "tok", 11)
	assert.NoError(t, err)
	assert.Equal(t, "EMP 34", business.BusinessName)
	assert.True(t, business.HasSocialService())
	assert.Equal(t, "CALAMA", business.Commune.Name)
}

func TestGetParameter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/areas/2", r.URL.Path)
		fmt.Fprint(w, `{"id": 2, "name": "SALUD"}`)
	}))
	defer server.Close()

	area, err := newTestGateway(server.URL).GetParameter(context.Background(), "tok", "/areas/", 2)
	assert.NoError(t, err)
	assert.Equal(t, "SALUD", area.Name)
}

func TestGetUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/7", r.URL.Path)
		fmt.Fprint(w, `{"id": 7, "names": "A", "paternalSurname": "B", "maternalSurname": "", "email": "a@b.cl"}`)
	}))
	defer server.Close()

	user, err := newTestGateway(server.URL).GetUser(context.Background(), "tok", 7)
	assert.NoError(t, err)
	assert.Equal(t, "A B", user.FullName())
	assert.Equal(t, "a@b.cl", user.Email)
}

func TestUpstreamErrors(t *testing.T) {
	t.Run("Error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := newTestGateway(server.URL).GetUser(context.Background(), "tok", 99)
		var upstream *UpstreamError
		assert.True(t, errors.As(err, &upstream))
		assert.Equal(t, ServiceUsers, upstream.Service)
		assert.Equal(t, http.StatusNotFound, upstream.StatusCode)
		assert.Contains(t, err.Error(), "users service returned status 404")
	})

	t.Run("Malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not json`)
		}))
		defer server.Close()

		_, err := newTestGateway(server.URL).GetBusiness(context.Background(), "tok", 1)
		var upstream *UpstreamError
		assert.True(t, errors.As(err, &upstream))
		assert.Equal(t, 0, upstream.StatusCode)
		assert.Contains(t, err.Error(), "failed to decode response")
	})

	t.Run("Unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		err := newTestGateway(url).UpdateEmployeeCaseStatus(context.Background(), "tok", 1, true)
		var upstream *UpstreamError
		assert.True(t, errors.As(err, &upstream))
		assert.Equal(t, ServiceEmployees, upstream.Service)
	})
}

func TestNewHTTPGateway(t *testing.T) {
	g := NewHTTPGateway(Endpoints{}, 3*time.Second)
	assert.Equal(t, 3*time.Second, g.client.Timeout)
}
