// Package enrichmenttest provides a testify mock of the enrichment gateway.
package enrichmenttest

import (
	"context"

	"social_cases_go/services/enrichment"

	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GetEmployee(ctx context.Context, token string, id uint) (*enrichment.Employee, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enrichment.Employee), args.Error(1)
}

func (m *MockGateway) UpdateEmployeeCaseStatus(ctx context.Context, token string, id uint, hasSocialCase bool) error {
	args := m.Called(ctx, token, id, hasSocialCase)
	return args.Error(0)
}

func (m *MockGateway) GetBusiness(ctx context.Context, token string, id uint) (*enrichment.Business, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enrichment.Business), args.Error(1)
}

func (m *MockGateway) GetParameter(ctx context.Context, token string, kind string, id uint) (*enrichment.Parameter, error) {
	args := m.Called(ctx, token, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enrichment.Parameter), args.Error(1)
}

func (m *MockGateway) GetUser(ctx context.Context, token string, id uint) (*enrichment.User, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enrichment.User), args.Error(1)
}

var _ enrichment.Gateway = (*MockGateway)(nil)
