package service

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/pairdesk/internal/models"
)

// MockBacktestRepository mocks the backtest repository
type MockBacktestRepository struct {
	mock.Mock
}

func (m *MockBacktestRepository) Upsert(ctx context.Context, record *models.BacktestRecord) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}

func (m *MockBacktestRepository) GetByID(ctx context.Context, id string) (*models.BacktestRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BacktestRecord), args.Error(1)
}

func (m *MockBacktestRepository) List(ctx context.Context) ([]*models.BacktestRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BacktestRecord), args.Error(1)
}

func (m *MockBacktestRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSubscriptionRepository mocks the subscription repository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) List(ctx context.Context) ([]*models.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListByUser(ctx context.Context, userID string) ([]*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

// MockPaymentRepository mocks the payment repository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) List(ctx context.Context) ([]*models.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID string) ([]*models.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func strPtr(s string) *string { return &s }
