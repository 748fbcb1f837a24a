package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pairdesk/internal/logger"
	"github.com/yourusername/pairdesk/internal/models"
	"github.com/yourusername/pairdesk/internal/repository"
	"github.com/yourusername/pairdesk/internal/table"
	"github.com/yourusername/pairdesk/internal/views"
)

// SubscriptionService serves the pairs table.
type SubscriptionService struct {
	repo     repository.SubscriptionRepository
	pipeline *logger.PipelineLogger
	settings TableSettings
}

// NewSubscriptionService creates a subscription service.
func NewSubscriptionService(repo repository.SubscriptionRepository, log *logrus.Logger, settings TableSettings) *SubscriptionService {
	return &SubscriptionService{
		repo:     repo,
		pipeline: logger.NewPipelineLogger(log),
		settings: settings,
	}
}

// Options returns the view options of the pairs table.
func (s *SubscriptionService) Options() table.ViewOptions {
	return views.SubscriptionOptions(s.settings.PageSizes, s.settings.DefaultPageSize)
}

// Table runs the pairs view, narrowed to one user when userID is set.
func (s *SubscriptionService) Table(ctx context.Context, userID string, state table.ViewState) (table.Result[views.SubscriptionRow], error) {
	var (
		subs []*models.Subscription
		err  error
	)
	if userID != "" {
		subs, err = s.repo.ListByUser(ctx, userID)
	} else {
		subs, err = s.repo.List(ctx)
	}
	if err != nil {
		return table.Result[views.SubscriptionRow]{}, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	return runView(CollectionSubscriptions, views.SubscriptionView(), views.SubscriptionRows(subs), state, s.pipeline), nil
}

// PaymentService serves the payments table.
type PaymentService struct {
	repo     repository.PaymentRepository
	pipeline *logger.PipelineLogger
	settings TableSettings
	clock    views.Clock
}

// NewPaymentService creates a payment service.
func NewPaymentService(repo repository.PaymentRepository, log *logrus.Logger, settings TableSettings) *PaymentService {
	return &PaymentService{
		repo:     repo,
		pipeline: logger.NewPipelineLogger(log),
		settings: settings,
		clock:    time.Now,
	}
}

// Options returns the view options of the payments table.
func (s *PaymentService) Options() table.ViewOptions {
	return views.PaymentOptions(s.settings.PageSizes, s.settings.DefaultPageSize)
}

// Table runs the payments view, narrowed to one user when userID is set.
func (s *PaymentService) Table(ctx context.Context, userID string, state table.ViewState) (table.Result[views.PaymentRow], error) {
	var (
		payments []*models.Payment
		err      error
	)
	if userID != "" {
		payments, err = s.repo.ListByUser(ctx, userID)
	} else {
		payments, err = s.repo.List(ctx)
	}
	if err != nil {
		return table.Result[views.PaymentRow]{}, fmt.Errorf("failed to load payments: %w", err)
	}
	return runView(CollectionPayments, views.PaymentView(s.clock), views.PaymentRows(payments), state, s.pipeline), nil
}
