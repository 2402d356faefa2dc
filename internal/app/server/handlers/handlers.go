package handlers

import (
	"context"
	"log/slog"
	"time"
	"travelbook/checkout-relay/internal/app/checkout"
	"travelbook/checkout-relay/internal/app/validation"
	"travelbook/checkout-relay/internal/models"
)

// Processor is the hosted-checkout capability the handlers delegate to.
type Processor interface {
	CreateSession(ctx context.Context, session *models.SessionRequest) (*models.Session, error)
	GetSession(ctx context.Context, id string) (*models.Session, error)
}

type Handlers struct {
	processor Processor
	validator *validation.Validator
	builder   *checkout.Builder
	logger    *slog.Logger
	now       func() time.Time
}

func NewHandlers(processor Processor, validator *validation.Validator, builder *checkout.Builder, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handlers{
		processor: processor,
		validator: validator,
		builder:   builder,
		logger:    logger,
		now:       time.Now,
	}
}
