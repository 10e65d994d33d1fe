package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"propaudit/internal/fraud/models"
	"propaudit/internal/fraud/ports"
	"propaudit/pkg/platform/circuit"
	"propaudit/pkg/platform/sentinel"
)

// guard wraps one evidence call in a circuit breaker. While the breaker is
// open calls fail fast with sentinel.ErrUnavailable. Cancellation is not
// counted as a failure since errgroup cancels siblings of a failed call.
func guard[T any](ctx context.Context, b *circuit.Breaker, logger *slog.Logger, call func(context.Context) (T, error)) (T, error) {
	var zero T
	if !b.Allow() {
		return zero, fmt.Errorf("%s circuit open: %w", b.Name(), sentinel.ErrUnavailable)
	}
	v, err := call(ctx)
	switch {
	case err == nil:
		if _, change := b.RecordSuccess(); change.Closed && logger != nil {
			logger.InfoContext(ctx, "evidence source recovered", "source", b.Name())
		}
		return v, nil
	case errors.Is(err, context.Canceled):
		return zero, err
	default:
		if _, change := b.RecordFailure(); change.Opened && logger != nil {
			logger.WarnContext(ctx, "evidence source circuit opened", "source", b.Name(), "error", err)
		}
		return zero, err
	}
}

type GuardedPriceSource struct {
	next    ports.PriceSource
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func GuardPriceSource(next ports.PriceSource, logger *slog.Logger, opts ...circuit.Option) *GuardedPriceSource {
	return &GuardedPriceSource{next: next, breaker: circuit.New("price_source", opts...), logger: logger}
}

func (g *GuardedPriceSource) PriceEvidence(ctx context.Context, s models.Subject) (models.PriceEvidence, error) {
	return guard(ctx, g.breaker, g.logger, func(ctx context.Context) (models.PriceEvidence, error) {
		return g.next.PriceEvidence(ctx, s)
	})
}

type GuardedTitleRegistry struct {
	next    ports.TitleRegistry
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func GuardTitleRegistry(next ports.TitleRegistry, logger *slog.Logger, opts ...circuit.Option) *GuardedTitleRegistry {
	return &GuardedTitleRegistry{next: next, breaker: circuit.New("title_registry", opts...), logger: logger}
}

func (g *GuardedTitleRegistry) TitleEvidence(ctx context.Context, s models.Subject) (models.TitleEvidence, error) {
	return guard(ctx, g.breaker, g.logger, func(ctx context.Context) (models.TitleEvidence, error) {
		return g.next.TitleEvidence(ctx, s)
	})
}

type GuardedDocumentForensics struct {
	next    ports.DocumentForensics
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func GuardDocumentForensics(next ports.DocumentForensics, logger *slog.Logger, opts ...circuit.Option) *GuardedDocumentForensics {
	return &GuardedDocumentForensics{next: next, breaker: circuit.New("document_forensics", opts...), logger: logger}
}

func (g *GuardedDocumentForensics) DocumentEvidence(ctx context.Context, s models.Subject) (models.DocumentEvidence, error) {
	return guard(ctx, g.breaker, g.logger, func(ctx context.Context) (models.DocumentEvidence, error) {
		return g.next.DocumentEvidence(ctx, s)
	})
}

type GuardedSellerHistory struct {
	next    ports.SellerHistory
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func GuardSellerHistory(next ports.SellerHistory, logger *slog.Logger, opts ...circuit.Option) *GuardedSellerHistory {
	return &GuardedSellerHistory{next: next, breaker: circuit.New("seller_history", opts...), logger: logger}
}

func (g *GuardedSellerHistory) SellerEvidence(ctx context.Context, s models.Subject) (models.SellerEvidence, error) {
	return guard(ctx, g.breaker, g.logger, func(ctx context.Context) (models.SellerEvidence, error) {
		return g.next.SellerEvidence(ctx, s)
	})
}
