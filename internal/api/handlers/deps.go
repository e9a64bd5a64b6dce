package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/session"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/workflow"
)

// BackendClient is everything the handlers need from the order backend. The
// concrete implementation lives in internal/backend; handlers only see this
// slice so tests can substitute a fake.
type BackendClient interface {
	ResolveTracking(ctx context.Context, code string) (*domain.Order, error)
	session.Mutator
}

// Deps wires the handler set. Backend builds a client bound to one opaque
// bearer credential; Sessions hands out the per-operator store and
// coordinator; Engine is stateless and shared.
type Deps struct {
	Backend  func(token string) BackendClient
	Sessions *session.Manager
	Engine   *workflow.Engine
	Logger   *zap.Logger
}
