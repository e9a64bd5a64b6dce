package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/permission"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/workflow"
)

// Mutator is the slice of the backend client the coordinator needs.
type Mutator interface {
	CreateOrders(ctx context.Context, payloads []permission.OrderPayload) ([]*domain.Order, error)
	UpdateOrders(ctx context.Context, payloads []permission.OrderPayload) ([]*domain.Order, error)
}

// Coordinator applies transition plans optimistically: the session store is
// mutated first, the backend is called second, and on any failure the store is
// restored to the exact pre-apply snapshots. At most one in-flight plan may
// touch a given order; a later plan for the same order waits for the earlier
// one to resolve so a stale revert can never clobber a newer write.
type Coordinator struct {
	store   *Store
	mutator Mutator
	logger  *zap.Logger

	mu      sync.Mutex
	pending map[string]chan struct{}
}

// NewCoordinator creates a coordinator over the given session store.
func NewCoordinator(store *Store, mutator Mutator, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		store:   store,
		mutator: mutator,
		logger:  logger,
		pending: make(map[string]chan struct{}),
	}
}

// Pending reports whether the order has an unresolved in-flight plan.
func (c *Coordinator) Pending(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[id]
	return ok
}

// acquire blocks until none of ids has an in-flight plan, then marks them all
// pending under one done channel. Waiting respects ctx.
func (c *Coordinator) acquire(ctx context.Context, ids []string) (chan struct{}, error) {
	for {
		c.mu.Lock()
		var busy chan struct{}
		for _, id := range ids {
			if ch, ok := c.pending[id]; ok {
				busy = ch
				break
			}
		}
		if busy == nil {
			done := make(chan struct{})
			for _, id := range ids {
				c.pending[id] = done
			}
			c.mu.Unlock()
			return done, nil
		}
		c.mu.Unlock()

		select {
		case <-busy:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// release clears the pending marks and wakes every waiter.
func (c *Coordinator) release(ids []string, done chan struct{}) {
	c.mu.Lock()
	for _, id := range ids {
		if c.pending[id] == done {
			delete(c.pending, id)
		}
	}
	c.mu.Unlock()
	close(done)
}

// Apply executes one transition plan. The returned orders are the committed
// backend records; on error the store already equals its pre-apply state.
// The revert is unconditional and whole-plan: there is no partial outcome.
func (c *Coordinator) Apply(ctx context.Context, plan *workflow.TransitionPlan) ([]*domain.Order, error) {
	ids := make([]string, 0, len(plan.Items))
	for _, it := range plan.Items {
		ids = append(ids, it.Order.ID)
	}

	done, err := c.acquire(ctx, ids)
	if err != nil {
		return nil, err
	}
	defer c.release(ids, done)

	// Snapshot before touching anything. Staged orders have no prior store
	// entry; their snapshot is "absent".
	snapshots := make(map[string]*domain.Order, len(plan.Items))
	for _, it := range plan.Items {
		if prev, ok := c.store.Get(it.Order.ID); ok {
			snapshots[it.Order.ID] = prev
		} else {
			snapshots[it.Order.ID] = nil
		}
	}

	// Optimistic apply.
	for _, it := range plan.Items {
		next := it.Order.Clone()
		next.Status = plan.Target
		c.store.Put(next)
	}

	created, updated, err := c.callBackend(ctx, plan)
	if err != nil {
		c.revert(snapshots)
		c.logger.Warn("plan reverted",
			zap.String("target", string(plan.Target)),
			zap.Int("orders", len(plan.Items)),
			zap.Error(err),
		)
		return nil, err
	}

	// Commit: adopt the backend's records, swapping staged ids for real ones.
	committed := make([]*domain.Order, 0, len(created)+len(updated))
	createItems := plan.Creates()
	for i, o := range created {
		if i < len(createItems) {
			c.store.Replace(createItems[i].Order.ID, o)
		} else {
			c.store.Put(o)
		}
		committed = append(committed, o)
	}
	for _, o := range updated {
		c.store.Put(o)
		committed = append(committed, o)
	}

	c.logger.Info("plan committed",
		zap.String("target", string(plan.Target)),
		zap.Int("created", len(created)),
		zap.Int("updated", len(updated)),
	)
	return committed, nil
}

// callBackend issues the create and update calls for the plan. Even when ctx
// is torn down mid-flight the calls return (the transport enforces that), so
// the caller always reaches its commit-or-revert decision.
func (c *Coordinator) callBackend(ctx context.Context, plan *workflow.TransitionPlan) (created, updated []*domain.Order, err error) {
	if items := plan.Creates(); len(items) > 0 {
		payloads := make([]permission.OrderPayload, len(items))
		for i, it := range items {
			payloads[i] = it.Payload
		}
		created, err = c.mutator.CreateOrders(ctx, payloads)
		if err != nil {
			return nil, nil, err
		}
	}
	if items := plan.Updates(); len(items) > 0 {
		payloads := make([]permission.OrderPayload, len(items))
		for i, it := range items {
			payloads[i] = it.Payload
		}
		updated, err = c.mutator.UpdateOrders(ctx, payloads)
		if err != nil {
			return nil, nil, err
		}
	}
	return created, updated, nil
}

// revert restores every snapshot, removing orders that did not exist before
// the optimistic apply.
func (c *Coordinator) revert(snapshots map[string]*domain.Order) {
	for id, snap := range snapshots {
		if snap == nil {
			c.store.Remove(id)
		} else {
			c.store.Put(snap)
		}
	}
}
