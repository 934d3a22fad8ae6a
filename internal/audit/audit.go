// Package audit appends best-effort activity records without blocking the
// request path. Failed writes are logged and dropped, never retried.
package audit

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bistrostack/gastropanel/internal/domain"
)

// LogStore is the slice of the persistence adapter the recorder needs.
type LogStore interface {
	AppendLog(ctx context.Context, entry *domain.AuditLog) error
}

type Recorder struct {
	store LogStore
	pool  *ants.Pool
	node  *snowflake.Node
}

func NewRecorder(store LogStore, workers int) (*Recorder, error) {
	if workers <= 0 {
		workers = 4
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, errors.Wrap(err, "init snowflake node")
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, errors.Wrap(err, "init audit pool")
	}
	return &Recorder{store: store, pool: pool, node: node}, nil
}

// Record queues one audit entry. A full pool or a storage error only logs.
func (r *Recorder) Record(actor, action, entity, entityID, detail string) {
	if r == nil {
		return
	}
	entry := &domain.AuditLog{
		ID:        r.node.Generate().Int64(),
		Actor:     actor,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Detail:    detail,
		CreatedAt: time.Now(),
	}
	err := r.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.store.AppendLog(ctx, entry); err != nil {
			zap.L().Warn("audit write failed",
				zap.String("action", action), zap.Error(err))
		}
	})
	if err != nil {
		zap.L().Warn("audit entry dropped", zap.String("action", action), zap.Error(err))
	}
}

func (r *Recorder) Close() {
	if r != nil && r.pool != nil {
		r.pool.Release()
	}
}
