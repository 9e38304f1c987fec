// File: database/repository/segment/transaction.go
package segmentRepo

import (
	"context"
	"fmt"
	"time"

	"chairside/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// InsertGroup writes every segment of one booking group inside a single
// mongo transaction, so a group is never half-written. On standalone
// deployments (no replica set) StartSession still works but transactions
// don't; the sequential fallback reports how many rows landed so the caller
// can distinguish a partial write from a clean failure.
func (r *mongoSegmentRepo) InsertGroup(ctx context.Context, segments []models.Segment) error {
	if len(segments) == 0 {
		return fmt.Errorf("insert group: no segments")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	docs := make([]interface{}, len(segments))
	for i, seg := range segments {
		docs[i] = seg
	}

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("insert segments failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			// Standalone deployment: fall back to an ordered bulk insert
			// and surface partial progress explicitly.
			return r.insertGroupSequential(sc, docs, segments[0].GroupID)
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("group insert failed: %w", err)
	}

	return nil
}

// PartialInsertError reports a group write that stopped partway through.
// The stored state is inconsistent and needs manual reconciliation.
type PartialInsertError struct {
	GroupID string
	Written int
	Total   int
	Err     error
}

func (e *PartialInsertError) Error() string {
	return fmt.Sprintf("partial insert for group %s: %d of %d segments written: %v",
		e.GroupID, e.Written, e.Total, e.Err)
}

func (e *PartialInsertError) Unwrap() error { return e.Err }

func (r *mongoSegmentRepo) insertGroupSequential(ctx context.Context, docs []interface{}, groupID string) error {
	for i, doc := range docs {
		if _, err := r.coll.InsertOne(ctx, doc); err != nil {
			if i == 0 {
				return fmt.Errorf("insert segments failed: %w", err)
			}
			return &PartialInsertError{GroupID: groupID, Written: i, Total: len(docs), Err: err}
		}
	}
	return nil
}
