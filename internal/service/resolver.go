package service

import (
	"fmt"

	"github.com/vkotlyar/go-host-keeper/models"
)

// conflictResolver is the concrete implementation of [ConflictResolver].
// Stateless: every call computes the operation set from its arguments alone.
type conflictResolver struct{}

// NewConflictResolver constructs a [ConflictResolver] ready for use.
func NewConflictResolver() ConflictResolver {
	return &conflictResolver{}
}

// Resolve implements [ConflictResolver].
//
// Strategy semantics:
//
//   - StrategyUploadLocal: the remote set is made equal to the local set.
//     Local-only and conflicting profiles are uploaded with full local
//     content; server-only profiles are deleted from the server.
//   - StrategyDownloadRemote: symmetric. Server-only and conflicting
//     profiles are downloaded; local-only profiles are deleted locally.
//   - StrategyMerge: union of the replicas. Local-only uploads,
//     server-only downloads; conflicts are settled by UpdatedAt, with the
//     strictly newer copy winning and ties falling to the local copy.
//     Merge never produces a delete.
//   - StrategyAskUser: no operations; returns ErrConflictUnresolved so the
//     orchestrator parks the inconsistency for an interactive choice.
func (r *conflictResolver) Resolve(
	inconsistency models.Inconsistency,
	strategy models.SyncStrategy,
	local, remote models.Snapshot,
) ([]models.SyncOperation, error) {
	if inconsistency.IsNone() {
		return nil, nil
	}

	switch strategy {
	case models.StrategyUploadLocal:
		ops := make([]models.SyncOperation, 0, inconsistency.Total())
		for _, id := range inconsistency.LocalOnly {
			ops = append(ops, uploadOp(local[id]))
		}
		for _, id := range inconsistency.Conflicts {
			ops = append(ops, uploadOp(local[id]))
		}
		for _, id := range inconsistency.ServerOnly {
			ops = append(ops, models.SyncOperation{ProfileID: id, Direction: models.DirectionDeleteRemote})
		}
		return ops, nil

	case models.StrategyDownloadRemote:
		ops := make([]models.SyncOperation, 0, inconsistency.Total())
		for _, id := range inconsistency.ServerOnly {
			ops = append(ops, downloadOp(remote[id]))
		}
		for _, id := range inconsistency.Conflicts {
			ops = append(ops, downloadOp(remote[id]))
		}
		for _, id := range inconsistency.LocalOnly {
			ops = append(ops, models.SyncOperation{ProfileID: id, Direction: models.DirectionDeleteLocal})
		}
		return ops, nil

	case models.StrategyMerge:
		ops := make([]models.SyncOperation, 0, inconsistency.Total())
		for _, id := range inconsistency.LocalOnly {
			ops = append(ops, uploadOp(local[id]))
		}
		for _, id := range inconsistency.ServerOnly {
			ops = append(ops, downloadOp(remote[id]))
		}
		for _, id := range inconsistency.Conflicts {
			lp, rp := local[id], remote[id]
			// Strictly newer copy wins; equal timestamps fall to the
			// local copy.
			if rp.UpdatedAt.After(lp.UpdatedAt) {
				ops = append(ops, downloadOp(rp))
			} else {
				ops = append(ops, uploadOp(lp))
			}
		}
		return ops, nil

	case models.StrategyAskUser:
		return nil, fmt.Errorf("%d profiles diverged: %w", inconsistency.Total(), ErrConflictUnresolved)

	default:
		return nil, fmt.Errorf("%q: %w", strategy, ErrUnknownStrategy)
	}
}

func uploadOp(p models.Profile) models.SyncOperation {
	return models.SyncOperation{ProfileID: p.ID, Direction: models.DirectionUpload, Source: p}
}

func downloadOp(p models.Profile) models.SyncOperation {
	return models.SyncOperation{ProfileID: p.ID, Direction: models.DirectionDownload, Source: p}
}
