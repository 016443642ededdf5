package service

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
	"github.com/vkotlyar/go-host-keeper/models"
)

// inconsistencyDetector is the concrete implementation of
// [InconsistencyDetector]. It performs a purely in-memory comparison of two
// snapshots; no storage layer or logger is required because the operation is
// stateless and produces no side effects.
type inconsistencyDetector struct{}

// NewInconsistencyDetector constructs an [InconsistencyDetector] ready for
// use. No dependencies are needed.
func NewInconsistencyDetector() InconsistencyDetector {
	return &inconsistencyDetector{}
}

// Detect implements [InconsistencyDetector].
//
// Two linear passes classify every profile ID into exactly one category:
//
//   - Pass 1 (over local): IDs absent from remote are local-only; IDs
//     present on both sides with differing content are conflicts.
//   - Pass 2 (over remote): IDs absent from local are server-only.
//
// Category slices are sorted by ID so that equal snapshot pairs always
// produce byte-identical results.
func (d *inconsistencyDetector) Detect(local, remote models.Snapshot) models.Inconsistency {
	var inc models.Inconsistency

	for id, lp := range local {
		rp, onRemote := remote[id]
		if !onRemote {
			inc.LocalOnly = append(inc.LocalOnly, id)
			continue
		}
		if !lp.Equal(rp) {
			inc.Conflicts = append(inc.Conflicts, id)
		}
	}

	for id := range remote {
		if _, onLocal := local[id]; !onLocal {
			inc.ServerOnly = append(inc.ServerOnly, id)
		}
	}

	sortIDs(inc.LocalOnly)
	sortIDs(inc.ServerOnly)
	sortIDs(inc.Conflicts)

	return inc
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
}
