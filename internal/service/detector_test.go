package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkotlyar/go-host-keeper/models"
)

// ---- Helpers ----

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// prof is a shorthand profile constructor used only in tests. The id byte
// seeds a deterministic UUID so expectations can name profiles by number.
func prof(id byte, name string, updatedAt time.Time) models.Profile {
	return models.Profile{
		ID:              uuid.UUID{id},
		Name:            name,
		Host:            "host-" + name + ".example.com",
		Port:            22,
		Username:        "deploy",
		AuthMethod:      models.AuthPassword,
		EncryptedSecret: models.EncryptedSecret("sealed-" + name),
		UpdatedAt:       updatedAt,
	}
}

func snap(profiles ...models.Profile) models.Snapshot {
	return models.SnapshotOf(profiles)
}

// ---- Detect classification ----

func TestInconsistencyDetector_Detect_Classification(t *testing.T) {
	d := NewInconsistencyDetector()

	p1 := prof(1, "alpha", baseTime)
	p2 := prof(2, "beta", baseTime)
	p3local := prof(3, "gamma", baseTime.Add(time.Hour))
	p3remote := prof(3, "gamma-edited", baseTime)

	tests := []struct {
		name     string
		local    models.Snapshot
		remote   models.Snapshot
		want     models.Inconsistency
		wantKind models.InconsistencyKind
	}{
		{
			name:     "BothEmpty → None",
			local:    snap(),
			remote:   snap(),
			want:     models.Inconsistency{},
			wantKind: models.InconsistencyNone,
		},
		{
			name:     "IdenticalSets → None",
			local:    snap(p1, p2),
			remote:   snap(p1, p2),
			want:     models.Inconsistency{},
			wantKind: models.InconsistencyNone,
		},
		{
			name:     "LocalOnly",
			local:    snap(p1),
			remote:   snap(),
			want:     models.Inconsistency{LocalOnly: []uuid.UUID{p1.ID}},
			wantKind: models.InconsistencyLocalOnly,
		},
		{
			name:     "ServerOnly",
			local:    snap(),
			remote:   snap(p2),
			want:     models.Inconsistency{ServerOnly: []uuid.UUID{p2.ID}},
			wantKind: models.InconsistencyServerOnly,
		},
		{
			name:     "SameIDDifferingContent → Conflicts",
			local:    snap(p3local),
			remote:   snap(p3remote),
			want:     models.Inconsistency{Conflicts: []uuid.UUID{p3local.ID}},
			wantKind: models.InconsistencyConflicts,
		},
		{
			// Scenario E from the sync contract: one local-only, one
			// server-only, one conflicting id.
			name:   "AllThreeCategories → Mixed",
			local:  snap(p1, p3local),
			remote: snap(p2, p3remote),
			want: models.Inconsistency{
				LocalOnly:  []uuid.UUID{p1.ID},
				ServerOnly: []uuid.UUID{p2.ID},
				Conflicts:  []uuid.UUID{p3local.ID},
			},
			wantKind: models.InconsistencyMixed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.local, tt.remote)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantKind, got.Kind())
		})
	}
}

// TestInconsistencyDetector_Detect_SelfIsAlwaysNone pins detect(S, S) == none
// for a variety of snapshots, including ones with many profiles.
func TestInconsistencyDetector_Detect_SelfIsAlwaysNone(t *testing.T) {
	d := NewInconsistencyDetector()

	snapshots := []models.Snapshot{
		snap(),
		snap(prof(1, "a", baseTime)),
		snap(prof(1, "a", baseTime), prof(2, "b", baseTime.Add(time.Minute)), prof(3, "c", baseTime)),
	}

	for _, s := range snapshots {
		got := d.Detect(s, s)
		assert.True(t, got.IsNone(), "detect(S, S) must be none for %d profiles", len(s))
	}
}

// TestInconsistencyDetector_Detect_CategorySymmetry verifies that swapping
// the arguments swaps the one-sided categories and keeps conflicts stable.
func TestInconsistencyDetector_Detect_CategorySymmetry(t *testing.T) {
	d := NewInconsistencyDetector()

	a := snap(prof(1, "a", baseTime), prof(3, "shared-a", baseTime))
	b := snap(prof(2, "b", baseTime), prof(3, "shared-b", baseTime))

	forward := d.Detect(a, b)
	backward := d.Detect(b, a)

	require.Equal(t, forward.LocalOnly, backward.ServerOnly)
	require.Equal(t, forward.ServerOnly, backward.LocalOnly)
	require.Equal(t, forward.Conflicts, backward.Conflicts)
}

// TestInconsistencyDetector_Detect_TouchCountsAsConflict pins the equality
// rule: an UpdatedAt change with identical content is still a difference,
// because it signals that a write occurred.
func TestInconsistencyDetector_Detect_TouchCountsAsConflict(t *testing.T) {
	d := NewInconsistencyDetector()

	p := prof(7, "touched", baseTime)
	touched := p
	touched.UpdatedAt = baseTime.Add(time.Second)

	got := d.Detect(snap(p), snap(touched))
	assert.Equal(t, models.InconsistencyConflicts, got.Kind())
	assert.Equal(t, []uuid.UUID{p.ID}, got.Conflicts)
}
