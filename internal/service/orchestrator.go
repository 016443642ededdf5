package service

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vkotlyar/go-host-keeper/internal/adapter"
	"github.com/vkotlyar/go-host-keeper/internal/crypto"
	"github.com/vkotlyar/go-host-keeper/internal/logger"
	"github.com/vkotlyar/go-host-keeper/internal/store"
	"github.com/vkotlyar/go-host-keeper/models"
)

// maxParallelOps caps how many convergence operations run concurrently
// within one pass. Operations target disjoint profile IDs, so they are
// independent; the cap only bounds network and store pressure.
const maxParallelOps = 4

// pendingConflict is the inconsistency parked by an askUser pass, together
// with the snapshots it was detected on. ResolveConflict replays exactly
// these; it never re-reads the replicas.
type pendingConflict struct {
	inconsistency models.Inconsistency
	local         models.Snapshot
	remote        models.Snapshot
}

type syncOrchestrator struct {
	local    store.ProfileStore
	remote   adapter.RemoteProfileClient
	detector InconsistencyDetector
	resolver ConflictResolver
	states   *SyncStateStore
	config   SyncConfigProvider
	logger   *logger.Logger

	// mu guards the concurrency gate: waiters is non-nil exactly while a
	// pass is in flight, and pending holds a parked conflict between
	// passes. The state store is written under mu so that gate decisions
	// and observable state never disagree.
	mu      sync.Mutex
	waiters []chan models.SyncState
	pending *pendingConflict
}

// NewSyncOrchestrator wires a [SyncOrchestrator] from its collaborators.
// The orchestrator owns the state store's writes; everything else is
// injected so tests can substitute fakes and several orchestrators (e.g.
// per account) can coexist.
func NewSyncOrchestrator(
	local store.ProfileStore,
	remote adapter.RemoteProfileClient,
	config SyncConfigProvider,
	log *logger.Logger,
) SyncOrchestrator {
	return &syncOrchestrator{
		local:    local,
		remote:   remote,
		detector: NewInconsistencyDetector(),
		resolver: NewConflictResolver(),
		states:   NewSyncStateStore(),
		config:   config,
		logger:   log,
	}
}

// States implements [SyncOrchestrator].
func (o *syncOrchestrator) States() *SyncStateStore {
	return o.states
}

// PerformSync implements [SyncOrchestrator]. The first caller starts the
// pass; callers arriving while it runs are coalesced onto it and receive
// the same terminal state, so a pull-to-refresh racing the auto-sync timer
// costs one network round-trip, not two. Starting a pass abandons any
// parked conflict: the fresh detection supersedes it.
func (o *syncOrchestrator) PerformSync(ctx context.Context, override models.SyncStrategy) <-chan models.SyncState {
	ch := make(chan models.SyncState, 1)

	o.mu.Lock()
	if o.waiters != nil {
		o.waiters = append(o.waiters, ch)
		o.mu.Unlock()
		return ch
	}
	o.waiters = []chan models.SyncState{ch}
	o.pending = nil
	o.states.Set(models.SyncStateSyncing())
	o.mu.Unlock()

	go o.runPass(ctx, override)
	return ch
}

// ResolveConflict implements [SyncOrchestrator].
func (o *syncOrchestrator) ResolveConflict(ctx context.Context, strategy models.SyncStrategy) (<-chan models.SyncState, error) {
	if !strategy.IsValid() {
		return nil, ErrUnknownStrategy
	}

	ch := make(chan models.SyncState, 1)

	o.mu.Lock()
	if o.pending == nil || o.waiters != nil {
		o.mu.Unlock()
		return nil, ErrNoPendingConflict
	}
	pc := o.pending
	o.pending = nil
	o.waiters = []chan models.SyncState{ch}
	o.states.Set(models.SyncStateSyncing())
	o.mu.Unlock()

	go func() {
		startedAt := time.Now()
		o.finish(o.resolveAndExecute(ctx, pc.inconsistency, strategy, pc.local, pc.remote, startedAt))
	}()
	return ch, nil
}

// Acknowledge implements [SyncOrchestrator].
func (o *syncOrchestrator) Acknowledge() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.waiters != nil {
		return
	}
	switch o.states.Current().Kind {
	case models.SyncSuccess, models.SyncError, models.SyncConflictPending:
		o.pending = nil
		o.states.Set(models.SyncStateIdle())
	}
}

// runPass executes steps 3–7 of a pass: read both snapshots, detect,
// resolve, execute, report. A failed snapshot read aborts the whole pass
// into the error state before any operation is computed.
func (o *syncOrchestrator) runPass(ctx context.Context, override models.SyncStrategy) {
	startedAt := time.Now()
	log := o.logger

	// Config is read once per pass; edits apply from the next pass on.
	strategy := override
	if strategy == "" {
		strategy = o.config().DefaultStrategy
	}

	localSnap, err := o.local.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("sync pass aborted: local snapshot read failed")
		o.finish(models.SyncStateError("load local profiles: " + err.Error()))
		return
	}

	remoteSnap, err := o.remote.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("sync pass aborted: server snapshot read failed")
		o.finish(models.SyncStateError("load server profiles: " + err.Error()))
		return
	}

	inconsistency := o.detector.Detect(localSnap, remoteSnap)
	log.Debug().
		Str("kind", string(inconsistency.Kind())).
		Int("local_only", len(inconsistency.LocalOnly)).
		Int("server_only", len(inconsistency.ServerOnly)).
		Int("conflicts", len(inconsistency.Conflicts)).
		Msg("sync snapshots compared")

	if inconsistency.IsNone() {
		o.finish(models.SyncStateSuccess(models.SyncResult{
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Strategy:  strategy,
			Succeeded: []uuid.UUID{},
			Before:    inconsistency,
		}))
		return
	}

	o.finish(o.resolveAndExecute(ctx, inconsistency, strategy, localSnap, remoteSnap, startedAt))
}

// resolveAndExecute runs strategy resolution and, if resolvable, the full
// operation set. The operation set is computed completely before the first
// write; an unresolvable or invalid strategy therefore never leaves a
// half-applied pass behind.
func (o *syncOrchestrator) resolveAndExecute(
	ctx context.Context,
	inconsistency models.Inconsistency,
	strategy models.SyncStrategy,
	localSnap, remoteSnap models.Snapshot,
	startedAt time.Time,
) models.SyncState {
	ops, err := o.resolver.Resolve(inconsistency, strategy, localSnap, remoteSnap)
	if errors.Is(err, ErrConflictUnresolved) {
		o.mu.Lock()
		o.pending = &pendingConflict{inconsistency: inconsistency, local: localSnap, remote: remoteSnap}
		o.mu.Unlock()
		o.logger.Info().Int("profiles", inconsistency.Total()).Msg("sync parked: waiting for strategy choice")
		return models.SyncStateConflictPending(inconsistency)
	}
	if err != nil {
		o.logger.Error().Err(err).Msg("sync pass aborted: strategy resolution failed")
		return models.SyncStateError("resolve strategy: " + err.Error())
	}

	// Past this point the pass must not be interrupted: writes are
	// idempotent and partial completion is safely resumable, but an
	// aborted set would be indistinguishable from a partial failure.
	result := o.execute(context.WithoutCancel(ctx), ops, strategy, inconsistency, startedAt)

	o.logger.Info().
		Str("strategy", strategy.String()).
		Int("succeeded", len(result.Succeeded)).
		Int("failed", len(result.Failed)).
		Dur("duration", result.Duration).
		Msg("sync pass finished")

	return models.SyncStateSuccess(result)
}

// execute applies every operation and folds the per-operation outcomes into
// a [models.SyncResult]. Operations run concurrently up to maxParallelOps;
// one profile's failure never blocks or rolls back another profile's
// already-applied write.
func (o *syncOrchestrator) execute(
	ctx context.Context,
	ops []models.SyncOperation,
	strategy models.SyncStrategy,
	inconsistency models.Inconsistency,
	startedAt time.Time,
) models.SyncResult {
	var (
		mu        sync.Mutex
		succeeded = make([]uuid.UUID, 0, len(ops))
		failed    []models.FailedOperation
	)

	sem := make(chan struct{}, maxParallelOps)
	var wg sync.WaitGroup
	for _, op := range ops {
		wg.Add(1)
		go func(op models.SyncOperation) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			err := o.apply(ctx, op)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				o.logger.Warn().
					Err(err).
					Str("profile_id", op.ProfileID.String()).
					Str("direction", string(op.Direction)).
					Msg("sync operation failed")
				failed = append(failed, models.FailedOperation{
					ProfileID: op.ProfileID,
					Kind:      classifyOperationError(op.Direction, err),
					Message:   err.Error(),
				})
				return
			}
			succeeded = append(succeeded, op.ProfileID)
		}(op)
	}
	wg.Wait()

	sortIDs(succeeded)
	sort.Slice(failed, func(i, j int) bool {
		return bytes.Compare(failed[i].ProfileID[:], failed[j].ProfileID[:]) < 0
	})

	return models.SyncResult{
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Strategy:  strategy,
		Succeeded: succeeded,
		Failed:    failed,
		Before:    inconsistency,
	}
}

// apply dispatches one operation to the replica its direction targets.
func (o *syncOrchestrator) apply(ctx context.Context, op models.SyncOperation) error {
	switch op.Direction {
	case models.DirectionUpload:
		return o.remote.Upsert(ctx, op.Source)
	case models.DirectionDownload:
		return o.local.Upsert(ctx, op.Source)
	case models.DirectionDeleteRemote:
		return o.remote.Delete(ctx, op.ProfileID)
	case models.DirectionDeleteLocal:
		return o.local.Delete(ctx, op.ProfileID)
	default:
		return ErrUnknownStrategy
	}
}

// finish publishes the terminal state and releases every coalesced waiter.
func (o *syncOrchestrator) finish(state models.SyncState) {
	o.mu.Lock()
	waiters := o.waiters
	o.waiters = nil
	o.states.Set(state)
	o.mu.Unlock()

	for _, ch := range waiters {
		ch <- state
		close(ch)
	}
}

// classifyOperationError maps a failed operation to its error category:
// cipher failures first, then network for remote-side operations and store
// for local-side ones.
func classifyOperationError(direction models.SyncDirection, err error) models.OperationErrorKind {
	if errors.Is(err, crypto.ErrCipher) {
		return models.OperationErrorEncryption
	}
	switch direction {
	case models.DirectionUpload, models.DirectionDeleteRemote:
		return models.OperationErrorNetwork
	default:
		return models.OperationErrorStore
	}
}
