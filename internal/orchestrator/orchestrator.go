package orchestrator

import (
	"context"
	"time"

	"codeberg.org/wayfare/server/internal/cache"
	"codeberg.org/wayfare/server/internal/logger"
	"codeberg.org/wayfare/server/internal/providers"
	"codeberg.org/wayfare/server/internal/tiers"
)

// Orchestrator owns the phase topology: Phase 1 dispatches the creative
// and validator providers concurrently, Phase 2 runs supervisory QA for
// entitled tiers, and failures past Phase 1 fall back to the Phase 1
// result. All provider clients are constructor-injected; there is no
// process-wide client state.
type Orchestrator struct {
	creative   providers.Adapter
	validator  providers.Adapter
	supervisor providers.Adapter
	flags      tiers.FeatureFlags
	cache      ResultCache
	timeouts   Timeouts
}

func New(creative, validator, supervisor providers.Adapter, flags tiers.FeatureFlags, timeouts Timeouts) *Orchestrator {
	return &Orchestrator{
		creative:   creative,
		validator:  validator,
		supervisor: supervisor,
		flags:      flags,
		timeouts:   timeouts,
	}
}

// attaches a result cache; without one every call goes to the providers
func (o *Orchestrator) SetCache(c ResultCache) {
	o.cache = c
}

// NewRequest stamps an attempt with its identity and overall deadline
func (o *Orchestrator) NewRequest(requestID, userID string, tier tiers.Tier, params providers.Params) Request {
	return Request{
		RequestID: requestID,
		UserID:    userID,
		Tier:      tier,
		Params:    params,
		Deadline:  time.Now().Add(o.timeouts.MaxBudget()),
	}
}

// Generate runs one attempt to terminal state without progress reporting
func (o *Orchestrator) Generate(ctx context.Context, req Request) Result {
	return o.GenerateWithProgress(ctx, req, nil)
}

// GenerateWithProgress runs one attempt, invoking notify at each lifecycle
// transition. The returned Result is terminal: creative failure yields
// Success=false, supervisor failure yields the Phase 1 result with
// FallbackUsed=true.
func (o *Orchestrator) GenerateWithProgress(ctx context.Context, req Request, notify ProgressFunc) Result {
	start := time.Now()

	if req.Deadline.IsZero() {
		req.Deadline = start.Add(o.timeouts.MaxBudget())
	}

	emit := func(phase Phase) {
		if notify != nil {
			notify(phase)
		}
	}

	emit(PhaseStarted)

	phase1 := o.runPhase1(ctx, req, emit)

	if !phase1.creative.Succeeded {
		// no usable payload exists, so there is nothing to fall back to
		logger.Warn("creative generation failed",
			"request_id", req.RequestID,
			"user_id", req.UserID,
			"reason", phase1.creative.FailureReason,
			"latency_ms", phase1.creative.Latency.Milliseconds(),
		)

		emit(PhaseAssembling)

		return Result{
			Success:       false,
			FailureReason: phase1.creative.FailureReason,
			Metrics: Metrics{
				TotalLatencyMs: time.Since(start).Milliseconds(),
				ProvidersUsed:  []providers.Role{},
				CacheHits:      phase1.cacheHits,
			},
		}
	}

	data := phase1.creative.Payload
	report := phase1.report
	providersUsed := []providers.Role{providers.RoleCreative}

	if report != nil {
		providersUsed = append(providersUsed, providers.RoleValidator)
	}

	fallbackUsed := false

	// a cached entry was written after its own supervision pass for this
	// tier, so its report is already the authoritative one; a hit never
	// re-spends a supervisor call
	if phase1.cacheHits == 0 && o.flags.Phase2EnabledForTier(req.Tier) {
		emit(Phase2Dispatched)

		supervised := o.runPhase2(ctx, req, data, report)

		emit(Phase2Completed)

		if supervised.Succeeded {
			// the supervisor's payload and report supersede Phase 1's
			data = supervised.Payload
			report = supervised.Report
			providersUsed = append(providersUsed, providers.RoleSupervisor)
		} else {
			// never fatal: a usable Phase 1 result already exists
			fallbackUsed = true

			logger.Warn("supervisor failed, keeping phase 1 result",
				"request_id", req.RequestID,
				"reason", supervised.FailureReason,
				"latency_ms", supervised.Latency.Milliseconds(),
			)
		}
	}

	emit(PhaseAssembling)

	if o.cache != nil && phase1.cacheHits == 0 {
		o.cache.Set(ctx, req.Tier, req.Params, cache.Entry{
			Itinerary: data,
			Report:    report,
		})
	}

	return Result{
		Success:      true,
		Data:         data,
		QualityScore: scoreFromReport(report),
		Report:       report,
		FallbackUsed: fallbackUsed,
		Metrics: Metrics{
			TotalLatencyMs: time.Since(start).Milliseconds(),
			ProvidersUsed:  providersUsed,
			CacheHits:      phase1.cacheHits,
		},
	}
}

// outcome of Phase 1: the creative result plus whichever validation
// signal arrived in time
type phase1Outcome struct {
	creative  providers.Result
	report    *providers.ValidationReport
	cacheHits int
}

// dispatches the creative and validator adapters concurrently under one
// phase deadline. The creative result decides phase completion; a
// validator still running afterwards gets a bounded grace period, and a
// missing validation result is not a failure.
func (o *Orchestrator) runPhase1(ctx context.Context, req Request, emit ProgressFunc) phase1Outcome {
	// a cache hit short-circuits the provider calls but keeps the
	// caller-visible accounting of a fresh call
	if o.cache != nil {
		if entry := o.cache.Get(ctx, req.Tier, req.Params); entry != nil {
			emit(Phase1Dispatched)
			emit(Phase1Completed)

			return phase1Outcome{
				creative: providers.Result{
					Role:      providers.RoleCreative,
					Succeeded: true,
					Payload:   entry.Itinerary,
				},
				report:    entry.Report,
				cacheHits: 1,
			}
		}
	}

	deadline := time.Now().Add(o.timeouts.Phase1)
	if req.Deadline.Before(deadline) {
		deadline = req.Deadline
	}

	phaseCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	creativeCh := make(chan providers.Result, 1)
	validatorCh := make(chan providers.Result, 1)

	go func() {
		creativeCh <- o.creative.Invoke(phaseCtx, req.Params)
	}()

	go func() {
		validatorCh <- o.validator.Invoke(phaseCtx, req.Params)
	}()

	emit(Phase1Dispatched)

	creative := <-creativeCh

	logger.Debug("creative adapter returned",
		"request_id", req.RequestID,
		"succeeded", creative.Succeeded,
		"latency_ms", creative.Latency.Milliseconds(),
	)

	outcome := phase1Outcome{creative: creative}

	if !creative.Succeeded {
		emit(Phase1Completed)
		return outcome
	}

	// the validator had the whole phase so far; give it a short grace
	// period past the creative result before moving on without it
	grace := time.NewTimer(o.timeouts.ValidatorGrace)
	defer grace.Stop()

	select {
	case validation := <-validatorCh:
		if validation.Succeeded {
			outcome.report = validation.Report
		} else {
			logger.Debug("validator failed, continuing without preliminary report",
				"request_id", req.RequestID,
				"reason", validation.FailureReason,
			)
		}
	case <-grace.C:
		logger.Debug("validator missed the grace period",
			"request_id", req.RequestID,
		)
	case <-phaseCtx.Done():
	}

	emit(Phase1Completed)

	return outcome
}

// runs the supervisor under its own deadline, derived from the remaining
// overall budget so a slow Phase 1 shortens Phase 2 rather than letting
// total time grow unbounded
func (o *Orchestrator) runPhase2(ctx context.Context, req Request, draft *providers.Itinerary, preliminary *providers.ValidationReport) providers.Result {
	deadline := time.Now().Add(o.timeouts.Phase2)
	if req.Deadline.Before(deadline) {
		deadline = req.Deadline
	}

	phaseCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	params := req.Params
	params.Draft = draft
	params.Preliminary = preliminary

	return o.supervisor.Invoke(phaseCtx, params)
}
