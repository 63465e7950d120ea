package compiler

import (
	"fmt"
	"math"

	"github.com/flowforge/flowc/pkg/logger"
)

var policyLog = logger.New("compiler:policy")

// defaultInitialInterval is used when a retrying strategy omits
// initialInterval.
const defaultInitialInterval = "1s"

// defaultBackoffCoefficient matches the target runtime's default multiplier.
const defaultBackoffCoefficient = 2.0

// ResolvedRetryPolicy is the concrete retry descriptor the emitters embed
// into generated code. The translator never executes retries itself; the
// target runtime's native retry mechanism interprets these parameters.
type ResolvedRetryPolicy struct {
	// MaxAttempts bounds total attempts. Zero means unbounded, which the
	// target runtime expresses as maximumAttempts: 0.
	MaxAttempts int
	// InitialInterval and MaxInterval are the verbatim duration strings for
	// embedding. MaxInterval is empty when the policy never set one.
	InitialInterval string
	MaxInterval     string
	// InitialIntervalMs and MaxIntervalMs are the parsed values used for
	// backoff arithmetic.
	InitialIntervalMs  int64
	MaxIntervalMs      int64
	BackoffCoefficient float64
}

// Unbounded reports whether the policy retries without an attempt limit.
func (p *ResolvedRetryPolicy) Unbounded() bool {
	return p.MaxAttempts == 0
}

// IntervalForAttempt returns the backoff interval in milliseconds preceding
// attempt n (1-based): min(initial × coefficient^(n-1), max). With no
// MaxInterval the growth is uncapped.
func (p *ResolvedRetryPolicy) IntervalForAttempt(n int) int64 {
	if n < 1 {
		n = 1
	}
	interval := float64(p.InitialIntervalMs) * math.Pow(p.BackoffCoefficient, float64(n-1))
	if p.MaxIntervalMs > 0 && interval > float64(p.MaxIntervalMs) {
		return p.MaxIntervalMs
	}
	if interval > float64(math.MaxInt64) {
		return math.MaxInt64
	}
	return int64(interval)
}

// ResolveRetryPolicy translates a declarative RetryPolicy into concrete
// runtime retry parameters. A nil policy defaults to strategy "none". All
// configuration problems are collected and attributed to nodeID; a non-empty
// error list means the returned policy must be discarded.
func ResolveRetryPolicy(nodeID string, policy *RetryPolicy) (*ResolvedRetryPolicy, []*CompileError) {
	if policy == nil {
		policy = &RetryPolicy{Strategy: RetryNone}
	}
	strategy := policy.Strategy
	if strategy == "" {
		strategy = RetryNone
	}
	policyLog.Printf("Resolving retry policy: node=%s, strategy=%s", nodeID, strategy)

	var errs []*CompileError

	resolved := &ResolvedRetryPolicy{
		InitialInterval:    policy.InitialInterval,
		MaxInterval:        policy.MaxInterval,
		BackoffCoefficient: policy.BackoffCoefficient,
	}
	if resolved.BackoffCoefficient == 0 {
		resolved.BackoffCoefficient = defaultBackoffCoefficient
	} else if resolved.BackoffCoefficient < 1 {
		errs = append(errs, NewConfigurationError(
			nodeID,
			fmt.Sprintf("backoffCoefficient must be at least 1, got %g", policy.BackoffCoefficient),
			"Use a coefficient of 1 for constant intervals or greater for exponential growth",
		))
	}

	switch strategy {
	case RetryNone:
		// First failure is terminal: force a single attempt and no backoff.
		resolved.MaxAttempts = 1
		resolved.InitialInterval = ""
		resolved.MaxInterval = ""
		resolved.BackoffCoefficient = defaultBackoffCoefficient
		return resolved, errs

	case RetryFailAfterX:
		if policy.MaxAttempts <= 0 {
			errs = append(errs, NewConfigurationError(
				nodeID,
				"fail-after-x retry strategy requires a positive maxAttempts",
				"Set maxAttempts to the number of attempts after which the failure becomes terminal",
			))
		}
		resolved.MaxAttempts = policy.MaxAttempts

	case RetryKeepTrying:
		// Unbounded: retried until success or external cancellation.
		resolved.MaxAttempts = 0

	case RetryExponentialBackoff:
		if policy.MaxAttempts <= 0 {
			errs = append(errs, NewConfigurationError(
				nodeID,
				"exponential-backoff retry strategy requires a positive maxAttempts",
				"Set maxAttempts to bound total attempts",
			))
		}
		resolved.MaxAttempts = policy.MaxAttempts

	default:
		errs = append(errs, NewConfigurationError(
			nodeID,
			fmt.Sprintf("unknown retry strategy %q", policy.Strategy),
			"Use one of: none, fail-after-x, keep-trying, exponential-backoff",
		))
		return resolved, errs
	}

	// Interval resolution is shared by every retrying strategy.
	if resolved.InitialInterval == "" {
		resolved.InitialInterval = defaultInitialInterval
	}
	initialMs, err := ParseDuration(resolved.InitialInterval)
	if err != nil {
		errs = append(errs, NewConfigurationError(
			nodeID,
			fmt.Sprintf("invalid initialInterval: %v", err),
			"Use a duration of the form <integer><unit>, e.g. \"5s\" or \"500ms\"",
		))
	}
	resolved.InitialIntervalMs = initialMs

	if resolved.MaxInterval != "" {
		maxMs, err := ParseDuration(resolved.MaxInterval)
		if err != nil {
			errs = append(errs, NewConfigurationError(
				nodeID,
				fmt.Sprintf("invalid maxInterval: %v", err),
				"Use a duration of the form <integer><unit>, e.g. \"1m\"",
			))
		}
		resolved.MaxIntervalMs = maxMs

		// Clamp maxInterval up to initialInterval so the interval sequence
		// never drops below the first attempt.
		if len(errs) == 0 && resolved.MaxIntervalMs < resolved.InitialIntervalMs {
			policyLog.Printf("Clamping maxInterval %s up to initialInterval %s for node %s",
				resolved.MaxInterval, resolved.InitialInterval, nodeID)
			resolved.MaxInterval = resolved.InitialInterval
			resolved.MaxIntervalMs = resolved.InitialIntervalMs
		}
	}

	return resolved, errs
}
