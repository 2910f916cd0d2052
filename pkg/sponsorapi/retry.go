package sponsorapi

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// RetryPolicy controls how many attempts a request gets and how long to wait
// between them. The delay doubles after every failed attempt.
type RetryPolicy struct {
	// MaxAttempts counts every attempt, including the first.
	MaxAttempts  int
	InitialDelay time.Duration
}

// DefaultRetryPolicy returns three attempts starting at a one second delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultMaxAttempts, InitialDelay: DefaultInitialDelay}
}

type retryState struct {
	attemptsRemaining int
	currentDelay      time.Duration
}

type sleepFunc func(ctx context.Context, d time.Duration) error

// sleepWithContext waits for d or until ctx is done.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type retryController struct {
	policy RetryPolicy
	sleep  sleepFunc
	logger Logger
}

func newRetryController(policy RetryPolicy, sleep sleepFunc, l Logger) *retryController {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.InitialDelay < 0 {
		policy.InitialDelay = 0
	}
	if sleep == nil {
		sleep = sleepWithContext
	}
	return &retryController{policy: policy, sleep: sleep, logger: l}
}

// run calls op until it succeeds, fails with a non-retryable error, or the
// attempts are exhausted. The last error is returned unchanged.
func (r *retryController) run(ctx context.Context, op func(ctx context.Context, attempt int) (*Result, error)) (*Result, error) {
	state := retryState{
		attemptsRemaining: r.policy.MaxAttempts,
		currentDelay:      r.policy.InitialDelay,
	}

	for attempt := 1; ; attempt++ {
		state.attemptsRemaining--
		res, err := op(ctx, attempt)
		if err == nil {
			return res, nil
		}
		if !shouldRetry(err) || state.attemptsRemaining <= 0 {
			return nil, err
		}

		r.logger.Debugf("Attempt %d failed (%v), retrying in %s", attempt, err, state.currentDelay)
		if sleepErr := r.sleep(ctx, state.currentDelay); sleepErr != nil {
			return nil, err
		}
		state.currentDelay *= backoffMultiplier
	}
}

// shouldRetry reports whether a failed attempt is worth repeating. Credential
// and permission failures are final, as are failures the caller caused.
func shouldRetry(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	switch apiErr.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return false
	}
	if errors.Is(apiErr, ErrCanceled) || errors.Is(apiErr, ErrInvalidRequest) {
		return false
	}
	return true
}
