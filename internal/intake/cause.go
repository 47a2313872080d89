package intake

import "github.com/triageai/triage/internal/model"

// CauseTracker enforces last-issued-wins semantics for asynchronous cause
// validation. Every remote call is tagged with a sequence number from Begin;
// a response is applied only while its sequence is still the most recently
// issued one, so an in-flight response for stale text can never overwrite the
// state belonging to fresher input.
type CauseTracker struct {
	seq         uint64
	latest      uint64
	result      *model.CauseValidationResult
	unavailable bool
}

// Begin issues a sequence number for a new validation request and supersedes
// any earlier in-flight request.
func (t *CauseTracker) Begin() uint64 {
	t.seq++
	t.latest = t.seq
	return t.seq
}

// Apply stores the result for the given request if it is still the latest.
// It reports whether the result was applied; stale results are discarded.
func (t *CauseTracker) Apply(seq uint64, res model.CauseValidationResult) bool {
	if seq != t.latest {
		return false
	}
	r := res
	t.result = &r
	t.unavailable = false
	return true
}

// Fail records a transport failure for the given request. Unavailability is
// surfaced but does not block step advancement; only an explicit invalid
// result does.
func (t *CauseTracker) Fail(seq uint64) bool {
	if seq != t.latest {
		return false
	}
	t.result = nil
	t.unavailable = true
	return true
}

// Clear drops any result and pending intent, returning the tracker to the
// no-opinion state. Used when the text becomes too short to validate.
func (t *CauseTracker) Clear() {
	t.latest = 0
	t.result = nil
	t.unavailable = false
}

// Result returns the most recent applied result, or nil when there is none.
func (t *CauseTracker) Result() *model.CauseValidationResult { return t.result }

// Unavailable reports whether the last validation attempt failed in transport.
func (t *CauseTracker) Unavailable() bool { return t.unavailable }

// Blocks reports whether the tracker should block advancing past
// Demographics: only an explicit invalid result blocks.
func (t *CauseTracker) Blocks() bool {
	return t.result != nil && !t.result.IsValid
}

// BlockMessage returns the message to surface when Blocks is true.
func (t *CauseTracker) BlockMessage() string {
	if t.result == nil || t.result.IsValid {
		return ""
	}
	if t.result.Message != "" {
		return t.result.Message
	}
	return "mechanism of injury failed validation"
}
