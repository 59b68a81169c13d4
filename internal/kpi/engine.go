package kpi

import (
	"time"

	"github.com/salestrack/inquiry-api/internal/domain"
)

// Engine applies status transitions to inquiries and derives their KPI
// fields. It is pure: every operation validates the in-memory inquiry,
// updates it, and returns the patch the caller must persist. Callers are
// expected to hold a row lock on the inquiry for the duration of the call.
type Engine struct {
	clock *BusinessClock
	now   func() time.Time
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithNow overrides the clock used for default transition timestamps
func WithNow(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine measuring durations with clock
func NewEngine(clock *BusinessClock, opts ...EngineOption) *Engine {
	if clock == nil {
		clock = NewBusinessClock(nil)
	}
	e := &Engine{clock: clock, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Clock returns the business clock used by the engine
func (e *Engine) Clock() *BusinessClock {
	return e.clock
}

// TimestampPrecision is the resolution timestamps are stored with
const TimestampPrecision = time.Microsecond

// Now returns the engine's current time at storage precision
func (e *Engine) Now() time.Time {
	return e.now().Truncate(TimestampPrecision)
}

// Quote moves a pending inquiry to quoted and grades the response time.
// A nil at means now. An already recorded quoted_at is kept.
func (e *Engine) Quote(inq *domain.Inquiry, at *time.Time) (*domain.InquiryKPIPatch, error) {
	if inq.IsLocked {
		return nil, LockedRecord("cannot update locked inquiry")
	}
	if inq.Status != domain.InquiryStatusPending {
		return nil, InvalidTransition("cannot quote an inquiry not in pending status (status is %s)", inq.Status)
	}

	patch := &domain.InquiryKPIPatch{Status: domain.NewPatchField(domain.InquiryStatusQuoted)}
	quotedAt := inq.QuotedAt
	if quotedAt == nil {
		ts := e.timestamp(at)
		quotedAt = &ts
		patch.QuotedAt = domain.NewPatchField(quotedAt)
	}

	if !inq.AutoCompletion {
		qt := e.clock.Duration(&inq.CreatedAt, quotedAt)
		patch.QuoteTime = domain.NewPatchField(&qt)
		patch.QuoteGrade = domain.NewPatchField(e.quoteGrade(inq.CreatedAt, *quotedAt, qt))
	}

	patch.ApplyTo(inq)
	return patch, nil
}

// MarkSuccess resolves a quoted inquiry as won
func (e *Engine) MarkSuccess(inq *domain.Inquiry, at *time.Time) (*domain.InquiryKPIPatch, error) {
	return e.resolve(inq, domain.InquiryStatusSuccess, at)
}

// MarkFailed resolves a quoted inquiry as lost
func (e *Engine) MarkFailed(inq *domain.Inquiry, at *time.Time) (*domain.InquiryKPIPatch, error) {
	return e.resolve(inq, domain.InquiryStatusFailed, at)
}

func (e *Engine) resolve(inq *domain.Inquiry, target domain.InquiryStatus, at *time.Time) (*domain.InquiryKPIPatch, error) {
	if inq.IsLocked {
		return nil, LockedRecord("cannot update locked inquiry")
	}
	if inq.Status != domain.InquiryStatusQuoted {
		return nil, InvalidTransition("cannot mark inquiry as %s: status is %s, expected quoted", target, inq.Status)
	}
	if inq.QuotedAt == nil {
		return nil, InvalidTransition("cannot mark inquiry as %s: quoted_at is not set", target)
	}

	patch := &domain.InquiryKPIPatch{Status: domain.NewPatchField(target)}
	resolvedAt := e.setResolution(inq, patch, target, at)

	if !inq.AutoCompletion {
		rt := e.clock.Duration(inq.QuotedAt, resolvedAt)
		patch.ResolutionTime = domain.NewPatchField(&rt)
		patch.CompletionGrade = domain.NewPatchField(CompletionGrade(rt))
	}

	patch.ApplyTo(inq)
	return patch, nil
}

// setResolution fills the resolution timestamp for target and clears the
// opposite one. It returns the effective resolution time.
func (e *Engine) setResolution(inq *domain.Inquiry, patch *domain.InquiryKPIPatch, target domain.InquiryStatus, at *time.Time) *time.Time {
	var current, opposite *time.Time
	var set, unset *domain.PatchField[*time.Time]
	if target == domain.InquiryStatusSuccess {
		current, opposite = inq.SuccessAt, inq.FailedAt
		set, unset = &patch.SuccessAt, &patch.FailedAt
	} else {
		current, opposite = inq.FailedAt, inq.SuccessAt
		set, unset = &patch.FailedAt, &patch.SuccessAt
	}

	if current == nil {
		ts := e.timestamp(at)
		current = &ts
		*set = domain.NewPatchField(current)
	}
	if opposite != nil {
		*unset = domain.NewPatchField[*time.Time](nil)
	}
	return current
}

// Recalculate recomputes durations and grades from the stored timestamps.
// Locked and auto-completion inquiries are refused unless force is set.
// Only fields whose value differs are included in the patch.
func (e *Engine) Recalculate(inq *domain.Inquiry, force bool) (*domain.InquiryKPIPatch, error) {
	if inq.IsLocked && !force {
		return nil, LockedRecord("cannot recalculate locked inquiry without force")
	}
	if inq.AutoCompletion && !force {
		return nil, &Error{
			Kind:    KindInvalidTransition,
			Message: "cannot recalculate inquiry with auto completion enabled without force",
			cause:   ErrAutoCompletion,
		}
	}

	patch := &domain.InquiryKPIPatch{}

	if inq.QuotedAt != nil {
		qt := e.clock.Duration(&inq.CreatedAt, inq.QuotedAt)
		if !sameDuration(inq.QuoteTime, &qt) {
			patch.QuoteTime = domain.NewPatchField(&qt)
		}
		if g := e.quoteGrade(inq.CreatedAt, *inq.QuotedAt, qt); !sameGrade(inq.QuoteGrade, g) {
			patch.QuoteGrade = domain.NewPatchField(g)
		}
	}

	if resolvedAt := inq.ResolvedAt(); resolvedAt != nil {
		start := inq.QuotedAt
		if start == nil {
			start = &inq.CreatedAt
		}
		rt := e.clock.Duration(start, resolvedAt)
		if !sameDuration(inq.ResolutionTime, &rt) {
			patch.ResolutionTime = domain.NewPatchField(&rt)
		}
		if g := CompletionGrade(rt); !sameGrade(inq.CompletionGrade, g) {
			patch.CompletionGrade = domain.NewPatchField(g)
		}
	}

	patch.ApplyTo(inq)
	return patch, nil
}

// Lock protects the KPI fields from recalculation. Locking a locked inquiry is a no-op.
func (e *Engine) Lock(inq *domain.Inquiry) *domain.InquiryKPIPatch {
	return e.setLocked(inq, true)
}

// Unlock removes the lock. Unlocking an unlocked inquiry is a no-op.
func (e *Engine) Unlock(inq *domain.Inquiry) *domain.InquiryKPIPatch {
	return e.setLocked(inq, false)
}

func (e *Engine) setLocked(inq *domain.Inquiry, locked bool) *domain.InquiryKPIPatch {
	patch := &domain.InquiryKPIPatch{}
	if inq.IsLocked != locked {
		patch.IsLocked = domain.NewPatchField(locked)
	}
	patch.ApplyTo(inq)
	return patch
}

// SetAutoCompletion toggles KPI computation for the inquiry. While enabled,
// transitions record timestamps only.
func (e *Engine) SetAutoCompletion(inq *domain.Inquiry, enabled bool) *domain.InquiryKPIPatch {
	patch := &domain.InquiryKPIPatch{}
	if inq.AutoCompletion != enabled {
		patch.AutoCompletion = domain.NewPatchField(enabled)
	}
	patch.ApplyTo(inq)
	return patch
}

// Transition moves the inquiry to target through the matching operation.
// Requesting the current status is a no-op; any other change outside
// pending->quoted->success|failed is an invalid transition.
func (e *Engine) Transition(inq *domain.Inquiry, target domain.InquiryStatus, at *time.Time) (*domain.InquiryKPIPatch, error) {
	if !target.IsValid() {
		return nil, ValidationError("unknown status %q", target)
	}
	if inq.Status == target {
		return &domain.InquiryKPIPatch{}, nil
	}
	switch {
	case target == domain.InquiryStatusQuoted && inq.Status == domain.InquiryStatusPending:
		return e.Quote(inq, at)
	case target == domain.InquiryStatusSuccess && inq.Status == domain.InquiryStatusQuoted:
		return e.MarkSuccess(inq, at)
	case target == domain.InquiryStatusFailed && inq.Status == domain.InquiryStatusQuoted:
		return e.MarkFailed(inq, at)
	}
	if inq.IsLocked {
		return nil, LockedRecord("cannot update locked inquiry")
	}
	return nil, InvalidTransition("cannot change status from %s to %s", inq.Status, target)
}

// Backfill completes an inquiry that is being created directly at a
// non-pending status so that its timestamps and grades are consistent:
//   - a missing quoted_at becomes created_at, an immediate quote graded A
//   - a missing resolution timestamp for success/failed becomes now and the
//     opposite one is cleared
//   - resolution time is measured from quoted_at
//
// Auto-completion inquiries receive timestamps only. Pending inquiries are
// left untouched.
func (e *Engine) Backfill(inq *domain.Inquiry) *domain.InquiryKPIPatch {
	patch := &domain.InquiryKPIPatch{}
	if inq.Status == "" || inq.Status == domain.InquiryStatusPending {
		return patch
	}

	if inq.QuotedAt == nil {
		quotedAt := inq.CreatedAt
		patch.QuotedAt = domain.NewPatchField(&quotedAt)
	}

	switch inq.Status {
	case domain.InquiryStatusSuccess, domain.InquiryStatusFailed:
		e.setResolution(inq, patch, inq.Status, nil)
	case domain.InquiryStatusQuoted:
		if inq.SuccessAt != nil {
			patch.SuccessAt = domain.NewPatchField[*time.Time](nil)
		}
		if inq.FailedAt != nil {
			patch.FailedAt = domain.NewPatchField[*time.Time](nil)
		}
	}
	patch.ApplyTo(inq)

	if inq.AutoCompletion {
		return patch
	}

	qt := e.clock.Duration(&inq.CreatedAt, inq.QuotedAt)
	patch.QuoteTime = domain.NewPatchField(&qt)
	patch.QuoteGrade = domain.NewPatchField(e.quoteGrade(inq.CreatedAt, *inq.QuotedAt, qt))

	if resolvedAt := inq.ResolvedAt(); resolvedAt != nil {
		rt := e.clock.Duration(inq.QuotedAt, resolvedAt)
		patch.ResolutionTime = domain.NewPatchField(&rt)
		patch.CompletionGrade = domain.NewPatchField(CompletionGrade(rt))
	}
	patch.ApplyTo(inq)
	return patch
}

// quoteGrade grades a quote; a quote recorded at the creation instant
// itself counts as immediate and earns an A.
func (e *Engine) quoteGrade(createdAt, quotedAt time.Time, qt time.Duration) *domain.Grade {
	if quotedAt.Equal(createdAt) {
		g := domain.GradeA
		return &g
	}
	return QuoteGrade(qt)
}

func (e *Engine) timestamp(at *time.Time) time.Time {
	if at != nil {
		return at.Truncate(TimestampPrecision)
	}
	return e.Now()
}

func sameDuration(a, b *time.Duration) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameGrade(a, b *domain.Grade) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
