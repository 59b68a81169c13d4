package domain

import "time"

// PatchField is an optional field in a partial update. The zero value means
// "leave unchanged"; Set with a nil pointer value clears the column.
type PatchField[T any] struct {
	Value T
	Set   bool
}

// NewPatchField returns a field that will be written
func NewPatchField[T any](v T) PatchField[T] {
	return PatchField[T]{Value: v, Set: true}
}

// InquiryKPIPatch enumerates every inquiry field the KPI engine may write.
// It is produced by the engine and applied by the store in one statement.
type InquiryKPIPatch struct {
	Status          PatchField[InquiryStatus]
	QuotedAt        PatchField[*time.Time]
	SuccessAt       PatchField[*time.Time]
	FailedAt        PatchField[*time.Time]
	QuoteTime       PatchField[*time.Duration]
	ResolutionTime  PatchField[*time.Duration]
	QuoteGrade      PatchField[*Grade]
	CompletionGrade PatchField[*Grade]
	IsLocked        PatchField[bool]
	AutoCompletion  PatchField[bool]
}

// IsEmpty reports whether the patch writes nothing
func (p *InquiryKPIPatch) IsEmpty() bool {
	return p == nil || len(p.Columns()) == 0
}

// Columns returns the set fields keyed by column name
func (p *InquiryKPIPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p == nil {
		return cols
	}
	if p.Status.Set {
		cols["status"] = string(p.Status.Value)
	}
	if p.QuotedAt.Set {
		cols["quoted_at"] = timeValue(p.QuotedAt.Value)
	}
	if p.SuccessAt.Set {
		cols["success_at"] = timeValue(p.SuccessAt.Value)
	}
	if p.FailedAt.Set {
		cols["failed_at"] = timeValue(p.FailedAt.Value)
	}
	if p.QuoteTime.Set {
		cols["quote_time"] = durationValue(p.QuoteTime.Value)
	}
	if p.ResolutionTime.Set {
		cols["resolution_time"] = durationValue(p.ResolutionTime.Value)
	}
	if p.QuoteGrade.Set {
		cols["quote_grade"] = gradeValue(p.QuoteGrade.Value)
	}
	if p.CompletionGrade.Set {
		cols["completion_grade"] = gradeValue(p.CompletionGrade.Value)
	}
	if p.IsLocked.Set {
		cols["is_locked"] = p.IsLocked.Value
	}
	if p.AutoCompletion.Set {
		cols["auto_completion"] = p.AutoCompletion.Value
	}
	return cols
}

// ApplyTo copies the set fields onto an in-memory inquiry
func (p *InquiryKPIPatch) ApplyTo(inq *Inquiry) {
	if p == nil || inq == nil {
		return
	}
	if p.Status.Set {
		inq.Status = p.Status.Value
	}
	if p.QuotedAt.Set {
		inq.QuotedAt = p.QuotedAt.Value
	}
	if p.SuccessAt.Set {
		inq.SuccessAt = p.SuccessAt.Value
	}
	if p.FailedAt.Set {
		inq.FailedAt = p.FailedAt.Value
	}
	if p.QuoteTime.Set {
		inq.QuoteTime = p.QuoteTime.Value
	}
	if p.ResolutionTime.Set {
		inq.ResolutionTime = p.ResolutionTime.Value
	}
	if p.QuoteGrade.Set {
		inq.QuoteGrade = p.QuoteGrade.Value
	}
	if p.CompletionGrade.Set {
		inq.CompletionGrade = p.CompletionGrade.Value
	}
	if p.IsLocked.Set {
		inq.IsLocked = p.IsLocked.Value
	}
	if p.AutoCompletion.Set {
		inq.AutoCompletion = p.AutoCompletion.Value
	}
}

func timeValue(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func durationValue(d *time.Duration) interface{} {
	if d == nil {
		return nil
	}
	return int64(*d)
}

func gradeValue(g *Grade) interface{} {
	if g == nil {
		return nil
	}
	return string(*g)
}
