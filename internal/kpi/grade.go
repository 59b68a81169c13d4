package kpi

import (
	"time"

	"github.com/salestrack/inquiry-api/internal/domain"
)

// Grade thresholds in business hours. A duration equal to a threshold
// earns the better grade.
const (
	QuoteGradeALimit      = 60 * time.Hour
	QuoteGradeBLimit      = 84 * time.Hour
	CompletionGradeALimit = 120 * time.Hour
	CompletionGradeBLimit = 168 * time.Hour
)

// Grade points used by the scorer
const (
	PointsA    = 3
	PointsB    = 2
	PointsC    = -1
	PointsNone = 0

	// MaxPointsPerInquiry is the score of an A grade, the best achievable
	MaxPointsPerInquiry = PointsA
)

// QuoteGrade grades the time from creation to quote.
// A zero or negative duration has no grade.
func QuoteGrade(d time.Duration) *domain.Grade {
	return gradeFor(d, QuoteGradeALimit, QuoteGradeBLimit)
}

// CompletionGrade grades the time from quote to resolution.
// A zero or negative duration has no grade.
func CompletionGrade(d time.Duration) *domain.Grade {
	return gradeFor(d, CompletionGradeALimit, CompletionGradeBLimit)
}

func gradeFor(d, limitA, limitB time.Duration) *domain.Grade {
	var g domain.Grade
	switch {
	case d <= 0:
		return nil
	case d <= limitA:
		g = domain.GradeA
	case d <= limitB:
		g = domain.GradeB
	default:
		g = domain.GradeC
	}
	return &g
}

// Points converts a grade to points; a missing grade is worth nothing
func Points(g *domain.Grade) int {
	if g == nil {
		return PointsNone
	}
	switch *g {
	case domain.GradeA:
		return PointsA
	case domain.GradeB:
		return PointsB
	case domain.GradeC:
		return PointsC
	}
	return PointsNone
}
