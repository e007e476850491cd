package services

import (
	"fmt"

	"github.com/floodops/pafs/modules/projects/domain/project"
	"github.com/floodops/pafs/pkg/serrors"
)

// The fiscal year rolls over in April: year Y spans April(Y) to March(Y+1),
// so April is the pivot month for both window boundaries.
const fiscalPivotMonth = 4

const (
	CodeTimelineBeforeStart = "TIMELINE_BEFORE_START"
	CodeTimelineAfterEnd    = "TIMELINE_AFTER_END"
	CodeTimelineAfterStart  = "TIMELINE_AFTER_START"
	CodeTimelineInvalid     = "TIMELINE_INVALID"
)

// beforePivot reports whether (year, month) falls strictly before April of
// pivotYear, comparing lexicographically on (year, month).
func beforePivot(month, year, pivotYear int) bool {
	if year != pivotYear {
		return year < pivotYear
	}
	return month < fiscalPivotMonth
}

// CheckTimelineBoundary validates one milestone month/year pair against the
// project's fiscal window. Early-start milestones must fall strictly before
// April of the start year; all other milestones must fall within
// [April(startYear), March(endYear)], with April of the end year already out
// of range. Returns nil when valid.
func CheckTimelineBoundary(field string, month, year int, startFY, endFY int, earlyStart bool) *serrors.Error {
	if month < 1 || month > 12 {
		return serrors.Validation(CodeTimelineInvalid,
			fmt.Sprintf("month must be between 1 and 12, got %d", month), field)
	}

	if earlyStart {
		if !beforePivot(month, year, startFY) {
			return serrors.Validation(CodeTimelineAfterStart,
				fmt.Sprintf("early start must fall before April %d", startFY), field)
		}
		return nil
	}

	if beforePivot(month, year, startFY) {
		return serrors.Validation(CodeTimelineBeforeStart,
			fmt.Sprintf("date must not fall before April %d", startFY), field)
	}
	if !beforePivot(month, year, endFY) {
		return serrors.Validation(CodeTimelineAfterEnd,
			fmt.Sprintf("date must not fall after March %d", endFY), field)
	}
	return nil
}

// ValidateTimeline runs the boundary check for every milestone pair of the
// level that the payload carries, against the committed fiscal window.
// Fiscal years are fixed at creation, so callers pass the stored years.
func ValidateTimeline(level project.Level, payload project.Payload, startFY, endFY int) *serrors.Error {
	for _, pair := range project.TimelineMilestones(level) {
		month, okM := payload.Int(pair.MonthField)
		year, okY := payload.Int(pair.YearField)
		if !okM || !okY {
			continue
		}
		if err := CheckTimelineBoundary(pair.MonthField, int(month), int(year), startFY, endFY, pair.EarlyStart); err != nil {
			return err
		}
	}
	return nil
}
