package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/floodops/pafs/modules/projects/domain/project"
)

// Window for financialStartYear=2025, financialEndYear=2026: April 2025
// through March 2026, with April of the end year already out of range.
func TestCheckTimelineBoundary_RegularMilestone(t *testing.T) {
	cases := []struct {
		name        string
		month, year int
		wantCode    string
	}{
		{"march before window", 3, 2025, CodeTimelineBeforeStart},
		{"april opens window", 4, 2025, ""},
		{"march closes window", 3, 2026, ""},
		{"april of end year is out", 4, 2026, CodeTimelineAfterEnd},
		{"march of the following year is out", 3, 2027, CodeTimelineAfterEnd},
		{"year before", 12, 2024, CodeTimelineBeforeStart},
		{"year after", 1, 2028, CodeTimelineAfterEnd},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckTimelineBoundary("awardContractMonth", tc.month, tc.year, 2025, 2026, false)
			if tc.wantCode == "" {
				require.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			require.Equal(t, tc.wantCode, err.Code)
			require.Equal(t, "awardContractMonth", err.Field)
			require.Equal(t, 422, err.Status)
		})
	}
}

func TestCheckTimelineBoundary_EarlyStartMilestone(t *testing.T) {
	// Early start is logically prior to the funded window, so anything at
	// or after April of the start year is an error.
	err := CheckTimelineBoundary("earliestStartMonth", 3, 2025, 2025, 2026, true)
	require.Nil(t, err)

	err = CheckTimelineBoundary("earliestStartMonth", 4, 2025, 2025, 2026, true)
	require.NotNil(t, err)
	require.Equal(t, CodeTimelineAfterStart, err.Code)

	err = CheckTimelineBoundary("earliestStartMonth", 1, 2026, 2025, 2026, true)
	require.NotNil(t, err)
	require.Equal(t, CodeTimelineAfterStart, err.Code)
}

func TestCheckTimelineBoundary_RejectsImpossibleMonth(t *testing.T) {
	err := CheckTimelineBoundary("awardContractMonth", 13, 2025, 2025, 2026, false)
	require.NotNil(t, err)
	require.Equal(t, CodeTimelineInvalid, err.Code)
}

func TestValidateTimeline(t *testing.T) {
	t.Run("checks every pair of the level", func(t *testing.T) {
		payload := project.Payload{
			"startOutlineBusinessCaseMonth":    float64(4),
			"startOutlineBusinessCaseYear":     float64(2025),
			"completeOutlineBusinessCaseMonth": float64(4),
			"completeOutlineBusinessCaseYear":  float64(2027),
		}
		err := ValidateTimeline(project.LevelOutlineBusinessCase, payload, 2025, 2026)
		require.NotNil(t, err)
		require.Equal(t, CodeTimelineAfterEnd, err.Code)
		require.Equal(t, "completeOutlineBusinessCaseMonth", err.Field)
	})

	t.Run("accepts numeric strings", func(t *testing.T) {
		payload := project.Payload{
			"awardContractMonth": "6",
			"awardContractYear":  "2025",
		}
		require.Nil(t, ValidateTimeline(project.LevelAwardContract, payload, 2025, 2026))
	})

	t.Run("incomplete pair is skipped", func(t *testing.T) {
		payload := project.Payload{"awardContractMonth": float64(6)}
		require.Nil(t, ValidateTimeline(project.LevelAwardContract, payload, 2025, 2026))
	})

	t.Run("non-timeline level is a no-op", func(t *testing.T) {
		require.Nil(t, ValidateTimeline(project.LevelProjectName, project.Payload{}, 2025, 2026))
	})
}
