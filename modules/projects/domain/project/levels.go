package project

import (
	"fmt"
	"sort"
)

// Level names one step of the multi-stage save wizard. Each level activates
// its own subset of required and optional fields.
type Level string

const (
	LevelProjectName         Level = "project_name"
	LevelProjectArea         Level = "project_area"
	LevelFinancialYears      Level = "financial_years"
	LevelOutlineBusinessCase Level = "outline_business_case"
	LevelAwardContract       Level = "award_contract"
	LevelConstruction        Level = "construction"
	LevelReadyForService     Level = "ready_for_service"
	LevelEarlyStart          Level = "early_start"
	LevelRisk                Level = "risk"
	LevelEnvironmental       Level = "environmental"
	LevelSubmission          Level = "submission"
)

type Requirement int

const (
	Optional Requirement = iota
	Required
)

// Schema is the merged field-rule set for one or more levels.
type Schema map[string]Requirement

// RequiredFields returns the schema's required field names, sorted for
// stable error reporting.
func (s Schema) RequiredFields() []string {
	out := make([]string, 0, len(s))
	for field, req := range s {
		if req == Required {
			out = append(out, field)
		}
	}
	sort.Strings(out)
	return out
}

var levelSchemas = map[Level]Schema{
	LevelProjectName: {
		FieldName:        Required,
		FieldProjectType: Optional,
	},
	LevelProjectArea: {
		FieldAreaID: Required,
	},
	LevelFinancialYears: {
		FieldFinancialStartYear: Required,
		FieldFinancialEndYear:   Required,
	},
	LevelOutlineBusinessCase: {
		FieldStartOutlineBusinessCaseMonth:    Required,
		FieldStartOutlineBusinessCaseYear:     Required,
		FieldCompleteOutlineBusinessCaseMonth: Required,
		FieldCompleteOutlineBusinessCaseYear:  Required,
	},
	LevelAwardContract: {
		FieldAwardContractMonth: Required,
		FieldAwardContractYear:  Required,
	},
	LevelConstruction: {
		FieldStartConstructionMonth: Required,
		FieldStartConstructionYear:  Required,
	},
	LevelReadyForService: {
		FieldReadyForServiceMonth: Required,
		FieldReadyForServiceYear:  Required,
	},
	LevelEarlyStart: {
		FieldCouldStartEarly:    Required,
		FieldEarliestStartMonth: Optional,
		FieldEarliestStartYear:  Optional,
	},
	LevelRisk: {
		FieldFundingSources:          Optional,
		FieldGrantPercentage:         Optional,
		FieldFloodProtectionBefore:   Optional,
		FieldFloodProtectionAfter:    Optional,
		FieldCoastalProtectionBefore: Optional,
		FieldCoastalProtectionAfter:  Optional,
	},
	LevelEnvironmental: {
		FieldHabitatCreationHectares:  Optional,
		FieldWatercourseEnhancedKilom: Optional,
	},
	LevelSubmission: {},
}

// ParseLevel validates a wire-level name. Unknown names fail fast rather
// than silently producing an empty ruleset.
func ParseLevel(name string) (Level, error) {
	l := Level(name)
	if _, ok := levelSchemas[l]; !ok {
		return "", fmt.Errorf("unknown validation level %q", name)
	}
	return l, nil
}

// SchemaFor merges the field-rule sets of the requested levels. A field
// named by several levels keeps the least-restrictive combined requirement,
// so an optional rule anywhere relaxes a required one.
func SchemaFor(levels ...Level) (Schema, error) {
	merged := make(Schema)
	seen := make(map[string]bool)
	for _, l := range levels {
		schema, ok := levelSchemas[l]
		if !ok {
			return nil, fmt.Errorf("unknown validation level %q", l)
		}
		for field, req := range schema {
			if !seen[field] {
				merged[field] = req
				seen[field] = true
				continue
			}
			if req == Optional {
				merged[field] = Optional
			}
		}
	}
	return merged, nil
}

// MilestonePair names one milestone month/year field pair checked against
// the fiscal window. EarlyStart selects the strictly-before-window mode.
type MilestonePair struct {
	MonthField string
	YearField  string
	EarlyStart bool
}

var timelineMilestones = map[Level][]MilestonePair{
	LevelOutlineBusinessCase: {
		{MonthField: FieldStartOutlineBusinessCaseMonth, YearField: FieldStartOutlineBusinessCaseYear},
		{MonthField: FieldCompleteOutlineBusinessCaseMonth, YearField: FieldCompleteOutlineBusinessCaseYear},
	},
	LevelAwardContract: {
		{MonthField: FieldAwardContractMonth, YearField: FieldAwardContractYear},
	},
	LevelConstruction: {
		{MonthField: FieldStartConstructionMonth, YearField: FieldStartConstructionYear},
	},
	LevelReadyForService: {
		{MonthField: FieldReadyForServiceMonth, YearField: FieldReadyForServiceYear},
	},
	LevelEarlyStart: {
		{MonthField: FieldEarliestStartMonth, YearField: FieldEarliestStartYear, EarlyStart: true},
	},
}

// TimelineMilestones returns the milestone pairs validated at the given
// level. Levels without lifecycle milestones return nil.
func TimelineMilestones(l Level) []MilestonePair {
	return timelineMilestones[l]
}
