package project

import "time"

type State string

const (
	StateDraft     State = "draft"
	StateSubmitted State = "submitted"
	StateArchived  State = "archived"
)

// Wire field names. The field mapper owns the wire-to-column translation;
// everything else refers to fields through these constants.
const (
	FieldReferenceNumber    = "referenceNumber"
	FieldName               = "name"
	FieldAreaID             = "areaId"
	FieldProjectType        = "projectType"
	FieldFinancialStartYear = "financialStartYear"
	FieldFinancialEndYear   = "financialEndYear"

	FieldStartOutlineBusinessCaseMonth    = "startOutlineBusinessCaseMonth"
	FieldStartOutlineBusinessCaseYear     = "startOutlineBusinessCaseYear"
	FieldCompleteOutlineBusinessCaseMonth = "completeOutlineBusinessCaseMonth"
	FieldCompleteOutlineBusinessCaseYear  = "completeOutlineBusinessCaseYear"
	FieldAwardContractMonth               = "awardContractMonth"
	FieldAwardContractYear                = "awardContractYear"
	FieldStartConstructionMonth           = "startConstructionMonth"
	FieldStartConstructionYear            = "startConstructionYear"
	FieldReadyForServiceMonth             = "readyForServiceMonth"
	FieldReadyForServiceYear              = "readyForServiceYear"
	FieldCouldStartEarly                  = "couldStartEarly"
	FieldEarliestStartMonth               = "earliestStartMonth"
	FieldEarliestStartYear                = "earliestStartYear"

	FieldFundingSources           = "fundingSources"
	FieldGrantPercentage          = "grantPercentage"
	FieldFloodProtectionBefore    = "floodProtectionBefore"
	FieldFloodProtectionAfter     = "floodProtectionAfter"
	FieldCoastalProtectionBefore  = "coastalProtectionBefore"
	FieldCoastalProtectionAfter   = "coastalProtectionAfter"
	FieldHabitatCreationHectares  = "habitatCreationHectares"
	FieldWatercourseEnhancedKilom = "kilometresOfWatercourseEnhanced"
)

// Project is a capital flood-defense scheme. The reference number is
// assigned once at creation and never changes across wizard updates.
type Project struct {
	ID              int64
	ReferenceNumber string
	Name            string
	AreaID          int64
	RFCCCode        string
	ProjectType     string
	State           State

	FinancialStartYear int
	FinancialEndYear   int

	StartOutlineBusinessCaseMonth    *int
	StartOutlineBusinessCaseYear     *int
	CompleteOutlineBusinessCaseMonth *int
	CompleteOutlineBusinessCaseYear  *int
	AwardContractMonth               *int
	AwardContractYear                *int
	StartConstructionMonth           *int
	StartConstructionYear            *int
	ReadyForServiceMonth             *int
	ReadyForServiceYear              *int
	CouldStartEarly                  *bool
	EarliestStartMonth               *int
	EarliestStartYear                *int

	FundingSources                  []string
	GrantPercentage                 *float64
	FloodProtectionBefore           *int
	FloodProtectionAfter            *int
	CoastalProtectionBefore         *int
	CoastalProtectionAfter          *int
	HabitatCreationHectares         *float64
	KilometresOfWatercourseEnhanced *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
