package persistence

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/floodops/pafs/modules/projects/domain/project"
)

type transformKind int

const (
	kindPassthrough transformKind = iota
	kindArray
	kindNumber
	kindPercentage
)

type fieldTransform struct {
	wire   string
	column string
	kind   transformKind
}

// projectFieldTable is the single source of truth for wire-to-column naming
// and per-field typing. Call sites must never re-decide a field's kind.
var projectFieldTable = []fieldTransform{
	{project.FieldReferenceNumber, "reference_number", kindPassthrough},
	{project.FieldName, "name", kindPassthrough},
	{project.FieldAreaID, "area_id", kindNumber},
	{"rfccCode", "rfcc_code", kindPassthrough},
	{"state", "state", kindPassthrough},
	{project.FieldProjectType, "project_type", kindPassthrough},
	{project.FieldFinancialStartYear, "financial_start_year", kindNumber},
	{project.FieldFinancialEndYear, "financial_end_year", kindNumber},

	{project.FieldStartOutlineBusinessCaseMonth, "start_outline_business_case_month", kindNumber},
	{project.FieldStartOutlineBusinessCaseYear, "start_outline_business_case_year", kindNumber},
	{project.FieldCompleteOutlineBusinessCaseMonth, "complete_outline_business_case_month", kindNumber},
	{project.FieldCompleteOutlineBusinessCaseYear, "complete_outline_business_case_year", kindNumber},
	{project.FieldAwardContractMonth, "award_contract_month", kindNumber},
	{project.FieldAwardContractYear, "award_contract_year", kindNumber},
	{project.FieldStartConstructionMonth, "start_construction_month", kindNumber},
	{project.FieldStartConstructionYear, "start_construction_year", kindNumber},
	{project.FieldReadyForServiceMonth, "ready_for_service_month", kindNumber},
	{project.FieldReadyForServiceYear, "ready_for_service_year", kindNumber},
	{project.FieldCouldStartEarly, "could_start_early", kindPassthrough},
	{project.FieldEarliestStartMonth, "earliest_start_month", kindNumber},
	{project.FieldEarliestStartYear, "earliest_start_year", kindNumber},

	{project.FieldFundingSources, "funding_sources", kindArray},
	{project.FieldGrantPercentage, "grant_percentage", kindPercentage},
	{project.FieldFloodProtectionBefore, "flood_protection_before", kindNumber},
	{project.FieldFloodProtectionAfter, "flood_protection_after", kindNumber},
	{project.FieldCoastalProtectionBefore, "coastal_protection_before", kindNumber},
	{project.FieldCoastalProtectionAfter, "coastal_protection_after", kindNumber},
	{project.FieldHabitatCreationHectares, "habitat_creation_hectares", kindNumber},
	{project.FieldWatercourseEnhancedKilom, "kilometres_of_watercourse_enhanced", kindNumber},
}

// StorageRecord is a project row plus its one-to-one joined sub-records.
// ToWire flattens the sub-records into the same flat wire object.
type StorageRecord struct {
	Columns  map[string]any
	State    map[string]any
	AreaLink map[string]any
}

type FieldMapper struct{}

func NewFieldMapper() *FieldMapper { return &FieldMapper{} }

// ToStorage converts a wire payload to storage columns. Fields are
// presence-checked rather than truthiness-checked so explicit null, zero
// and false values survive the trip.
func (m *FieldMapper) ToStorage(wire project.Payload) map[string]any {
	out := make(map[string]any)
	for _, ft := range projectFieldTable {
		v, ok := wire[ft.wire]
		if !ok {
			continue
		}
		if v == nil {
			out[ft.column] = nil
			continue
		}
		out[ft.column] = toStorageValue(ft.kind, v)
	}
	return out
}

// ToWire converts storage columns back to the wire shape, flattening the
// joined state and area-link rows through the same transform table.
func (m *FieldMapper) ToWire(rec StorageRecord) map[string]any {
	merged := make(map[string]any, len(rec.Columns)+len(rec.State)+len(rec.AreaLink))
	for k, v := range rec.Columns {
		merged[k] = v
	}
	for k, v := range rec.State {
		merged[k] = v
	}
	for k, v := range rec.AreaLink {
		merged[k] = v
	}

	out := make(map[string]any)
	for _, ft := range projectFieldTable {
		v, ok := merged[ft.column]
		if !ok {
			continue
		}
		if v == nil {
			out[ft.wire] = nil
			continue
		}
		out[ft.wire] = toWireValue(ft.kind, v)
	}
	return out
}

// ProjectToWire renders a stored project through the transform table, the
// same path a raw column map takes.
func (m *FieldMapper) ProjectToWire(p *project.Project) map[string]any {
	cols := map[string]any{
		"reference_number":     p.ReferenceNumber,
		"name":                 p.Name,
		"rfcc_code":            p.RFCCCode,
		"project_type":         p.ProjectType,
		"financial_start_year": int64(p.FinancialStartYear),
		"financial_end_year":   int64(p.FinancialEndYear),

		"start_outline_business_case_month":    intColumn(p.StartOutlineBusinessCaseMonth),
		"start_outline_business_case_year":     intColumn(p.StartOutlineBusinessCaseYear),
		"complete_outline_business_case_month": intColumn(p.CompleteOutlineBusinessCaseMonth),
		"complete_outline_business_case_year":  intColumn(p.CompleteOutlineBusinessCaseYear),
		"award_contract_month":                 intColumn(p.AwardContractMonth),
		"award_contract_year":                  intColumn(p.AwardContractYear),
		"start_construction_month":             intColumn(p.StartConstructionMonth),
		"start_construction_year":              intColumn(p.StartConstructionYear),
		"ready_for_service_month":              intColumn(p.ReadyForServiceMonth),
		"ready_for_service_year":               intColumn(p.ReadyForServiceYear),
		"could_start_early":                    boolColumn(p.CouldStartEarly),
		"earliest_start_month":                 intColumn(p.EarliestStartMonth),
		"earliest_start_year":                  intColumn(p.EarliestStartYear),

		"funding_sources":                    strings.Join(p.FundingSources, ","),
		"grant_percentage":                   floatColumn(p.GrantPercentage),
		"flood_protection_before":            intColumn(p.FloodProtectionBefore),
		"flood_protection_after":             intColumn(p.FloodProtectionAfter),
		"coastal_protection_before":          intColumn(p.CoastalProtectionBefore),
		"coastal_protection_after":           intColumn(p.CoastalProtectionAfter),
		"habitat_creation_hectares":          floatColumn(p.HabitatCreationHectares),
		"kilometres_of_watercourse_enhanced": floatColumn(p.KilometresOfWatercourseEnhanced),
	}
	return m.ToWire(StorageRecord{
		Columns:  cols,
		State:    map[string]any{"state": string(p.State)},
		AreaLink: map[string]any{"area_id": p.AreaID},
	})
}

func intColumn(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func boolColumn(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatColumn(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func toStorageValue(kind transformKind, v any) any {
	switch kind {
	case kindArray:
		return joinArray(v)
	case kindNumber:
		if n, ok := project.CoerceInt(v); ok {
			return n
		}
		if f, ok := coerceFloat(v); ok {
			return f
		}
		return v
	case kindPercentage:
		if f, ok := coercePercentage(v); ok {
			return f
		}
		return v
	default:
		return v
	}
}

func toWireValue(kind transformKind, v any) any {
	switch kind {
	case kindArray:
		s, ok := v.(string)
		if !ok {
			return v
		}
		if s == "" {
			return []string{}
		}
		return strings.Split(s, ",")
	case kindPercentage:
		if f, ok := coerceFloat(v); ok {
			return strconv.FormatFloat(f, 'f', -1, 64) + "%"
		}
		return v
	default:
		return v
	}
}

func joinArray(v any) any {
	switch arr := v.(type) {
	case []string:
		return strings.Join(arr, ",")
	case []any:
		parts := make([]string, 0, len(arr))
		for _, item := range arr {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ",")
	default:
		return v
	}
}

func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func coercePercentage(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		return coerceFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	}
	return coerceFloat(v)
}
