package area

import "time"

type Type string

const (
	TypeCountry   Type = "Country"
	TypeEAArea    Type = "EA Area"
	TypePSOArea   Type = "PSO Area"
	TypeRMA       Type = "RMA"
	TypeAuthority Type = "Authority"
)

// Area is one node of the shallow organizational hierarchy:
// Country > EA Area > PSO Area > RMA, with Authority as an unrelated root
// type. SubType carries the RFCC code on PSO areas and the authority code
// on RMAs.
type Area struct {
	ID         int64
	Name       string
	Type       Type
	ParentID   *int64
	SubType    string
	Identifier string
	EndDate    *time.Time
}

// WithParents is an area plus its bounded parent chain. PSO and EA are nil
// when the respective parent is absent or of the wrong type; absence is a
// condition, never an error.
type WithParents struct {
	Node Area
	PSO  *Area
	EA   *Area
}
