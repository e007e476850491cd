package account

import (
	"github.com/google/uuid"
)

// Membership links an account to an area it may act for. Primary marks the
// user's main area.
type Membership struct {
	AreaID  int64
	Primary bool
}

// Account is the authenticated principal the validation layer receives.
// Capability flags travel with the value; nothing is read from globals.
type Account struct {
	userID   uuid.UUID
	email    string
	admin    bool
	rma      bool
	disabled bool
	areas    []Membership
}

func New(userID uuid.UUID, email string, admin, rma bool, areas []Membership) Account {
	return Account{
		userID: userID,
		email:  email,
		admin:  admin,
		rma:    rma,
		areas:  areas,
	}
}

func Hydrate(userID uuid.UUID, email string, admin, rma, disabled bool, areas []Membership) Account {
	return Account{
		userID:   userID,
		email:    email,
		admin:    admin,
		rma:      rma,
		disabled: disabled,
		areas:    areas,
	}
}

func (a Account) UserID() uuid.UUID   { return a.userID }
func (a Account) Email() string       { return a.email }
func (a Account) Admin() bool         { return a.admin }
func (a Account) RMA() bool           { return a.rma }
func (a Account) Disabled() bool      { return a.disabled }
func (a Account) Areas() []Membership { return a.areas }

// HasArea reports whether the account holds a membership for the given area.
func (a Account) HasArea(areaID int64) bool {
	for _, m := range a.areas {
		if m.AreaID == areaID {
			return true
		}
	}
	return false
}

// PrimaryArea returns the account's primary area membership, if any.
func (a Account) PrimaryArea() (Membership, bool) {
	for _, m := range a.areas {
		if m.Primary {
			return m, true
		}
	}
	return Membership{}, false
}
