package ledger

// AccountStatus is the lifecycle state of an account
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusInactive  AccountStatus = "INACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusClosed    AccountStatus = "CLOSED"
)

// IsValid reports whether the status is one of the known lifecycle states
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusActive, AccountStatusInactive, AccountStatusSuspended, AccountStatusClosed:
		return true
	}
	return false
}

// accountStatusTransitions is the explicit lifecycle table. CLOSED is
// terminal; every other state may move to any different state.
var accountStatusTransitions = map[AccountStatus]map[AccountStatus]bool{
	AccountStatusActive: {
		AccountStatusInactive:  true,
		AccountStatusSuspended: true,
		AccountStatusClosed:    true,
	},
	AccountStatusInactive: {
		AccountStatusActive:    true,
		AccountStatusSuspended: true,
		AccountStatusClosed:    true,
	},
	AccountStatusSuspended: {
		AccountStatusActive:   true,
		AccountStatusInactive: true,
		AccountStatusClosed:   true,
	},
	AccountStatusClosed: {},
}

// CanTransition reports whether a status change from one state to another
// is allowed. Self-transitions are rejected.
func CanTransition(from, to AccountStatus) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	return accountStatusTransitions[from][to]
}
