// Package authz centralizes the allow/deny policy as a single declarative
// table consulted by every mutating operation. Absence of an explicit allow
// is a deny.
package authz

import "github.com/revpay/reimbursement-system/internal/core/domain"

// Action identifies an operation subject to the policy table.
type Action string

const (
	ActionCreateReimbursement       Action = "reimbursement:create"
	ActionListUserReimbursements    Action = "reimbursement:list_user"
	ActionListAllReimbursements     Action = "reimbursement:list_all"
	ActionListPendingReimbursements Action = "reimbursement:list_pending"
	ActionEditReimbursement         Action = "reimbursement:edit"
	ActionResolveReimbursement      Action = "reimbursement:resolve"
	ActionListUsers                 Action = "user:list"
	ActionUpdateUserRole            Action = "user:update_role"
	ActionDeleteUser                Action = "user:delete"
)

type scope int

const (
	deny scope = iota
	allow
	allowOwnerOnly
)

// policy is the role × action table. Owner-scoped entries grant access only
// when the caller owns the target resource.
var policy = map[Action]map[string]scope{
	ActionCreateReimbursement: {
		domain.RoleEmployee: allowOwnerOnly,
		domain.RoleManager:  allow,
	},
	ActionListUserReimbursements: {
		domain.RoleEmployee: allowOwnerOnly,
		domain.RoleManager:  allow,
	},
	ActionListAllReimbursements: {
		domain.RoleManager: allow,
	},
	ActionListPendingReimbursements: {
		domain.RoleManager: allow,
	},
	ActionEditReimbursement: {
		domain.RoleEmployee: allowOwnerOnly,
		domain.RoleManager:  allow,
	},
	ActionResolveReimbursement: {
		domain.RoleManager: allow,
	},
	ActionListUsers: {
		domain.RoleManager: allow,
	},
	ActionUpdateUserRole: {
		domain.RoleManager: allow,
	},
	ActionDeleteUser: {
		domain.RoleManager: allow,
	},
}

// Allowed reports whether role may perform action. owner indicates whether
// the caller owns the target resource (the target user for user-scoped
// actions, the reimbursement owner for ledger actions).
func Allowed(role string, action Action, owner bool) bool {
	switch policy[action][role] {
	case allow:
		return true
	case allowOwnerOnly:
		return owner
	default:
		return false
	}
}

// Check is the error-returning form used by services before any mutation.
func Check(role string, action Action, owner bool) error {
	if !Allowed(role, action, owner) {
		return domain.ErrForbidden
	}
	return nil
}
