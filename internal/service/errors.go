// Package service implements the lifecycle services and the authorization
// engine that every mutating or read operation passes through.
package service

import "errors"

// Sentinel errors for authorization and business-rule failures. The API
// layer maps each to exactly one HTTP status.
var (
	// ErrNotTeamMember indicates the caller is not a member of the team that
	// owns the target entity.
	ErrNotTeamMember = errors.New("you are not a member of this team")

	// ErrForbidden indicates the caller is a member but their role does not
	// permit the operation.
	ErrForbidden = errors.New("insufficient role for this operation")

	// ErrAlreadyMember indicates the target user is already a member of the
	// team.
	ErrAlreadyMember = errors.New("user is already a member of this team")

	// ErrLastOwner indicates the operation would leave the team without an
	// owner.
	ErrLastOwner = errors.New("cannot leave team: you are the only owner")

	// ErrCannotRemoveOwner indicates an attempt to remove an owner from a
	// team. Owners must leave themselves.
	ErrCannotRemoveOwner = errors.New("cannot remove team owner")

	// ErrOwnerImmutable indicates an attempt to change an owner's role.
	ErrOwnerImmutable = errors.New("cannot change owner's role")

	// ErrAssigneeNotMember indicates an attempt to assign a task to a user
	// who is not a member of the task's team. This is a data validity
	// failure on the request, not a permission failure on the caller.
	ErrAssigneeNotMember = errors.New("can only assign tasks to team members")
)
