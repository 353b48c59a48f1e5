package services

import (
	"fmt"

	"github.com/campushire/placement_service/internal/apperr"
	"github.com/campushire/placement_service/internal/domain"
)

// Policy holds the resource-level authorization rules. Route-level role
// gates live in the middleware; these predicates guard ownership.
type Policy struct{}

// CanManageJob reports whether the actor may mutate the job: its owning
// company user, or an admin. Anyone may read a job.
func (Policy) CanManageJob(actorID uint, actorRole string, job *domain.Job) bool {
	if actorRole == domain.RoleAdmin {
		return true
	}
	return actorRole == domain.RoleCompany && job.CompanyUserID == actorID
}

// CanManageApplications reports whether the actor may read or transition
// applications against the job. Same rule as job mutation.
func (p Policy) CanManageApplications(actorID uint, actorRole string, job *domain.Job) bool {
	return p.CanManageJob(actorID, actorRole, job)
}

// CanDeleteUser enforces the admin self-protection rule: an admin may
// delete any account except their own.
func (Policy) CanDeleteUser(actorID uint, target *domain.User) error {
	if target.ID == actorID {
		return fmt.Errorf("%w: you cannot delete your own admin account", apperr.ErrConflict)
	}
	return nil
}

// OwnsNotification reports whether the notification belongs to the actor.
func (Policy) OwnsNotification(actorID uint, n *domain.Notification) bool {
	return n.RecipientID == actorID
}
