package services

import (
	"testing"

	"github.com/campushire/placement_service/internal/apperr"
	"github.com/campushire/placement_service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanManageJob(t *testing.T) {
	var p Policy
	job := &domain.Job{CompanyUserID: 7}

	assert.True(t, p.CanManageJob(7, domain.RoleCompany, job))
	assert.False(t, p.CanManageJob(8, domain.RoleCompany, job))
	assert.True(t, p.CanManageJob(99, domain.RoleAdmin, job))
	assert.False(t, p.CanManageJob(7, domain.RoleStudent, job))
}

func TestCanManageApplicationsFollowsJobRule(t *testing.T) {
	var p Policy
	job := &domain.Job{CompanyUserID: 7}

	assert.True(t, p.CanManageApplications(7, domain.RoleCompany, job))
	assert.False(t, p.CanManageApplications(8, domain.RoleCompany, job))
	assert.True(t, p.CanManageApplications(1, domain.RoleAdmin, job))
}

func TestCanDeleteUserSelfProtection(t *testing.T) {
	var p Policy

	err := p.CanDeleteUser(5, &domain.User{ID: 5})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	assert.NoError(t, p.CanDeleteUser(5, &domain.User{ID: 6}))
}

func TestOwnsNotification(t *testing.T) {
	var p Policy
	n := &domain.Notification{RecipientID: 3}

	assert.True(t, p.OwnsNotification(3, n))
	assert.False(t, p.OwnsNotification(4, n))
}
