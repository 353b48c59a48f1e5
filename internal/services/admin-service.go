package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/campushire/placement_service/internal/apperr"
	"github.com/campushire/placement_service/internal/domain"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/campushire/placement_service/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AdminService interface {
	ListUsers(role, search string) ([]domain.User, error)
	UpdateUser(userID uint, input dto.UpdateUserRequest) (*domain.User, error)
	DeleteUser(actor dto.AuthResponse, userID uint, ip string) error
	ListCompanies(search string) ([]dto.CompanyOverviewResponse, error)
	VerifyCompany(actor dto.AuthResponse, companyID uint, ip string) (*domain.Company, error)
	AccessLogs() ([]dto.AuditLogResponse, error)
}

type adminService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jobRepo     repository.JobRepository
	logRepo     repository.AuditLogRepository
	policy      Policy
}

func NewAdminService(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	jobRepo repository.JobRepository,
	logRepo repository.AuditLogRepository,
) AdminService {
	return &adminService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		jobRepo:     jobRepo,
		logRepo:     logRepo,
	}
}

func (s *adminService) ListUsers(role, search string) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(role, search)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	return users, nil
}

func (s *adminService) UpdateUser(userID uint, input dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserById(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user not found", apperr.ErrNotFound)
	}

	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email != user.Email {
			existing, err := s.userRepo.FindUserByEmail(email)
			if err == nil && existing != nil && existing.ID != 0 {
				return nil, fmt.Errorf("%w: email already in use", apperr.ErrConflict)
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
			}
			user.Email = email
		}
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		role := strings.TrimSpace(strings.ToLower(*input.Role))
		switch role {
		case domain.RoleStudent, domain.RoleCompany, domain.RoleAdmin:
			user.Role = role
		default:
			return nil, fmt.Errorf("%w: invalid role", apperr.ErrInvalidInput)
		}
	}

	if err := s.userRepo.SaveUser(user); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	return user, nil
}

// DeleteUser removes an account and writes an audit entry. Admins cannot
// delete themselves.
func (s *adminService) DeleteUser(actor dto.AuthResponse, userID uint, ip string) error {
	user, err := s.userRepo.FindUserById(userID)
	if err != nil {
		return fmt.Errorf("%w: user not found", apperr.ErrNotFound)
	}

	if err := s.policy.CanDeleteUser(uint(actor.UserID), user); err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(userID); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	s.audit(actor.Email, "DELETE_USER", domain.AuditStatusWarning, ip, map[string]any{
		"deleted_user_email": user.Email,
		"deleted_user_id":    user.ID,
	})
	return nil
}

func (s *adminService) ListCompanies(search string) ([]dto.CompanyOverviewResponse, error) {
	companies, err := s.companyRepo.List(search)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	out := make([]dto.CompanyOverviewResponse, 0, len(companies))
	for _, c := range companies {
		total, err := s.jobRepo.CountByCompanyUser(c.UserID, "")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
		}
		active, err := s.jobRepo.CountByCompanyUser(c.UserID, domain.JobStatusOpen)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
		}

		out = append(out, dto.CompanyOverviewResponse{
			ID:         c.ID,
			UserID:     c.UserID,
			Name:       c.Name,
			Email:      c.Email,
			CreatedAt:  c.CreatedAt,
			TotalJobs:  total,
			ActiveJobs: active,
			Verified:   c.Verified,
			Status:     c.Status,
			Logo:       c.Logo,
		})
	}
	return out, nil
}

// VerifyCompany toggles the verified flag and records who flipped it.
func (s *adminService) VerifyCompany(actor dto.AuthResponse, companyID uint, ip string) (*domain.Company, error) {
	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		return nil, fmt.Errorf("%w: company not found", apperr.ErrNotFound)
	}

	company.Verified = !company.Verified
	if company.Verified {
		now := time.Now()
		company.VerifiedAt = &now
	} else {
		company.VerifiedAt = nil
	}

	if err := s.companyRepo.Save(company); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	action := "VERIFY_COMPANY"
	if !company.Verified {
		action = "UNVERIFY_COMPANY"
	}
	s.audit(actor.Email, action, domain.AuditStatusSuccess, ip, map[string]any{
		"company_name": company.Name,
		"company_id":   company.ID,
	})
	return company, nil
}

func (s *adminService) AccessLogs() ([]dto.AuditLogResponse, error) {
	logs, err := s.logRepo.ListRecent(50)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	out := make([]dto.AuditLogResponse, 0, len(logs))
	for _, entry := range logs {
		resp := dto.AuditLogResponse{
			ID:     entry.ID,
			Event:  entry.Action,
			Actor:  entry.Actor,
			IP:     entry.IP,
			Time:   entry.CreatedAt,
			Status: entry.Status,
		}
		if len(entry.Details) > 0 {
			var details any
			if err := json.Unmarshal(entry.Details, &details); err == nil {
				resp.Details = details
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

// audit is best-effort: a failed log write never fails the admin action.
func (s *adminService) audit(actor, action, status, ip string, details map[string]any) {
	b, err := json.Marshal(details)
	if err != nil {
		b = nil
	}
	err = s.logRepo.Create(&domain.AuditLog{
		Actor:   actor,
		Action:  action,
		Status:  status,
		IP:      ip,
		Details: datatypes.JSON(b),
	})
	if err != nil {
		log.Printf("audit log write error: %v", err)
	}
}
