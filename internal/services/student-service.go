package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/campushire/placement_service/internal/apperr"
	"github.com/campushire/placement_service/internal/domain"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/campushire/placement_service/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StudentService interface {
	GetProfile(userID uint) (*dto.StudentProfileResponse, error)
	UpdateProfile(userID uint, input dto.UpdateStudentProfile) (*dto.StudentProfileResponse, error)
	SetDocuments(userID uint, docs dto.UploadedDocuments) (*dto.StudentProfileResponse, error)
	ListStudents() ([]dto.StudentProfileResponse, error)

	ListNotifications(userID uint) ([]domain.Notification, error)
	MarkNotificationRead(userID, notificationID uint) (*domain.Notification, error)
	DeleteNotification(userID, notificationID uint) error
}

type studentService struct {
	studentRepo repository.StudentRepository
	userRepo    repository.UserRepository
	notifRepo   repository.NotificationRepository
	appSvc      ApplicationService
	policy      Policy
}

func NewStudentService(
	studentRepo repository.StudentRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	appSvc ApplicationService,
) StudentService {
	return &studentService{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		notifRepo:   notifRepo,
		appSvc:      appSvc,
	}
}

// GetProfile returns nil (not an error) when the student has not created
// a profile yet.
func (s *studentService) GetProfile(userID uint) (*dto.StudentProfileResponse, error) {
	student, err := s.studentRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	return s.toProfileResponse(student, true)
}

// UpdateProfile patches the profile, creating it on first update. RollNo
// and Branch are mandatory on creation.
func (s *studentService) UpdateProfile(userID uint, input dto.UpdateStudentProfile) (*dto.StudentProfileResponse, error) {
	student, err := s.studentRepo.FindByUserID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	creating := student == nil
	if creating {
		student = &domain.Student{UserID: userID}
	}

	if input.RollNo != nil {
		student.RollNo = strings.TrimSpace(*input.RollNo)
	}
	if input.Branch != nil {
		student.Branch = strings.TrimSpace(*input.Branch)
	}
	if input.CGPA != nil {
		student.CGPA = *input.CGPA
	}
	if input.University != nil {
		student.University = strings.TrimSpace(*input.University)
	}
	if input.GraduationYear != nil {
		student.GraduationYear = *input.GraduationYear
	}
	if input.Semester != nil {
		student.Semester = *input.Semester
	}
	if input.Phone != nil {
		student.Phone = input.Phone
	}
	if input.DOB != nil {
		student.DOB = input.DOB
	}
	if input.Skills != nil {
		b, err := json.Marshal(input.Skills)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid skills", apperr.ErrInvalidInput)
		}
		student.Skills = datatypes.JSON(b)
	}

	if creating && (student.RollNo == "" || student.Branch == "") {
		return nil, fmt.Errorf("%w: roll_no and branch are required", apperr.ErrInvalidInput)
	}

	if err := s.studentRepo.Upsert(student); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		if user, err := s.userRepo.FindUserById(userID); err == nil {
			user.Name = strings.TrimSpace(*input.Name)
			if err := s.userRepo.SaveUser(user); err != nil {
				return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
			}
		}
	}

	return s.toProfileResponse(student, true)
}

func (s *studentService) SetDocuments(userID uint, docs dto.UploadedDocuments) (*dto.StudentProfileResponse, error) {
	student, err := s.studentRepo.FindByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: student profile not found", apperr.ErrNotFound)
	}

	if docs.Resume == "" && docs.ProfilePic == "" && docs.Transcript == "" {
		return nil, fmt.Errorf("%w: no valid files uploaded", apperr.ErrInvalidInput)
	}

	if docs.Resume != "" {
		student.Resume = docs.Resume
	}
	if docs.ProfilePic != "" {
		student.ProfilePic = docs.ProfilePic
	}
	if docs.Transcript != "" {
		student.Transcript = docs.Transcript
	}

	if err := s.studentRepo.Save(student); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	return s.toProfileResponse(student, false)
}

func (s *studentService) ListStudents() ([]dto.StudentProfileResponse, error) {
	students, err := s.studentRepo.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	out := make([]dto.StudentProfileResponse, 0, len(students))
	for i := range students {
		resp, err := s.toProfileResponse(&students[i], false)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *studentService) ListNotifications(userID uint) ([]domain.Notification, error) {
	list, err := s.notifRepo.ListByRecipient(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	return list, nil
}

func (s *studentService) MarkNotificationRead(userID, notificationID uint) (*domain.Notification, error) {
	n, err := s.notifRepo.FindByID(notificationID)
	if err != nil {
		return nil, fmt.Errorf("%w: notification not found", apperr.ErrNotFound)
	}
	if !s.policy.OwnsNotification(userID, n) {
		return nil, fmt.Errorf("%w: not authorized", apperr.ErrForbidden)
	}

	n.Read = true
	if err := s.notifRepo.Save(n); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	return n, nil
}

func (s *studentService) DeleteNotification(userID, notificationID uint) error {
	n, err := s.notifRepo.FindByID(notificationID)
	if err != nil {
		return fmt.Errorf("%w: notification not found", apperr.ErrNotFound)
	}
	if !s.policy.OwnsNotification(userID, n) {
		return fmt.Errorf("%w: not authorized", apperr.ErrForbidden)
	}
	return s.notifRepo.Delete(notificationID)
}

func (s *studentService) toProfileResponse(student *domain.Student, withApplications bool) (*dto.StudentProfileResponse, error) {
	resp := &dto.StudentProfileResponse{
		ID:             student.ID,
		UserID:         student.UserID,
		RollNo:         student.RollNo,
		Branch:         student.Branch,
		CGPA:           student.CGPA,
		University:     student.University,
		GraduationYear: student.GraduationYear,
		Semester:       student.Semester,
		Phone:          student.Phone,
		Resume:         student.Resume,
		ProfilePic:     student.ProfilePic,
		Transcript:     student.Transcript,
		Applications:   []dto.ApplicationResponse{},
	}

	if len(student.Skills) > 0 {
		if err := json.Unmarshal(student.Skills, &resp.Skills); err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
		}
	}

	if user, err := s.userRepo.FindUserById(student.UserID); err == nil {
		resp.Name = user.Name
		resp.Email = user.Email
	}

	if withApplications {
		apps, err := s.appSvc.ListForStudent(student.UserID)
		if err == nil {
			resp.Applications = apps
		}
	}
	return resp, nil
}
