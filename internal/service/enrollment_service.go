package service

import (
	"levelup_backend/internal/model"
	"levelup_backend/internal/repository"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	Notifications  *NotificationService
}

func NewEnrollmentService(enrollmentRepo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository, notifications *NotificationService) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		Notifications:  notifications,
	}
}

// Enroll 报名课程。重复报名幂等返回已有记录，不产生副作用。
func (s *EnrollmentService) Enroll(userID, courseID uint) (*model.Enrollment, bool, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.EnrollmentRepo.Find(userID, courseID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	enrollment := &model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   model.EnrollmentInProgress,
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		// 唯一索引兜底并发报名
		prior, findErr := s.EnrollmentRepo.Find(userID, courseID)
		if findErr == nil && prior != nil {
			return prior, false, nil
		}
		return nil, false, err
	}

	s.Notifications.Notify(userID, "已报名课程「"+course.Title+"」", model.SeveritySuccess)
	return enrollment, true, nil
}

func (s *EnrollmentService) IsEnrolled(userID, courseID uint) (bool, error) {
	enrollment, err := s.EnrollmentRepo.Find(userID, courseID)
	if err != nil {
		return false, err
	}
	return enrollment != nil, nil
}

func (s *EnrollmentService) ListByUser(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.FindByUser(userID)
}
