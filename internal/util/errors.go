package util

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailRegistered         = errors.New("该邮箱已被注册")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrCourseNotFound          = errors.New("course not found")
	ErrLessonNotFound          = errors.New("lesson not found")
	ErrNotEnrolled             = errors.New("not enrolled in this course")
	ErrLessonLocked            = errors.New("lesson is locked, complete the previous lesson first")
	ErrAlreadyClaimed          = errors.New("tokens already claimed for this level")
	ErrLevelNotReached         = errors.New("level not reached yet")
	ErrCertificateNotFound     = errors.New("certificate not found")
	ErrCertificateNotClaimable = errors.New("certificate not claimable")
	ErrCertificateClaimed      = errors.New("certificate already claimed")
	ErrCourseNotCompleted      = errors.New("course not completed yet")
	ErrInsufficientCoins       = errors.New("insufficient coins")
	ErrSubmissionNotFound      = errors.New("submission not found")
	ErrRequestNotFound         = errors.New("review request not found")
	ErrRequestResolved         = errors.New("review request already resolved")
	ErrOwnSubmission           = errors.New("cannot review your own submission")
	ErrContentUnavailable      = errors.New("lesson content unavailable")
)

// ValidationError 提交校验失败，逐条列出未满足的要求
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "submission validation failed: " + strings.Join(e.Violations, "; ")
}

func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}
