package service

import (
	"fmt"
	"os"
	"testing"

	"levelup_backend/internal/config"
	"levelup_backend/internal/model"
	"levelup_backend/internal/repository"
	"levelup_backend/pkg/database"
	"levelup_backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	os.Exit(m.Run())
}

// testEnv 内存数据库上的完整服务栈
type testEnv struct {
	DB           *gorm.DB
	Catalog      *CatalogService
	Enrollment   *EnrollmentService
	Rewards      *RewardsService
	Progression  *ProgressionService
	Submissions  *SubmissionService
	Reviews      *ReviewService
	Certificates *CertificateService

	UserRepo        *repository.UserRepository
	ProgressRepo    *repository.ProgressRepository
	CompletionRepo  *repository.CompletionRepository
	EnrollmentRepo  *repository.EnrollmentRepository
	SubmissionRepo  *repository.SubmissionRepository
	CertificateRepo *repository.CertificateRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	requestRepo := repository.NewReviewRequestRepository(db)
	tokenClaimRepo := repository.NewTokenClaimRepository(db)
	certificateRepo := repository.NewCertificateRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notifications := NewNotificationService(notificationRepo)
	catalog := NewCatalogService(courseRepo)
	enrollment := NewEnrollmentService(enrollmentRepo, courseRepo, notifications)
	rewards := NewRewardsService(db, userRepo, tokenClaimRepo)
	progression := NewProgressionService(db, catalog, rewards, enrollmentRepo, progressRepo, completionRepo, notifications)
	storage := &StorageService{Provider: &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: t.TempDir()}}}
	submissions := NewSubmissionService(db, catalog, progression, rewards, submissionRepo, storage, notifications)
	reviews := NewReviewService(db, catalog, rewards, requestRepo, notifications)
	certificates := NewCertificateService(db, certificateRepo, completionRepo, rewards, notifications)

	return &testEnv{
		DB:              db,
		Catalog:         catalog,
		Enrollment:      enrollment,
		Rewards:         rewards,
		Progression:     progression,
		Submissions:     submissions,
		Reviews:         reviews,
		Certificates:    certificates,
		UserRepo:        userRepo,
		ProgressRepo:    progressRepo,
		CompletionRepo:  completionRepo,
		EnrollmentRepo:  enrollmentRepo,
		SubmissionRepo:  submissionRepo,
		CertificateRepo: certificateRepo,
	}
}

func (e *testEnv) createUser(t *testing.T, name string) *model.User {
	t.Helper()
	user := &model.User{
		Name:         name,
		Email:        name + "@example.com",
		Password:     "hashed",
		Role:         model.Student,
		CurrentLevel: 1,
	}
	require.NoError(t, e.UserRepo.Create(user))
	return user
}

// createCourse 两个章节四个课时: lesson, lesson | assignment, project
func (e *testEnv) createCourse(t *testing.T) *model.Course {
	t.Helper()
	course := &model.Course{
		Slug:  "webdev-" + uuid.New().String()[:8],
		Title: "Web Development Fundamentals",
		Level: "beginner",
		Modules: []model.CourseModule{
			{
				Title: "HTML & CSS Basics",
				Order: 1,
				Lessons: []model.Lesson{
					{Title: "Introduction to HTML", Type: model.LessonTypeLesson, Order: 1, FilePath: "html-css/01-intro.md"},
					{Title: "Styling with CSS", Type: model.LessonTypeLesson, Order: 2, FilePath: "html-css/02-css.md"},
				},
			},
			{
				Title: "JavaScript Essentials",
				Order: 2,
				Lessons: []model.Lesson{
					{
						Title: "Build a Contact Form", Type: model.LessonTypeAssignment, Order: 1,
						SubmissionType: "files", AllowedTypes: ".html,.css", MaxSizeMB: 5, MaxFiles: 3, RequiresURL: true,
					},
					{
						Title: "Portfolio Project", Type: model.LessonTypeProject, Order: 2,
						SubmissionType: "files", AllowedTypes: ".html,.css,.js,.zip", MaxSizeMB: 10, MaxFiles: 5,
						RequiresURL: true, RequiresGitHub: true,
					},
				},
			},
		},
	}
	require.NoError(t, e.DB.Create(course).Error)

	loaded, err := e.Catalog.GetCourseByID(course.ID)
	require.NoError(t, err)
	*course = *loaded
	return course
}

func (e *testEnv) enroll(t *testing.T, userID, courseID uint) {
	t.Helper()
	_, _, err := e.Enrollment.Enroll(userID, courseID)
	require.NoError(t, err)
}

func (e *testEnv) completeAll(t *testing.T, userID uint, course *model.Course) *CompletionResult {
	t.Helper()
	var last *CompletionResult
	for _, lesson := range e.Catalog.FlattenLessons(course) {
		result, err := e.Progression.CompleteLesson(userID, course.ID, lesson.ID)
		require.NoError(t, err)
		last = result
	}
	return last
}
