package service

import (
	"errors"
	"fmt"
	"time"

	"levelup_backend/internal/model"
	"levelup_backend/internal/repository"
	"levelup_backend/internal/util"
	"levelup_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// 课时完成积分，按课时类型区分
var lessonPoints = map[model.LessonType]int{
	model.LessonTypeLesson:     15,
	model.LessonTypeAssignment: 25,
	model.LessonTypeProject:    50,
}

const defaultLessonPoints = 10

const (
	courseCompletionBonus = 100
	courseCompletionCoins = 25
)

// PointsForLesson 完成该课时获得的积分
func PointsForLesson(lessonType model.LessonType) int {
	if points, ok := lessonPoints[lessonType]; ok {
		return points
	}
	return defaultLessonPoints
}

// CompletionResult 单次完成操作产生的全部状态变化
type CompletionResult struct {
	AlreadyCompleted bool                 `json:"alreadyCompleted"`
	PointsAwarded    int                  `json:"pointsAwarded"`
	CourseCompleted  bool                 `json:"courseCompleted"`
	LeveledUp        bool                 `json:"leveledUp"`
	NewLevel         int                  `json:"newLevel"`
	TotalPoints      int                  `json:"totalPoints"`
	Progress         model.CourseProgress `json:"progress"`
	NextLesson       *model.Lesson        `json:"nextLesson,omitempty"`
}

// ProgressionService 课时状态机与课程进度。完成写入走单事务，
// 积分与进度要么同时生效要么都不生效。
type ProgressionService struct {
	DB             *gorm.DB
	Catalog        *CatalogService
	Rewards        *RewardsService
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.ProgressRepository
	CompletionRepo *repository.CompletionRepository
	Notifications  *NotificationService
}

func NewProgressionService(
	db *gorm.DB,
	catalog *CatalogService,
	rewards *RewardsService,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	completionRepo *repository.CompletionRepository,
	notifications *NotificationService,
) *ProgressionService {
	return &ProgressionService{
		DB:             db,
		Catalog:        catalog,
		Rewards:        rewards,
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		CompletionRepo: completionRepo,
		Notifications:  notifications,
	}
}

// CourseProgressFor 课程进度。百分比 = round(100 * 已完成 / 总数)，四舍五入
func (s *ProgressionService) CourseProgressFor(userID uint, course *model.Course) (model.CourseProgress, error) {
	lessons := s.Catalog.FlattenLessons(course)
	completed, err := s.ProgressRepo.CompletedSet(userID, course.ID)
	if err != nil {
		return model.CourseProgress{}, err
	}

	count := 0
	for _, lesson := range lessons {
		if completed[lesson.ID] {
			count++
		}
	}

	progress := model.CourseProgress{
		CompletedLessons: count,
		TotalLessons:     len(lessons),
	}
	if progress.TotalLessons > 0 {
		progress.Percentage = (100*count + progress.TotalLessons/2) / progress.TotalLessons
	}
	return progress, nil
}

// GetCourseView 按学员视角装饰课程：每课时的完成/锁定状态和总进度。
// 未报名时所有课时锁定；第一课解锁，其余课时由前一课是否完成决定。
func (s *ProgressionService) GetCourseView(userID uint, courseID uint) (*model.CourseView, error) {
	course, err := s.Catalog.GetCourseByID(courseID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.EnrollmentRepo.Find(userID, courseID)
	if err != nil {
		return nil, err
	}
	enrolled := enrollment != nil

	completed := map[uint]bool{}
	if enrolled {
		completed, err = s.ProgressRepo.CompletedSet(userID, courseID)
		if err != nil {
			return nil, err
		}
	}

	view := &model.CourseView{
		ID:            course.ID,
		Title:         course.Title,
		Description:   course.Description,
		Level:         course.Level,
		DurationLabel: course.DurationLabel,
		IsEnrolled:    enrolled,
	}

	prevCompleted := true
	totalLessons := 0
	completedCount := 0
	for _, module := range course.Modules {
		moduleView := model.ModuleView{
			ID:    module.ID,
			Title: module.Title,
			Order: module.Order,
		}
		for _, lesson := range module.Lessons {
			isCompleted := completed[lesson.ID]
			locked := !enrolled || !prevCompleted
			moduleView.Lessons = append(moduleView.Lessons, model.LessonView{
				Lesson:      lesson,
				IsCompleted: isCompleted,
				IsLocked:    locked && !isCompleted,
			})
			prevCompleted = isCompleted
			totalLessons++
			if isCompleted {
				completedCount++
			}
		}
		view.Modules = append(view.Modules, moduleView)
	}

	if totalLessons > 0 {
		view.Progress = (100*completedCount + totalLessons/2) / totalLessons
	}

	completion, err := s.CompletionRepo.Find(userID, courseID)
	if err != nil {
		return nil, err
	}
	view.IsCompleted = completion != nil

	return view, nil
}

// EnsureUnlocked 校验课时当前可操作：已报名且前驱课时已完成
func (s *ProgressionService) EnsureUnlocked(userID uint, course *model.Course, lessonID uint) error {
	enrollment, err := s.EnrollmentRepo.Find(userID, course.ID)
	if err != nil {
		return err
	}
	if enrollment == nil {
		return util.ErrNotEnrolled
	}

	prev := s.Catalog.PreviousLesson(course, lessonID)
	if prev == nil {
		return nil
	}

	progress, err := s.ProgressRepo.Find(userID, prev.ID)
	if err != nil {
		return err
	}
	if progress == nil {
		return util.ErrLessonLocked
	}
	return nil
}

// CompleteLesson 完成课时。幂等：重复完成不再加分。
// 课程最后一课完成时写入 Completion 并发放课程奖励。
func (s *ProgressionService) CompleteLesson(userID, courseID, lessonID uint) (*CompletionResult, error) {
	course, err := s.Catalog.GetCourseByID(courseID)
	if err != nil {
		return nil, err
	}

	lesson, err := s.Catalog.GetLessonByID(course, lessonID)
	if err != nil {
		return nil, err
	}

	if err := s.EnsureUnlocked(userID, course, lessonID); err != nil {
		return nil, err
	}

	existing, err := s.ProgressRepo.Find(userID, lessonID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		progress, err := s.CourseProgressFor(userID, course)
		if err != nil {
			return nil, err
		}
		return &CompletionResult{
			AlreadyCompleted: true,
			Progress:         progress,
			NextLesson:       s.Catalog.NextLesson(course, lessonID),
		}, nil
	}

	module := s.Catalog.ModuleForLesson(course, lessonID)
	points := PointsForLesson(lesson.Type)

	result := &CompletionResult{PointsAwarded: points}
	var userBefore *model.User

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var before model.User
		if err := tx.First(&before, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrUserNotFound
			}
			return err
		}
		userBefore = &before

		record := &model.Progress{
			UserID:       userID,
			LessonID:     lessonID,
			CourseID:     courseID,
			ModuleID:     module.ID,
			CompletedAt:  time.Now(),
			PointsEarned: points,
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		totalPoints := points

		// 最后一课完成则课程完成
		var completedCount int64
		if err := tx.Model(&model.Progress{}).
			Where("user_id = ? AND course_id = ?", userID, courseID).
			Count(&completedCount).Error; err != nil {
			return err
		}
		lessons := s.Catalog.FlattenLessons(course)
		if int(completedCount) == len(lessons) {
			completion := &model.Completion{
				UserID:      userID,
				CourseID:    courseID,
				CompletedAt: time.Now(),
			}
			if err := tx.Create(completion).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Enrollment{}).
				Where("user_id = ? AND course_id = ?", userID, courseID).
				Update("status", model.EnrollmentCompleted).Error; err != nil {
				return err
			}
			if err := s.Rewards.AddCoinsIn(tx, userID, courseCompletionCoins); err != nil {
				return err
			}
			totalPoints += courseCompletionBonus
			result.CourseCompleted = true
			result.PointsAwarded = totalPoints
		}

		updated, err := s.Rewards.AddPointsIn(tx, userID, totalPoints)
		if err != nil {
			return err
		}
		result.TotalPoints = updated.TotalPoints
		result.NewLevel = updated.CurrentLevel
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.LeveledUp = userBefore != nil && result.NewLevel > userBefore.CurrentLevel
	result.NextLesson = s.Catalog.NextLesson(course, lessonID)

	progress, err := s.CourseProgressFor(userID, course)
	if err != nil {
		return nil, err
	}
	result.Progress = progress

	monitoring.LessonCompletions.WithLabelValues(string(lesson.Type)).Inc()

	s.Notifications.Notify(userID, fmt.Sprintf("完成课时「%s」，获得 %d 积分", lesson.Title, points), model.SeveritySuccess)
	if result.CourseCompleted {
		s.Notifications.Notify(userID, fmt.Sprintf("恭喜完成课程「%s」，奖励 %d 积分", course.Title, courseCompletionBonus), model.SeveritySuccess)
	}
	if result.LeveledUp {
		s.Notifications.Notify(userID, fmt.Sprintf("升级到 %d 级，可领取 %d 代币", result.NewLevel, TokensForLevel(result.NewLevel)), model.SeveritySuccess)
	}

	return result, nil
}

// Stats 学员总体进度统计
func (s *ProgressionService) Stats(userID uint) (*model.ProgressStats, error) {
	user, err := s.Rewards.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	lessonsCompleted, err := s.ProgressRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	coursesEnrolled, err := s.EnrollmentRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	coursesCompleted, err := s.CompletionRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	pointsProgress, pointsNeeded, percentage := s.Rewards.LevelSnapshot(user)

	return &model.ProgressStats{
		TotalPoints:        user.TotalPoints,
		CurrentLevel:       user.CurrentLevel,
		Coins:              user.Coins,
		LessonsCompleted:   int(lessonsCompleted),
		CoursesEnrolled:    int(coursesEnrolled),
		CoursesCompleted:   int(coursesCompleted),
		PointsProgress:     pointsProgress,
		PointsNeeded:       pointsNeeded,
		ProgressPercentage: percentage,
	}, nil
}

// GetLessonView 单个课时的学员视角状态
func (s *ProgressionService) GetLessonView(userID, courseID, lessonID uint) (*model.LessonView, error) {
	course, err := s.Catalog.GetCourseByID(courseID)
	if err != nil {
		return nil, err
	}
	lesson, err := s.Catalog.GetLessonByID(course, lessonID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.EnrollmentRepo.Find(userID, courseID)
	if err != nil {
		return nil, err
	}
	enrolled := enrollment != nil

	completed := map[uint]bool{}
	if enrolled {
		completed, err = s.ProgressRepo.CompletedSet(userID, courseID)
		if err != nil {
			return nil, err
		}
	}

	locked := !enrolled
	if prev := s.Catalog.PreviousLesson(course, lessonID); prev != nil && !completed[prev.ID] {
		locked = true
	}

	isCompleted := completed[lessonID]
	return &model.LessonView{
		Lesson:      *lesson,
		IsCompleted: isCompleted,
		IsLocked:    locked && !isCompleted,
	}, nil
}
