package service

import (
	"testing"

	"levelup_backend/internal/model"
	"levelup_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteLessonRequiresEnrollment(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	lessons := env.Catalog.FlattenLessons(course)

	_, err := env.Progression.CompleteLesson(user.ID, course.ID, lessons[0].ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestCompleteLessonEnforcesLockChain(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	env.enroll(t, user.ID, course.ID)
	lessons := env.Catalog.FlattenLessons(course)

	// 前一课未完成时后续课时锁定
	_, err := env.Progression.CompleteLesson(user.ID, course.ID, lessons[1].ID)
	assert.ErrorIs(t, err, util.ErrLessonLocked)

	_, err = env.Progression.CompleteLesson(user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)

	_, err = env.Progression.CompleteLesson(user.ID, course.ID, lessons[1].ID)
	assert.NoError(t, err)
}

func TestCompleteLessonAwardsPointsByType(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	env.enroll(t, user.ID, course.ID)
	lessons := env.Catalog.FlattenLessons(course)

	result, err := env.Progression.CompleteLesson(user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 15, result.PointsAwarded)
	assert.Equal(t, 15, result.TotalPoints)

	_, err = env.Progression.CompleteLesson(user.ID, course.ID, lessons[1].ID)
	require.NoError(t, err)

	result, err = env.Progression.CompleteLesson(user.ID, course.ID, lessons[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 25, result.PointsAwarded) // assignment
}

func TestCompleteLessonIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	env.enroll(t, user.ID, course.ID)
	lessons := env.Catalog.FlattenLessons(course)

	first, err := env.Progression.CompleteLesson(user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)
	require.False(t, first.AlreadyCompleted)

	second, err := env.Progression.CompleteLesson(user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.True(t, second.AlreadyCompleted)
	assert.Zero(t, second.PointsAwarded)

	user2, err := env.UserRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, user2.TotalPoints)
}

func TestProgressPercentageRoundsHalfUp(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	env.enroll(t, user.ID, course.ID)
	lessons := env.Catalog.FlattenLessons(course)

	result, err := env.Progression.CompleteLesson(user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Progress.CompletedLessons)
	assert.Equal(t, 4, result.Progress.TotalLessons)
	assert.Equal(t, 25, result.Progress.Percentage)

	// 3/4 = 75%，中间再验证 round(100*2/4)
	result, err = env.Progression.CompleteLesson(user.ID, course.ID, lessons[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 50, result.Progress.Percentage)
}

func TestCourseCompletionBonus(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	env.enroll(t, user.ID, course.ID)

	last := env.completeAll(t, user.ID, course)
	require.True(t, last.CourseCompleted)
	// project 50 + 课程完成 100
	assert.Equal(t, 150, last.PointsAwarded)
	assert.Equal(t, 100, last.Progress.Percentage)

	// 15 + 15 + 25 + 50 + 100
	user2, err := env.UserRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 205, user2.TotalPoints)
	assert.Equal(t, 25, user2.Coins)

	completion, err := env.CompletionRepo.Find(user.ID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, completion)

	enrollment, err := env.EnrollmentRepo.Find(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentCompleted, enrollment.Status)
}

func TestCompleteLessonLevelUp(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	env.enroll(t, user.ID, course.ID)
	lessons := env.Catalog.FlattenLessons(course)

	// 预置到升级阈值附近：升到 2 级需要 500 分
	_, err := env.Rewards.AddPoints(user.ID, 490)
	require.NoError(t, err)

	result, err := env.Progression.CompleteLesson(user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, 2, result.NewLevel)
}

func TestGetCourseViewLockStates(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)

	// 未报名：全部锁定
	view, err := env.Progression.GetCourseView(user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, view.IsEnrolled)
	for _, module := range view.Modules {
		for _, lesson := range module.Lessons {
			assert.True(t, lesson.IsLocked)
		}
	}

	env.enroll(t, user.ID, course.ID)

	// 已报名：仅第一课解锁
	view, err = env.Progression.GetCourseView(user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, view.IsEnrolled)
	assert.False(t, view.Modules[0].Lessons[0].IsLocked)
	assert.True(t, view.Modules[0].Lessons[1].IsLocked)
	assert.True(t, view.Modules[1].Lessons[0].IsLocked)

	lessons := env.Catalog.FlattenLessons(course)
	_, err = env.Progression.CompleteLesson(user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)

	// 完成第一课后：第一课标记完成，第二课解锁
	view, err = env.Progression.GetCourseView(user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, view.Modules[0].Lessons[0].IsCompleted)
	assert.False(t, view.Modules[0].Lessons[0].IsLocked)
	assert.False(t, view.Modules[0].Lessons[1].IsLocked)
	assert.True(t, view.Modules[1].Lessons[0].IsLocked)
	assert.Equal(t, 25, view.Progress)
}

func TestStatsAggregation(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	env.enroll(t, user.ID, course.ID)
	env.completeAll(t, user.ID, course)

	stats, err := env.Progression.Stats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 205, stats.TotalPoints)
	assert.Equal(t, 4, stats.LessonsCompleted)
	assert.Equal(t, 1, stats.CoursesEnrolled)
	assert.Equal(t, 1, stats.CoursesCompleted)
	assert.Equal(t, 1, stats.CurrentLevel)
	assert.Equal(t, 205, stats.PointsProgress)
	assert.Equal(t, 500, stats.PointsNeeded)
}

func TestGetLessonViewStates(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	lessons := env.Catalog.FlattenLessons(course)

	// 未报名：锁定
	view, err := env.Progression.GetLessonView(user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.True(t, view.IsLocked)
	assert.False(t, view.IsCompleted)

	env.enroll(t, user.ID, course.ID)

	view, err = env.Progression.GetLessonView(user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.False(t, view.IsLocked)

	view, err = env.Progression.GetLessonView(user.ID, course.ID, lessons[1].ID)
	require.NoError(t, err)
	assert.True(t, view.IsLocked)

	_, err = env.Progression.CompleteLesson(user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)

	view, err = env.Progression.GetLessonView(user.ID, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.True(t, view.IsCompleted)
	assert.False(t, view.IsLocked)

	view, err = env.Progression.GetLessonView(user.ID, course.ID, lessons[1].ID)
	require.NoError(t, err)
	assert.False(t, view.IsLocked)

	_, err = env.Progression.GetLessonView(user.ID, course.ID, 9999)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}
