package service

import (
	"testing"

	"levelup_backend/internal/model"
	"levelup_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollCreatesRecord(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)

	enrollment, created, err := env.Enrollment.Enroll(user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.EnrollmentInProgress, enrollment.Status)
}

func TestEnrollIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)

	first, created, err := env.Enrollment.Enroll(user.ID, course.ID)
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := env.Enrollment.Enroll(user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	enrollments, err := env.Enrollment.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, enrollments, 1)
}

func TestEnrollUnknownCourse(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	_, _, err := env.Enrollment.Enroll(user.ID, 9999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}
