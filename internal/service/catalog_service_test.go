package service

import (
	"testing"

	"levelup_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenLessonsOrder(t *testing.T) {
	env := newTestEnv(t)
	course := env.createCourse(t)

	lessons := env.Catalog.FlattenLessons(course)
	require.Len(t, lessons, 4)
	assert.Equal(t, "Introduction to HTML", lessons[0].Title)
	assert.Equal(t, "Styling with CSS", lessons[1].Title)
	assert.Equal(t, "Build a Contact Form", lessons[2].Title)
	assert.Equal(t, "Portfolio Project", lessons[3].Title)
}

func TestNextAndPreviousLesson(t *testing.T) {
	env := newTestEnv(t)
	course := env.createCourse(t)
	lessons := env.Catalog.FlattenLessons(course)

	assert.Nil(t, env.Catalog.PreviousLesson(course, lessons[0].ID))
	assert.Equal(t, lessons[1].ID, env.Catalog.NextLesson(course, lessons[0].ID).ID)

	// 跨章节衔接
	assert.Equal(t, lessons[2].ID, env.Catalog.NextLesson(course, lessons[1].ID).ID)
	assert.Equal(t, lessons[1].ID, env.Catalog.PreviousLesson(course, lessons[2].ID).ID)

	assert.Nil(t, env.Catalog.NextLesson(course, lessons[3].ID))
}

func TestGetCourseByIDNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Catalog.GetCourseByID(9999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestGetLessonByIDNotInCourse(t *testing.T) {
	env := newTestEnv(t)
	course := env.createCourse(t)

	_, err := env.Catalog.GetLessonByID(course, 9999)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}
