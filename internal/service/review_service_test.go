package service

import (
	"testing"

	"levelup_backend/internal/model"
	"levelup_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRequestRequiresQuestion(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	lessons := env.Catalog.FlattenLessons(course)

	_, err := env.Reviews.SubmitRequest(user.ID, course.ID, lessons[0].ID, "   ", "", "")
	var validation *util.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestReviewFeedbackRewardsReviewer(t *testing.T) {
	env := newTestEnv(t)
	asker := env.createUser(t, "alice")
	helper := env.createUser(t, "bob")
	course := env.createCourse(t)
	lessons := env.Catalog.FlattenLessons(course)

	request, err := env.Reviews.SubmitRequest(asker.ID, course.ID, lessons[0].ID, "flex 布局为什么不生效", "", "")
	require.NoError(t, err)
	assert.Equal(t, model.ReviewRequestOpen, request.Status)

	review, err := env.Reviews.SubmitFeedback(helper.ID, request.ID, 0, "父容器缺少 display: flex")
	require.NoError(t, err)
	assert.Equal(t, request.ID, review.RequestID)

	user, err := env.UserRepo.FindByID(helper.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, user.TotalPoints)
	assert.Equal(t, 8, user.Coins)
}

func TestReviewFeedbackOnResolvedRequest(t *testing.T) {
	env := newTestEnv(t)
	asker := env.createUser(t, "alice")
	helper := env.createUser(t, "bob")
	course := env.createCourse(t)
	lessons := env.Catalog.FlattenLessons(course)

	request, err := env.Reviews.SubmitRequest(asker.ID, course.ID, lessons[0].ID, "问题", "", "")
	require.NoError(t, err)

	require.NoError(t, env.Reviews.Resolve(asker.ID, request.ID))

	_, err = env.Reviews.SubmitFeedback(helper.ID, request.ID, 0, "回复")
	assert.ErrorIs(t, err, util.ErrRequestResolved)
}

func TestResolveOnlyByOwner(t *testing.T) {
	env := newTestEnv(t)
	asker := env.createUser(t, "alice")
	other := env.createUser(t, "bob")
	course := env.createCourse(t)
	lessons := env.Catalog.FlattenLessons(course)

	request, err := env.Reviews.SubmitRequest(asker.ID, course.ID, lessons[0].ID, "问题", "", "")
	require.NoError(t, err)

	err = env.Reviews.Resolve(other.ID, request.ID)
	assert.ErrorIs(t, err, util.ErrUnauthorized)
}
