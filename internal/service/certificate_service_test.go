package service

import (
	"testing"

	"levelup_backend/internal/model"
	"levelup_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createCertificate(t *testing.T, courseID uint) *model.Certificate {
	t.Helper()
	certificate := &model.Certificate{
		CourseID:    courseID,
		CourseName:  "Web Development Fundamentals",
		Title:       "Web Development Fundamentals 结业证书",
		IsClaimable: true,
	}
	require.NoError(t, e.DB.Create(certificate).Error)
	return certificate
}

func TestClaimRequiresCourseCompletion(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	certificate := env.createCertificate(t, course.ID)

	_, err := env.Certificates.Claim(user.ID, certificate.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotCompleted)
}

func TestClaimAwardsBonusAndGeneratesToken(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	certificate := env.createCertificate(t, course.ID)
	env.enroll(t, user.ID, course.ID)
	env.completeAll(t, user.ID, course)

	claim, err := env.Certificates.Claim(user.ID, certificate.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, claim.TokenID)

	user2, err := env.UserRepo.FindByID(user.ID)
	require.NoError(t, err)
	// 课程 205 + 证书 100
	assert.Equal(t, 305, user2.TotalPoints)
	// 课程完成 25 + 证书 50
	assert.Equal(t, 75, user2.Coins)
}

func TestClaimIsOneWay(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	certificate := env.createCertificate(t, course.ID)
	env.enroll(t, user.ID, course.ID)
	env.completeAll(t, user.ID, course)

	first, err := env.Certificates.Claim(user.ID, certificate.ID)
	require.NoError(t, err)

	second, err := env.Certificates.Claim(user.ID, certificate.ID)
	assert.ErrorIs(t, err, util.ErrCertificateClaimed)
	require.NotNil(t, second)
	assert.Equal(t, first.TokenID, second.TokenID)
}

func TestListForUserMarksClaimed(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	certificate := env.createCertificate(t, course.ID)
	env.enroll(t, user.ID, course.ID)
	env.completeAll(t, user.ID, course)

	views, err := env.Certificates.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].Claimed)

	_, err = env.Certificates.Claim(user.ID, certificate.ID)
	require.NoError(t, err)

	views, err = env.Certificates.ListForUser(user.ID)
	require.NoError(t, err)
	assert.True(t, views[0].Claimed)
	assert.NotEmpty(t, views[0].TokenID)
}

func TestClaimNotClaimableTemplate(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	certificate := env.createCertificate(t, course.ID)
	require.NoError(t, env.DB.Model(certificate).Update("is_claimable", false).Error)
	env.enroll(t, user.ID, course.ID)
	env.completeAll(t, user.ID, course)

	_, err := env.Certificates.Claim(user.ID, certificate.ID)
	assert.ErrorIs(t, err, util.ErrCertificateNotClaimable)
}
