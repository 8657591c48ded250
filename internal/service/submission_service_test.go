package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"levelup_backend/internal/model"
	"levelup_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unlockAssignment 完成前两课，解锁 assignment 课时
func unlockAssignment(t *testing.T, env *testEnv, userID uint, course *model.Course) *model.Lesson {
	t.Helper()
	lessons := env.Catalog.FlattenLessons(course)
	for _, lesson := range lessons[:2] {
		_, err := env.Progression.CompleteLesson(userID, course.ID, lesson.ID)
		require.NoError(t, err)
	}
	return &lessons[2]
}

func validPayload() *SubmissionPayload {
	return &SubmissionPayload{
		URL: "https://example.com/demo",
		Files: []SubmissionUpload{
			{Name: "index.html", Size: 1024, ContentType: "text/html", Reader: strings.NewReader("<html></html>")},
		},
	}
}

func TestSubmitValidationCollectsAllViolations(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	env.enroll(t, user.ID, course.ID)
	lesson := unlockAssignment(t, env, user.ID, course)

	payload := &SubmissionPayload{
		Files: []SubmissionUpload{
			{Name: "demo.exe", Size: 1024, Reader: strings.NewReader("x")},
			{Name: "big.html", Size: 6 * 1024 * 1024, Reader: strings.NewReader("x")},
			{Name: "a.css", Size: 10, Reader: strings.NewReader("x")},
			{Name: "b.css", Size: 10, Reader: strings.NewReader("x")},
		},
	}

	_, _, err := env.Submissions.Submit(context.Background(), user.ID, course.ID, lesson.ID, payload)
	var validation *util.ValidationError
	require.ErrorAs(t, err, &validation)

	// 缺链接 + 超文件数 + 类型不允许 + 超大小，一次性全部返回
	assert.Len(t, validation.Violations, 4)
}

func TestSubmitRejectsLockedLesson(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	env.enroll(t, user.ID, course.ID)
	lessons := env.Catalog.FlattenLessons(course)

	_, _, err := env.Submissions.Submit(context.Background(), user.ID, course.ID, lessons[2].ID, validPayload())
	assert.ErrorIs(t, err, util.ErrLessonLocked)
}

func TestSubmitAutoCompletesAssignment(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	env.enroll(t, user.ID, course.ID)
	lesson := unlockAssignment(t, env, user.ID, course)

	submission, completion, err := env.Submissions.Submit(context.Background(), user.ID, course.ID, lesson.ID, validPayload())
	require.NoError(t, err)
	require.NotNil(t, submission)
	assert.Equal(t, model.SubmissionSubmitted, submission.Status)
	require.Len(t, submission.Files, 1)
	assert.NotEmpty(t, submission.Files[0].URL)

	require.NotNil(t, completion)
	assert.Equal(t, 25, completion.PointsAwarded)

	progress, err := env.ProgressRepo.Find(user.ID, lesson.ID)
	require.NoError(t, err)
	require.NotNil(t, progress)
}

func TestPeerReviewRewardsReviewer(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	reviewer := env.createUser(t, "bob")
	course := env.createCourse(t)
	env.enroll(t, author.ID, course.ID)
	lesson := unlockAssignment(t, env, author.ID, course)

	submission, _, err := env.Submissions.Submit(context.Background(), author.ID, course.ID, lesson.ID, validPayload())
	require.NoError(t, err)

	review, err := env.Submissions.SubmitPeerReview(reviewer.ID, submission.ID, 4, "结构清晰，样式可以再打磨")
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)

	user, err := env.UserRepo.FindByID(reviewer.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, user.TotalPoints)
	assert.Equal(t, 5, user.Coins)

	reloaded, err := env.Submissions.GetByID(submission.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionReviewed, reloaded.Status)
	assert.Len(t, reloaded.PeerReviews, 1)
}

func TestPeerReviewRejectsOwnSubmission(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	course := env.createCourse(t)
	env.enroll(t, author.ID, course.ID)
	lesson := unlockAssignment(t, env, author.ID, course)

	submission, _, err := env.Submissions.Submit(context.Background(), author.ID, course.ID, lesson.ID, validPayload())
	require.NoError(t, err)

	_, err = env.Submissions.SubmitPeerReview(author.ID, submission.ID, 5, "自评")
	assert.ErrorIs(t, err, util.ErrOwnSubmission)
}

func TestPeerQueueExcludesOwnSubmissions(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	other := env.createUser(t, "bob")
	course := env.createCourse(t)
	env.enroll(t, author.ID, course.ID)
	env.enroll(t, other.ID, course.ID)
	lesson := unlockAssignment(t, env, author.ID, course)
	unlockAssignment(t, env, other.ID, course)

	_, _, err := env.Submissions.Submit(context.Background(), author.ID, course.ID, lesson.ID, validPayload())
	require.NoError(t, err)
	_, _, err = env.Submissions.Submit(context.Background(), other.ID, course.ID, lesson.ID, validPayload())
	require.NoError(t, err)

	queue, err := env.Submissions.PeerQueue(author.ID, course.ID, lesson.ID)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, other.ID, queue[0].UserID)
}

func TestListForLessonAndReviews(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "alice")
	reviewer := env.createUser(t, "bob")
	course := env.createCourse(t)
	env.enroll(t, author.ID, course.ID)
	lesson := unlockAssignment(t, env, author.ID, course)

	submission, _, err := env.Submissions.Submit(context.Background(), author.ID, course.ID, lesson.ID, validPayload())
	require.NoError(t, err)

	listed, err := env.Submissions.ListForLesson(course.ID, lesson.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, submission.ID, listed[0].ID)

	reviews, err := env.Submissions.ListReviews(submission.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	_, err = env.Submissions.SubmitPeerReview(reviewer.ID, submission.ID, 5, "干净利落")
	require.NoError(t, err)

	reviews, err = env.Submissions.ListReviews(submission.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, reviewer.ID, reviews[0].ReviewerID)

	_, err = env.Submissions.ListReviews(9999)
	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)
}

// recordingProvider 记录上传与删除的 key，用于验证失败路径的清理
type recordingProvider struct {
	uploaded []string
	deleted  []string
}

func (p *recordingProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	p.uploaded = append(p.uploaded, filename)
	return "/uploads/" + filename, nil
}

func (p *recordingProvider) Delete(ctx context.Context, filename string) error {
	p.deleted = append(p.deleted, filename)
	return nil
}

func (p *recordingProvider) GetURL(filename string) string {
	return "/uploads/" + filename
}

func TestSubmitCleansUpFilesWhenInsertFails(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t)
	env.enroll(t, user.ID, course.ID)
	lesson := unlockAssignment(t, env, user.ID, course)

	provider := &recordingProvider{}
	env.Submissions.Storage = &StorageService{Provider: provider}

	// 表缺失时插入必然失败
	require.NoError(t, env.DB.Migrator().DropTable(&model.Submission{}))

	_, _, err := env.Submissions.Submit(context.Background(), user.ID, course.ID, lesson.ID, validPayload())
	require.Error(t, err)

	require.Len(t, provider.uploaded, 1)
	assert.Equal(t, provider.uploaded, provider.deleted)
}
