package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"levelup_backend/internal/config"
	"levelup_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLessonPath(t *testing.T) {
	assert.Equal(t, "html-css/01-intro.md", normalizeLessonPath("html-css/01-intro.md"))
	assert.Equal(t, "html-css/01-intro.md", normalizeLessonPath("/html-css/01-intro.md"))
	assert.Equal(t, "html-css/01-intro.md", normalizeLessonPath("src/courses/html-css/01-intro.md"))
}

func TestFetchLessonMarkdown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/src/courses/webdev/html-css/01-intro.md" {
			w.Write([]byte("# Introduction"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.Content.BaseURL = server.URL
	cfg.Content.TimeoutSeconds = 5
	svc := NewContentService(cfg, nil)

	content, err := svc.FetchLessonMarkdown(context.Background(), "webdev", "html-css/01-intro.md")
	require.NoError(t, err)
	assert.Equal(t, "# Introduction", content)

	_, err = svc.FetchLessonMarkdown(context.Background(), "webdev", "missing.md")
	assert.ErrorIs(t, err, util.ErrContentUnavailable)
}
