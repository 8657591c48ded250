package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"levelup_backend/internal/config"
	"levelup_backend/internal/util"
	"levelup_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ContentService 从外部内容仓库拉取课时 markdown，redis 缓存。
// 内容拉取失败只影响展示，绝不影响进度状态。
type ContentService struct {
	Cfg    *config.Config
	Redis  *redis.Client
	client *http.Client
}

func NewContentService(cfg *config.Config, rdb *redis.Client) *ContentService {
	timeout := time.Duration(cfg.Content.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ContentService{
		Cfg:    cfg,
		Redis:  rdb,
		client: &http.Client{Timeout: timeout},
	}
}

const lessonContentKeyPrefix = "lesson_md:"

// FetchLessonMarkdown 按课程 slug 和相对路径拉取 markdown 文本
func (s *ContentService) FetchLessonMarkdown(ctx context.Context, courseSlug, filePath string) (string, error) {
	path := normalizeLessonPath(filePath)
	cacheKey := lessonContentKeyPrefix + courseSlug + ":" + path

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, cacheKey).Result()
		if err == nil {
			return cached, nil
		}
		if err != redis.Nil {
			logger.Log.Warn("content cache read failed", zap.Error(err))
		}
	}

	url := fmt.Sprintf("%s/src/courses/%s/%s", strings.TrimRight(s.Cfg.Content.BaseURL, "/"), courseSlug, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Log.Warn("content fetch failed", zap.String("url", url), zap.Error(err))
		return "", util.ErrContentUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Warn("content fetch returned non-200", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return "", util.ErrContentUnavailable
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", util.ErrContentUnavailable
	}

	content := string(body)

	if s.Redis != nil {
		ttl := time.Duration(s.Cfg.Content.CacheTTLMinutes) * time.Minute
		if ttl <= 0 {
			ttl = 30 * time.Minute
		}
		if err := s.Redis.Set(ctx, cacheKey, content, ttl).Err(); err != nil {
			logger.Log.Warn("content cache write failed", zap.Error(err))
		}
	}

	return content, nil
}

// 历史数据中的 filePath 存在三种形式，统一剥掉 src/courses 前缀
func normalizeLessonPath(filePath string) string {
	path := strings.TrimPrefix(filePath, "/")
	path = strings.TrimPrefix(path, "src/courses/")
	return path
}
