package service

import (
	"context"
	"encoding/json"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	recommendationKeyPrefix = "recommendations:"
	recommendationTTL       = 10 * time.Minute
	maxRecommendations      = 3
)

// RecommendationService 规则表推荐：按已完成课程的标签找相关课程，
// 没有学习记录时退回入门课。Redis 只作短期缓存，失效则重算
type RecommendationService struct {
	CourseRepo     *repository.CourseRepository
	SubmissionRepo *repository.SubmissionRepository
	Redis          *redis.Client
}

func NewRecommendationService(
	courseRepo *repository.CourseRepository,
	submissionRepo *repository.SubmissionRepository,
	rdb *redis.Client,
) *RecommendationService {
	return &RecommendationService{
		CourseRepo:     courseRepo,
		SubmissionRepo: submissionRepo,
		Redis:          rdb,
	}
}

func (s *RecommendationService) ForStudent(ctx context.Context, studentID uint) ([]model.Recommendation, error) {
	key := recommendationKeyPrefix + util.UintToString(studentID)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var recs []model.Recommendation
			if json.Unmarshal([]byte(cached), &recs) == nil {
				return recs, nil
			}
		}
	}

	recs, err := s.compute(studentID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(recs); err == nil {
			if err := s.Redis.Set(ctx, key, raw, recommendationTTL).Err(); err != nil {
				logger.Log.Warn("recommendation cache write failed", zap.Error(err))
			}
		}
	}

	return recs, nil
}

func (s *RecommendationService) compute(studentID uint) ([]model.Recommendation, error) {
	completedIDs, err := s.SubmissionRepo.FindReviewedCourseIDs(studentID)
	if err != nil {
		return nil, err
	}

	// 没有学习记录：推入门课
	if len(completedIDs) == 0 {
		courses, err := s.CourseRepo.FindAll()
		if err != nil || len(courses) == 0 {
			return []model.Recommendation{}, err
		}
		first := courses[0]
		return []model.Recommendation{{
			CourseID: first.ID,
			Title:    first.Title,
			Reason:   "适合所有人的入门课程",
			Tags:     util.SplitTags(first.Tags),
		}}, nil
	}

	completed, err := s.CourseRepo.FindByIDs(completedIDs)
	if err != nil {
		return nil, err
	}

	completedTags := map[string]bool{}
	for _, c := range completed {
		for _, t := range util.SplitTags(c.Tags) {
			completedTags[t] = true
		}
	}

	candidates, err := s.CourseRepo.FindExcludingIDs(completedIDs)
	if err != nil {
		return nil, err
	}

	recs := make([]model.Recommendation, 0, maxRecommendations)
	for _, c := range candidates {
		if len(recs) >= maxRecommendations {
			break
		}
		for _, t := range util.SplitTags(c.Tags) {
			if completedTags[t] {
				recs = append(recs, model.Recommendation{
					CourseID: c.ID,
					Title:    c.Title,
					Reason:   "与你已完成的课程方向相关",
					Tags:     util.SplitTags(c.Tags),
				})
				break
			}
		}
	}

	// 标签没有交集时给一个兜底推荐
	if len(recs) == 0 && len(candidates) > 0 {
		c := candidates[0]
		recs = append(recs, model.Recommendation{
			CourseID: c.ID,
			Title:    c.Title,
			Reason:   "不妨试试新的方向",
			Tags:     util.SplitTags(c.Tags),
		})
	}

	return recs, nil
}
