package service

import (
	"Murmur/internal/model"
	"Murmur/internal/pkg/kafka"
	"Murmur/internal/pkg/metrics"
	"Murmur/internal/repository"
	"context"
	"fmt"
	"time"
)

type LikeService interface {
	LikePost(ctx context.Context, userID, postID uint64) error
	UnlikePost(ctx context.Context, userID, postID uint64) error
	GetLikeCount(ctx context.Context, postID uint64) (int64, error)
	RecountLikes(ctx context.Context, postID uint64) (int64, error)
}

type likeServiceImpl struct {
	likeRepo  repository.LikeRepo
	userRepo  repository.UserRepo
	postRepo  repository.PostRepo
	cache     LikeCountCache
	publisher kafka.Publisher
}

func NewLikeService(
	likeRepo repository.LikeRepo,
	userRepo repository.UserRepo,
	postRepo repository.PostRepo,
	cache LikeCountCache,
	publisher kafka.Publisher,
) LikeService {
	return &likeServiceImpl{
		likeRepo:  likeRepo,
		userRepo:  userRepo,
		postRepo:  postRepo,
		cache:     cache,
		publisher: publisher,
	}
}

// LikePost NotLiked -> Liked
func (s *likeServiceImpl) LikePost(ctx context.Context, userID, postID uint64) error {
	if err := s.checkUserAndPost(ctx, userID, postID); err != nil {
		return err
	}

	existing, err := s.likeRepo.GetLike(ctx, userID, postID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: user=%d post=%d", ErrPostAlreadyLiked, userID, postID)
	}

	err = s.likeRepo.CreateLike(ctx, &model.Like{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		// 并发点赞由唯一索引拦截
		if isDuplicateError(err) {
			return fmt.Errorf("%w: user=%d post=%d", ErrPostAlreadyLiked, userID, postID)
		}
		return err
	}

	s.cache.Invalidate(ctx, postID)
	metrics.LikeActions.WithLabelValues("like").Inc()
	publishEvent(ctx, s.publisher, kafka.NewEvent(kafka.EventPostLiked, userID, postID))
	return nil
}

// UnlikePost Liked -> NotLiked
func (s *likeServiceImpl) UnlikePost(ctx context.Context, userID, postID uint64) error {
	if err := s.checkUserAndPost(ctx, userID, postID); err != nil {
		return err
	}

	like, err := s.likeRepo.GetLike(ctx, userID, postID)
	if err != nil {
		return err
	}
	if like == nil {
		return fmt.Errorf("%w: user=%d post=%d", ErrLikeNotFound, userID, postID)
	}

	rows, err := s.likeRepo.DeleteLike(ctx, like.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: user=%d post=%d", ErrLikeNotFound, userID, postID)
	}

	s.cache.Invalidate(ctx, postID)
	metrics.LikeActions.WithLabelValues("unlike").Inc()
	publishEvent(ctx, s.publisher, kafka.NewEvent(kafka.EventPostUnliked, userID, postID))
	return nil
}

func (s *likeServiceImpl) GetLikeCount(ctx context.Context, postID uint64) (int64, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, fmt.Errorf("%w: id=%d", ErrPostNotFound, postID)
	}

	if count, ok := s.cache.Get(ctx, postID); ok {
		return count, nil
	}
	return s.RecountLikes(ctx, postID)
}

// RecountLikes 以数据库为准重新计数并回填缓存
func (s *likeServiceImpl) RecountLikes(ctx context.Context, postID uint64) (int64, error) {
	count, err := s.likeRepo.GetLikeCountByPostID(ctx, postID)
	if err != nil {
		return 0, err
	}
	s.cache.Set(ctx, postID, count)
	return count, nil
}

// checkUserAndPost 先查用户再查帖子，两者都缺失时报用户不存在
func (s *likeServiceImpl) checkUserAndPost(ctx context.Context, userID, postID uint64) error {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: id=%d", ErrUserNotFound, userID)
	}

	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("%w: id=%d", ErrPostNotFound, postID)
	}
	return nil
}
