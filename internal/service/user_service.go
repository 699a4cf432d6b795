package service

import (
	"Murmur/internal/model"
	"Murmur/internal/pkg/kafka"
	"Murmur/internal/pkg/metrics"
	"Murmur/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"
)

type UserService interface {
	RegisterUser(ctx context.Context, username, email string) (*model.User, error)
	FollowUser(ctx context.Context, followerID, targetID uint64) error
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUser(ctx context.Context, id uint64) (*model.User, error)
	GetFollowing(ctx context.Context, id uint64) ([]uint64, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type userServiceImpl struct {
	userRepo       repository.UserRepo
	userFollowRepo repository.UserFollowRepo
	cache          LikeCountCache
	publisher      kafka.Publisher
}

func NewUserService(
	userRepo repository.UserRepo,
	userFollowRepo repository.UserFollowRepo,
	cache LikeCountCache,
	publisher kafka.Publisher,
) UserService {
	return &userServiceImpl{
		userRepo:       userRepo,
		userFollowRepo: userFollowRepo,
		cache:          cache,
		publisher:      publisher,
	}
}

// RegisterUser 不校验用户名和邮箱是否重复
func (s *userServiceImpl) RegisterUser(ctx context.Context, username, email string) (*model.User, error) {
	user := &model.User{
		Username: username,
		Email:    email,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	metrics.UsersRegistered.Inc()
	log.InfoContext(ctx, "user registered", "userID", user.ID)
	return user, nil
}

// FollowUser 单向关注，重复关注不报错
func (s *userServiceImpl) FollowUser(ctx context.Context, followerID, targetID uint64) error {
	follower, err := s.userRepo.GetUserById(ctx, followerID)
	if err != nil {
		return err
	}
	if follower == nil {
		return fmt.Errorf("%w: id=%d", ErrUserNotFound, followerID)
	}

	target, err := s.userRepo.GetUserById(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("%w: id=%d", ErrTargetUserNotFound, targetID)
	}

	existing, err := s.userFollowRepo.GetUserFollow(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	err = s.userFollowRepo.CreateUserFollow(ctx, &model.UserFollow{
		FollowerID:  followerID,
		FollowingID: targetID,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return err
	}

	metrics.Follows.Inc()
	publishEvent(ctx, s.publisher, kafka.NewEvent(kafka.EventUserFollowed, followerID, targetID))
	return nil
}

// FindUserByUsername 不存在时返回 nil, nil
func (s *userServiceImpl) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userRepo.GetUserByUsername(ctx, username)
}

func (s *userServiceImpl) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: id=%d", ErrUserNotFound, id)
	}
	return user, nil
}

func (s *userServiceImpl) GetFollowing(ctx context.Context, id uint64) ([]uint64, error) {
	if _, err := s.GetUser(ctx, id); err != nil {
		return nil, err
	}
	return s.userFollowRepo.GetUserFollowingIDs(ctx, id)
}

// DeleteUser 连同其帖子、点赞和关注关系一起删除
func (s *userServiceImpl) DeleteUser(ctx context.Context, id uint64) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	likedPostIDs, err := s.userRepo.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	for _, postID := range likedPostIDs {
		s.cache.Invalidate(ctx, postID)
	}
	log.InfoContext(ctx, "user deleted", "userID", id, "likesRemoved", len(likedPostIDs))
	return nil
}
