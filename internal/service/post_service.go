package service

import (
	"Murmur/internal/model"
	"Murmur/internal/pkg/kafka"
	"Murmur/internal/pkg/metrics"
	"Murmur/internal/repository"
	"context"
	"fmt"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, title, body string) (*model.Post, error)
	GetPostsByUser(ctx context.Context, userID uint64) ([]*model.Post, error)
	GetAllPosts(ctx context.Context) ([]*model.Post, error)
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	UpdateLikesCount(ctx context.Context, id uint64, count int64) error
}

type postServiceImpl struct {
	postRepo  repository.PostRepo
	userRepo  repository.UserRepo
	publisher kafka.Publisher
}

func NewPostService(
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
	publisher kafka.Publisher,
) PostService {
	return &postServiceImpl{
		postRepo:  postRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

func (s *postServiceImpl) CreatePost(ctx context.Context, userID uint64, title, body string) (*model.Post, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: id=%d", ErrUserNotFound, userID)
	}

	post := &model.Post{
		AuthorID: user.ID,
		Title:    title,
		Body:     body,
		Author:   *user,
	}
	if err = s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	metrics.PostsCreated.Inc()
	publishEvent(ctx, s.publisher, kafka.NewEvent(kafka.EventPostCreated, userID, post.ID))
	return post, nil
}

// GetPostsByUser 作者不存在或没有帖子时返回空切片
func (s *postServiceImpl) GetPostsByUser(ctx context.Context, userID uint64) ([]*model.Post, error) {
	return s.postRepo.GetPostsByAuthorId(ctx, userID)
}

func (s *postServiceImpl) GetAllPosts(ctx context.Context) ([]*model.Post, error) {
	return s.postRepo.GetAllPosts(ctx)
}

func (s *postServiceImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("%w: id=%d", ErrPostNotFound, id)
	}
	return post, nil
}

func (s *postServiceImpl) UpdateLikesCount(ctx context.Context, id uint64, count int64) error {
	return s.postRepo.UpdateLikesCount(ctx, id, count)
}
