package service

import (
	"Murmur/internal/model"
	"Murmur/internal/pkg/dbtest"
	"Murmur/internal/pkg/kafka"
	"Murmur/internal/repository"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*kafka.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event *kafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type mapCache struct {
	counts      map[uint64]int64
	invalidated []uint64
}

func newMapCache() *mapCache {
	return &mapCache{counts: make(map[uint64]int64)}
}

func (c *mapCache) Get(_ context.Context, postID uint64) (int64, bool) {
	v, ok := c.counts[postID]
	return v, ok
}

func (c *mapCache) Set(_ context.Context, postID uint64, count int64) {
	c.counts[postID] = count
}

func (c *mapCache) Invalidate(_ context.Context, postID uint64) {
	delete(c.counts, postID)
	c.invalidated = append(c.invalidated, postID)
}

// racingLikeRepo 让 GetLike 返回固定结果，模拟检查与写入之间被并发请求抢先
type racingLikeRepo struct {
	repository.LikeRepo
	seen *model.Like
}

func (r *racingLikeRepo) GetLike(context.Context, uint64, uint64) (*model.Like, error) {
	return r.seen, nil
}

type services struct {
	users     UserService
	posts     PostService
	likes     LikeService
	publisher *recordingPublisher
	cache     *mapCache
	db        *gorm.DB
}

func newServices(t *testing.T) *services {
	t.Helper()
	db := dbtest.Open(t)
	userRepo := repository.NewUserRepo(db)
	followRepo := repository.NewUserFollowRepo(db)
	postRepo := repository.NewPostRepo(db)
	likeRepo := repository.NewLikeRepo(db)

	pub := &recordingPublisher{}
	cache := newMapCache()
	return &services{
		users:     NewUserService(userRepo, followRepo, cache, pub),
		posts:     NewPostService(postRepo, userRepo, pub),
		likes:     NewLikeService(likeRepo, userRepo, postRepo, cache, pub),
		publisher: pub,
		cache:     cache,
		db:        db,
	}
}

func TestRegisterUser_AssignsID(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	u, err := s.users.RegisterUser(ctx, "alice", "a@x.io")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "a@x.io", u.Email)

	dup, err := s.users.RegisterUser(ctx, "alice", "a@x.io")
	require.NoError(t, err)
	assert.NotEqual(t, u.ID, dup.ID)

	found, err := s.users.FindUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	none, err := s.users.FindUserByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestFollowUser_IdempotentAndDirected(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	alice, _ := s.users.RegisterUser(ctx, "alice", "a@x.io")
	bob, _ := s.users.RegisterUser(ctx, "bob", "b@x.io")

	require.NoError(t, s.users.FollowUser(ctx, alice.ID, bob.ID))
	require.NoError(t, s.users.FollowUser(ctx, alice.ID, bob.ID))

	following, err := s.users.GetFollowing(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{bob.ID}, following)

	reverse, err := s.users.GetFollowing(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, reverse)

	assert.Equal(t, []string{kafka.EventUserFollowed}, s.publisher.types())
}

func TestFollowUser_SelfFollowAllowed(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	alice, _ := s.users.RegisterUser(ctx, "alice", "a@x.io")
	require.NoError(t, s.users.FollowUser(ctx, alice.ID, alice.ID))

	following, err := s.users.GetFollowing(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{alice.ID}, following)
}

func TestFollowUser_MissingFollowerOrTarget(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	alice, _ := s.users.RegisterUser(ctx, "alice", "a@x.io")

	err := s.users.FollowUser(ctx, 999, alice.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = s.users.FollowUser(ctx, alice.ID, 999)
	assert.ErrorIs(t, err, ErrTargetUserNotFound)

	err = s.users.FollowUser(ctx, 998, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFollowUser_PublishFailureDoesNotFail(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	s.publisher.err = errors.New("broker down")

	alice, _ := s.users.RegisterUser(ctx, "alice", "a@x.io")
	bob, _ := s.users.RegisterUser(ctx, "bob", "b@x.io")

	require.NoError(t, s.users.FollowUser(ctx, alice.ID, bob.ID))
}

func TestGetUser_NotFound(t *testing.T) {
	s := newServices(t)

	_, err := s.users.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.users.GetFollowing(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreatePost_AuthorPopulated(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	alice, _ := s.users.RegisterUser(ctx, "alice", "a@x.io")

	post, err := s.posts.CreatePost(ctx, alice.ID, "Hello", "World")
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, alice.ID, post.AuthorID)
	assert.Equal(t, alice.ID, post.Author.ID)
	assert.Equal(t, "alice", post.Author.Username)

	stored, err := s.posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", stored.Title)
	assert.Equal(t, "alice", stored.Author.Username)

	assert.Equal(t, []string{kafka.EventPostCreated}, s.publisher.types())
}

func TestCreatePost_MissingUserPersistsNothing(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	_, err := s.posts.CreatePost(ctx, 999, "T", "B")
	assert.ErrorIs(t, err, ErrUserNotFound)

	all, err := s.posts.GetAllPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, s.publisher.types())
}

func TestGetPostsByUser_CreationOrder(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	alice, _ := s.users.RegisterUser(ctx, "alice", "a@x.io")
	bob, _ := s.users.RegisterUser(ctx, "bob", "b@x.io")

	empty, err := s.posts.GetPostsByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	p1, _ := s.posts.CreatePost(ctx, alice.ID, "one", "1")
	_, _ = s.posts.CreatePost(ctx, bob.ID, "bob", "b")
	p2, _ := s.posts.CreatePost(ctx, alice.ID, "two", "2")

	posts, err := s.posts.GetPostsByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, p1.ID, posts[0].ID)
	assert.Equal(t, p2.ID, posts[1].ID)

	_, err = s.posts.GetPost(ctx, 12345)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestLikeUnlike_RoundTrip(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	alice, _ := s.users.RegisterUser(ctx, "alice", "a@x.io")
	post, _ := s.posts.CreatePost(ctx, alice.ID, "T", "B")

	require.NoError(t, s.likes.LikePost(ctx, alice.ID, post.ID))
	assert.ErrorIs(t, s.likes.LikePost(ctx, alice.ID, post.ID), ErrPostAlreadyLiked)

	count, err := s.likes.GetLikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, s.likes.UnlikePost(ctx, alice.ID, post.ID))
	assert.ErrorIs(t, s.likes.UnlikePost(ctx, alice.ID, post.ID), ErrLikeNotFound)

	count, err = s.likes.GetLikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	require.NoError(t, s.likes.LikePost(ctx, alice.ID, post.ID))

	assert.Equal(t, []uint64{post.ID, post.ID, post.ID}, s.cache.invalidated)
	assert.Equal(t, []string{
		kafka.EventPostCreated,
		kafka.EventPostLiked,
		kafka.EventPostUnliked,
		kafka.EventPostLiked,
	}, s.publisher.types())
}

func TestLikePost_CheckOrder(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	alice, _ := s.users.RegisterUser(ctx, "alice", "a@x.io")
	post, _ := s.posts.CreatePost(ctx, alice.ID, "T", "B")

	assert.ErrorIs(t, s.likes.LikePost(ctx, 999, 999), ErrUserNotFound)
	assert.ErrorIs(t, s.likes.LikePost(ctx, 999, post.ID), ErrUserNotFound)
	assert.ErrorIs(t, s.likes.LikePost(ctx, alice.ID, 999), ErrPostNotFound)
	assert.ErrorIs(t, s.likes.UnlikePost(ctx, 999, post.ID), ErrUserNotFound)
	assert.ErrorIs(t, s.likes.UnlikePost(ctx, alice.ID, 999), ErrPostNotFound)

	_, err := s.likes.GetLikeCount(ctx, 999)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestGetLikeCount_UsesCache(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	alice, _ := s.users.RegisterUser(ctx, "alice", "a@x.io")
	post, _ := s.posts.CreatePost(ctx, alice.ID, "T", "B")
	s.cache.counts[post.ID] = 41

	count, err := s.likes.GetLikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 41, count)

	count, err = s.likes.RecountLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
	assert.EqualValues(t, 0, s.cache.counts[post.ID])
}

func TestAliceBobScenario(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	alice, err := s.users.RegisterUser(ctx, "alice", "a@x.io")
	require.NoError(t, err)
	bob, err := s.users.RegisterUser(ctx, "bob", "b@x.io")
	require.NoError(t, err)

	require.NoError(t, s.users.FollowUser(ctx, alice.ID, bob.ID))

	post, err := s.posts.CreatePost(ctx, bob.ID, "Hi", "First")
	require.NoError(t, err)

	require.NoError(t, s.likes.LikePost(ctx, alice.ID, post.ID))
	assert.ErrorIs(t, s.likes.LikePost(ctx, alice.ID, post.ID), ErrPostAlreadyLiked)
	require.NoError(t, s.likes.UnlikePost(ctx, alice.ID, post.ID))

	posts, err := s.posts.GetPostsByUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Hi", posts[0].Title)
}

func TestDeleteUser(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	alice, _ := s.users.RegisterUser(ctx, "alice", "a@x.io")
	bob, _ := s.users.RegisterUser(ctx, "bob", "b@x.io")
	post, _ := s.posts.CreatePost(ctx, alice.ID, "T", "B")
	require.NoError(t, s.likes.LikePost(ctx, bob.ID, post.ID))
	require.NoError(t, s.users.FollowUser(ctx, bob.ID, alice.ID))

	require.NoError(t, s.users.DeleteUser(ctx, alice.ID))

	_, err := s.users.GetUser(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = s.posts.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	following, err := s.users.GetFollowing(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, following)

	assert.ErrorIs(t, s.users.DeleteUser(ctx, alice.ID), ErrUserNotFound)
}

func TestDeleteUser_InvalidatesLikedPosts(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	alice, _ := s.users.RegisterUser(ctx, "alice", "a@x.io")
	bob, _ := s.users.RegisterUser(ctx, "bob", "b@x.io")
	post, _ := s.posts.CreatePost(ctx, bob.ID, "T", "B")
	require.NoError(t, s.likes.LikePost(ctx, alice.ID, post.ID))

	count, err := s.likes.GetLikeCount(ctx, post.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	require.NoError(t, s.users.DeleteUser(ctx, alice.ID))

	count, err = s.likes.GetLikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
	assert.Equal(t, []uint64{post.ID, post.ID}, s.cache.invalidated)
}

func TestLikePost_ConcurrentDuplicate(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	alice, _ := s.users.RegisterUser(ctx, "alice", "a@x.io")
	post, _ := s.posts.CreatePost(ctx, alice.ID, "T", "B")
	require.NoError(t, s.likes.LikePost(ctx, alice.ID, post.ID))

	// 检查时尚未看到点赞，写入时被唯一索引拦截
	likeRepo := &racingLikeRepo{LikeRepo: repository.NewLikeRepo(s.db)}
	cache := newMapCache()
	racing := NewLikeService(likeRepo, repository.NewUserRepo(s.db), repository.NewPostRepo(s.db), cache, s.publisher)

	assert.ErrorIs(t, racing.LikePost(ctx, alice.ID, post.ID), ErrPostAlreadyLiked)
	assert.Empty(t, cache.invalidated)

	count, err := racing.RecountLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUnlikePost_ConcurrentDelete(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	alice, _ := s.users.RegisterUser(ctx, "alice", "a@x.io")
	post, _ := s.posts.CreatePost(ctx, alice.ID, "T", "B")

	// 读到的点赞已被另一个请求删除
	likeRepo := &racingLikeRepo{
		LikeRepo: repository.NewLikeRepo(s.db),
		seen:     &model.Like{ID: 9999, UserID: alice.ID, PostID: post.ID},
	}
	cache := newMapCache()
	racing := NewLikeService(likeRepo, repository.NewUserRepo(s.db), repository.NewPostRepo(s.db), cache, s.publisher)

	assert.ErrorIs(t, racing.UnlikePost(ctx, alice.ID, post.ID), ErrLikeNotFound)
	assert.Empty(t, cache.invalidated)
	assert.NotContains(t, s.publisher.types(), kafka.EventPostUnliked)
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(&mysql.MySQLError{Number: 1062}))
	assert.True(t, isDuplicateError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isDuplicateError(&mysql.MySQLError{Number: 1452}))
	assert.False(t, isDuplicateError(errors.New("boom")))
}

func TestCodeOf(t *testing.T) {
	code, ok := CodeOf(ErrPostAlreadyLiked)
	assert.True(t, ok)
	assert.Equal(t, Conflict, code)

	code, ok = CodeOf(errors.Join(errors.New("ctx"), ErrLikeNotFound))
	assert.True(t, ok)
	assert.Equal(t, NotFound, code)

	_, ok = CodeOf(errors.New("other"))
	assert.False(t, ok)
}
