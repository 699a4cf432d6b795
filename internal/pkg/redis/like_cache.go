package redis

import (
	"Murmur/internal/pkg/consts"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const likeCountExpiration = 7 * 24 * time.Hour

// LikeCountCache 帖子点赞数缓存，同时维护待同步的脏帖子集合
type LikeCountCache struct {
	rdb *redis.Client
}

func NewLikeCountCache(rdb *redis.Client) *LikeCountCache {
	return &LikeCountCache{rdb: rdb}
}

func likeKey(postID uint64) string {
	return consts.PostLikeKey + strconv.FormatUint(postID, 10)
}

func (s *LikeCountCache) Get(ctx context.Context, postID uint64) (int64, bool) {
	count, err := GetInt64(ctx, s.rdb, likeKey(postID))
	if err != nil {
		if !IsNil(err) {
			log.WarnContext(ctx, "get like count cache error", "postID", postID, "err", err)
		}
		return 0, false
	}
	return count, true
}

func (s *LikeCountCache) Set(ctx context.Context, postID uint64, count int64) {
	if err := SetWithExpiration(ctx, s.rdb, likeKey(postID), count, likeCountExpiration); err != nil {
		log.WarnContext(ctx, "set like count cache error", "postID", postID, "err", err)
	}
}

// Invalidate 删除计数缓存并标记为脏
func (s *LikeCountCache) Invalidate(ctx context.Context, postID uint64) {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, likeKey(postID))
	pipe.SAdd(ctx, consts.PostDirtyKey, strconv.FormatUint(postID, 10))
	if _, err := pipe.Exec(ctx); err != nil {
		log.WarnContext(ctx, "invalidate like count cache error", "postID", postID, "err", err)
	}
}

// DrainDirty 取出当前所有脏帖子 ID，done 在处理结束后调用
func (s *LikeCountCache) DrainDirty(ctx context.Context) ([]uint64, func(), error) {
	processingKey := consts.PostDirtyKey + ":processing"
	ok, err := Rename(ctx, s.rdb, consts.PostDirtyKey, processingKey)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, func() {}, nil
	}

	members, err := GetSet(ctx, s.rdb, processingKey)
	if err != nil {
		return nil, nil, err
	}
	ids, err := StrSliceToUint64Slice(members)
	if err != nil {
		return nil, nil, err
	}

	done := func() {
		if err := DeleteKey(context.Background(), s.rdb, processingKey); err != nil {
			log.ErrorContext(ctx, "delete post processing set error", "err", err)
		}
	}
	return ids, done, nil
}
