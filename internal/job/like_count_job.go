package job

import (
	"Murmur/internal/pkg/logger"
	"Murmur/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// DirtyPostSource 提供待同步点赞数的帖子
type DirtyPostSource interface {
	DrainDirty(ctx context.Context) ([]uint64, func(), error)
}

// LikeCountJob 将点赞数回写到 posts.likes_count
type LikeCountJob struct {
	source  DirtyPostSource
	likeSvc service.LikeService
	postSvc service.PostService
}

func NewLikeCountJob(
	source DirtyPostSource,
	likeSvc service.LikeService,
	postSvc service.PostService,
) *LikeCountJob {
	return &LikeCountJob{
		source:  source,
		likeSvc: likeSvc,
		postSvc: postSvc,
	}
}

func (s *LikeCountJob) Run() {
	traceID := "job-like-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)
	s.Sync(ctx)
}

// Sync 单次同步，返回成功回写的帖子数
func (s *LikeCountJob) Sync(ctx context.Context) int {
	postIDs, done, err := s.source.DrainDirty(ctx)
	if err != nil {
		log.ErrorContext(ctx, "drain dirty posts error", "err", err)
		return 0
	}
	defer done()

	synced := 0
	for _, pid := range postIDs {
		likes, err := s.likeSvc.RecountLikes(ctx, pid)
		if err != nil {
			log.ErrorContext(ctx, "recount likes error", "pid", pid, "err", err)
			continue
		}

		// 帖子已删除时更新 0 行，不视为错误
		if err = s.postSvc.UpdateLikesCount(ctx, pid, likes); err != nil {
			log.ErrorContext(ctx, "update post likes count error", "pid", pid, "err", err)
			continue
		}
		synced++
	}

	if len(postIDs) > 0 {
		log.InfoContext(ctx, "sync like counts success", "post_count", len(postIDs), "synced", synced)
	}
	return synced
}
