package service

import (
	"Murmur/internal/pkg/kafka"
	"context"
	"errors"
	log "log/slog"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// LikeCountCache 点赞数缓存，实现见 pkg/redis
type LikeCountCache interface {
	Get(ctx context.Context, postID uint64) (int64, bool)
	Set(ctx context.Context, postID uint64, count int64)
	Invalidate(ctx context.Context, postID uint64)
}

// NopLikeCountCache 未配置 Redis 时使用
type NopLikeCountCache struct{}

func (NopLikeCountCache) Get(context.Context, uint64) (int64, bool) { return 0, false }

func (NopLikeCountCache) Set(context.Context, uint64, int64) {}

func (NopLikeCountCache) Invalidate(context.Context, uint64) {}

func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}

// publishEvent 事件发送失败只记录日志，不影响主流程
func publishEvent(ctx context.Context, publisher kafka.Publisher, event *kafka.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		log.ErrorContext(ctx, "publish domain event failed",
			"type", event.Type,
			"actorID", event.ActorID,
			"targetID", event.TargetID,
			"err", err,
		)
	}
}
