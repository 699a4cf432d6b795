package wire

import (
	"Murmur/internal/api"
	"Murmur/internal/api/config"
	"Murmur/internal/api/handler"
	"Murmur/internal/job"
	"Murmur/internal/pkg/cron"
	"Murmur/internal/pkg/kafka"
	pkgredis "Murmur/internal/pkg/redis"
	"Murmur/internal/repository"
	"Murmur/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router    *gin.Engine
	DB        *gorm.DB
	Publisher kafka.Publisher
	// CronMgr 未配置 Redis 时为 nil
	CronMgr *cron.Manager
}

// BuildApplication rdb 为 nil 时不启用点赞数缓存和同步任务
func BuildApplication(
	db *gorm.DB,
	rdb *redis.Client,
	publisher kafka.Publisher,
	cfg *config.Config,
) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	postRepo := repository.NewPostRepo(db)
	likeRepo := repository.NewLikeRepo(db)

	var likeCache service.LikeCountCache = service.NopLikeCountCache{}
	var redisCache *pkgredis.LikeCountCache
	if rdb != nil {
		redisCache = pkgredis.NewLikeCountCache(rdb)
		likeCache = redisCache
	}

	userService := service.NewUserService(userRepo, userFollowRepo, likeCache, publisher)
	postService := service.NewPostService(postRepo, userRepo, publisher)
	likeService := service.NewLikeService(likeRepo, userRepo, postRepo, likeCache, publisher)

	handlers := &api.HandlersGroup{
		UserHandler: handler.NewUserHandler(userService),
		PostHandler: handler.NewPostHandler(postService, likeService),
		LikeHandler: handler.NewLikeHandler(likeService),
	}

	router := api.SetupRouter(handlers)

	var cronMgr *cron.Manager
	if redisCache != nil {
		likeCountJob := job.NewLikeCountJob(redisCache, likeService, postService)
		cronMgr = cron.NewCronManager(likeCountJob, cfg.Cron.LikeCountSync)
	}

	return &ApplicationContainer{
		Router:    router,
		DB:        db,
		Publisher: publisher,
		CronMgr:   cronMgr,
	}, nil
}
