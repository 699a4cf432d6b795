package cron

import (
	"Murmur/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

const defaultLikeCountSpec = "0 */5 * * * *"

type Manager struct {
	engine        *cron.Cron
	likeCountJob  *job.LikeCountJob
	likeCountSpec string
}

func NewCronManager(likeCountJob *job.LikeCountJob, likeCountSpec string) *Manager {
	if likeCountSpec == "" {
		likeCountSpec = defaultLikeCountSpec
	}
	return &Manager{
		engine:        cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		likeCountJob:  likeCountJob,
		likeCountSpec: likeCountSpec,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.likeCountSpec, s.likeCountJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动", "likeCountSpec", s.likeCountSpec)
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
