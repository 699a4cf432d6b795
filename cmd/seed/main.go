package main

import (
	"Murmur/internal/pkg/logger"
	"Murmur/internal/pkg/seed"
	"context"
	"flag"
	log "log/slog"
	"os"
	"time"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "API base url")
	users := flag.Int("users", 20, "number of users")
	posts := flag.Int("posts", 3, "posts per user")
	follows := flag.Int("follows", 5, "follows per user")
	likes := flag.Int("likes", 10, "likes per user")
	seedValue := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	logger.InitLogger("release")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	_, err := seed.New(*baseURL, *seedValue).Run(ctx, seed.Options{
		Users:          *users,
		PostsPerUser:   *posts,
		FollowsPerUser: *follows,
		LikesPerUser:   *likes,
	})
	if err != nil {
		log.Error("seed failed", "err", err)
		os.Exit(1)
	}
}
