// Package seed 通过 HTTP 接口批量生成演示数据
package seed

import (
	"context"
	"fmt"
	log "log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

type Options struct {
	Users          int
	PostsPerUser   int
	FollowsPerUser int
	LikesPerUser   int
}

type Result struct {
	UserIDs []uint64
	PostIDs []uint64
	Follows int
	Likes   int
}

type envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type idOnly struct {
	ID uint64 `json:"id"`
}

type Seeder struct {
	client *resty.Client
	faker  *gofakeit.Faker
}

// New 创建接口均非幂等，客户端不做重试
func New(baseURL string, seed int64) *Seeder {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(10*time.Second).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json")
	client.JSONMarshal = json.Marshal
	client.JSONUnmarshal = json.Unmarshal

	return &Seeder{
		client: client,
		faker:  gofakeit.New(seed),
	}
}

func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{}

	for i := 0; i < opts.Users; i++ {
		id, err := s.register(ctx)
		if err != nil {
			return res, err
		}
		res.UserIDs = append(res.UserIDs, id)
	}

	for _, uid := range res.UserIDs {
		for i := 0; i < opts.PostsPerUser; i++ {
			id, err := s.createPost(ctx, uid)
			if err != nil {
				return res, err
			}
			res.PostIDs = append(res.PostIDs, id)
		}
	}

	if len(res.UserIDs) > 1 {
		// 重复关注服务端不报错，只统计不同的关注边
		edges := make(map[[2]uint64]struct{})
		for _, uid := range res.UserIDs {
			for i := 0; i < opts.FollowsPerUser; i++ {
				target := res.UserIDs[s.faker.Number(0, len(res.UserIDs)-1)]
				if target == uid {
					continue
				}
				if err := s.follow(ctx, uid, target); err != nil {
					return res, err
				}
				edges[[2]uint64{uid, target}] = struct{}{}
			}
		}
		res.Follows = len(edges)
	}

	if len(res.PostIDs) > 0 {
		for _, uid := range res.UserIDs {
			for i := 0; i < opts.LikesPerUser; i++ {
				pid := res.PostIDs[s.faker.Number(0, len(res.PostIDs)-1)]
				liked, err := s.like(ctx, uid, pid)
				if err != nil {
					return res, err
				}
				if liked {
					res.Likes++
				}
			}
		}
	}

	log.InfoContext(ctx, "seed finished",
		"users", len(res.UserIDs),
		"posts", len(res.PostIDs),
		"follows", res.Follows,
		"likes", res.Likes,
	)
	return res, nil
}

func (s *Seeder) register(ctx context.Context) (uint64, error) {
	var out envelope[idOnly]
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"username": s.faker.Username(),
			"email":    s.faker.Email(),
		}).
		SetResult(&out).
		Post("/api/users/register")
	if err := checkResponse(resp, err, http.StatusCreated); err != nil {
		return 0, errors.Wrap(err, "register user")
	}
	return out.Data.ID, nil
}

func (s *Seeder) createPost(ctx context.Context, userID uint64) (uint64, error) {
	var out envelope[idOnly]
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"title": s.faker.Sentence(4),
			"body":  s.faker.Paragraph(1, 3, 12, " "),
		}).
		SetResult(&out).
		Post(fmt.Sprintf("/api/posts/%d/create", userID))
	if err := checkResponse(resp, err, http.StatusCreated); err != nil {
		return 0, errors.Wrapf(err, "create post for user %d", userID)
	}
	return out.Data.ID, nil
}

func (s *Seeder) follow(ctx context.Context, userID, targetID uint64) error {
	resp, err := s.client.R().
		SetContext(ctx).
		Post(fmt.Sprintf("/api/users/%d/follow/%d", userID, targetID))
	if err := checkResponse(resp, err, http.StatusOK); err != nil {
		return errors.Wrapf(err, "user %d follow %d", userID, targetID)
	}
	return nil
}

// like 已点赞时返回 false
func (s *Seeder) like(ctx context.Context, userID, postID uint64) (bool, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Post(fmt.Sprintf("/api/likes/%d/like/%d", userID, postID))
	if err == nil && resp.StatusCode() == http.StatusConflict {
		return false, nil
	}
	if err := checkResponse(resp, err, http.StatusOK); err != nil {
		return false, errors.Wrapf(err, "user %d like post %d", userID, postID)
	}
	return true, nil
}

func checkResponse(resp *resty.Response, err error, want int) error {
	if err != nil {
		return err
	}
	if resp.StatusCode() != want {
		return errors.Errorf("unexpected status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
