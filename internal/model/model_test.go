package model

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModels_SnakeCaseJSON(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name  string
		value any
		keys  []string
	}{
		{"user", User{ID: 1, Username: "a", CreatedAt: now}, []string{"id", "username", "email", "created_at", "updated_at"}},
		{"post", Post{ID: 1, AuthorID: 2}, []string{"id", "author_id", "likes_count", "created_at", "updated_at"}},
		{"like", Like{ID: 1, UserID: 2, PostID: 3, CreatedAt: now}, []string{"id", "user_id", "post_id", "created_at"}},
		{"follow", UserFollow{FollowerID: 1, FollowingID: 2, CreatedAt: now}, []string{"follower_id", "following_id", "created_at"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := json.Marshal(tc.value)
			require.NoError(t, err)
			var fields map[string]any
			require.NoError(t, json.Unmarshal(raw, &fields))
			for _, k := range tc.keys {
				assert.Contains(t, fields, k)
			}
		})
	}
}
