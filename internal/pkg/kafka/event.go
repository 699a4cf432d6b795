package kafka

import (
	"time"
)

const (
	EventUserFollowed = "user.followed"
	EventPostCreated  = "post.created"
	EventPostLiked    = "post.liked"
	EventPostUnliked  = "post.unliked"
)

// Event 领域事件，ActorID 为发起者，TargetID 为被操作的用户或帖子
type Event struct {
	Type       string    `json:"type"`
	ActorID    uint64    `json:"actor_id"`
	TargetID   uint64    `json:"target_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, actorID, targetID uint64) *Event {
	return &Event{
		Type:       eventType,
		ActorID:    actorID,
		TargetID:   targetID,
		OccurredAt: time.Now().UTC(),
	}
}
