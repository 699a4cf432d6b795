package consts

const (
	PostLikeKey  = "post:like:"
	PostDirtyKey = "post:dirty"
)
