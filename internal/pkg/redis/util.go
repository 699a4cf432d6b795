package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, rdb *redis.Client, key string, value interface{}, expiration time.Duration) error {
	return rdb.Set(ctx, key, value, expiration).Err()
}

// GetInt64 获取整数值，键不存在时返回 redis.Nil
func GetInt64(ctx context.Context, rdb *redis.Client, key string) (int64, error) {
	return rdb.Get(ctx, key).Int64()
}

// GetSet 获取集合
func GetSet(ctx context.Context, rdb *redis.Client, key string) ([]string, error) {
	value, err := rdb.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Rename 键不存在时返回 false
func Rename(ctx context.Context, rdb *redis.Client, oldKey string, newKey string) (bool, error) {
	err := rdb.Rename(ctx, oldKey, newKey).Err()
	if err != nil {
		if err.Error() == "ERR no such key" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteKey 删除一个或多个键
func DeleteKey(ctx context.Context, rdb *redis.Client, keys ...string) error {
	return rdb.Del(ctx, keys...).Err()
}

func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

func StrSliceToUint64Slice(values []string) ([]uint64, error) {
	res := make([]uint64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	return res, nil
}
