package cache

import (
	"context"
	"encoding/json"
	"quiz_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const (
	questionsKey  = "quiz:questions:all"
	generationKey = "quiz:questions:generation"
)

// setIfGeneration 版本号比较与写入在同一个脚本里完成，多个实例共用缓存时也成立
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
  return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

type RedisQuestionCache struct {
	client     redis.Cmdable
	expiration time.Duration
}

func NewRedisQuestionCache(client redis.Cmdable, expiration time.Duration) *RedisQuestionCache {
	if expiration <= 0 {
		expiration = 10 * time.Minute
	}
	return &RedisQuestionCache{client: client, expiration: expiration}
}

func (c *RedisQuestionCache) GetQuestions(ctx context.Context) ([]model.Question, error) {
	val, err := c.client.Get(ctx, questionsKey).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, errors.Wrap(err, "查询缓存出错")
	}
	var qs []model.Question
	if err := json.Unmarshal(val, &qs); err != nil {
		return nil, errors.Wrap(err, "反序列化题库失败")
	}
	return qs, nil
}

func (c *RedisQuestionCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, errors.Wrap(err, "查询缓存版本出错")
}

func (c *RedisQuestionCache) SetQuestions(ctx context.Context, qs []model.Question, generation int64) error {
	if qs == nil {
		qs = []model.Question{}
	}
	val, err := json.Marshal(qs)
	if err != nil {
		return errors.Wrap(err, "序列化题库失败")
	}
	ok, err := setIfGeneration.Run(ctx, c.client,
		[]string{generationKey, questionsKey},
		generation, val, c.expiration.Milliseconds(),
	).Int()
	if err != nil {
		return errors.Wrap(err, "写入题库缓存失败")
	}
	if ok == 0 {
		return ErrStaleGeneration
	}
	return nil
}

// Invalidate 先推进版本号再删除，正在回源的请求因此无法回写
func (c *RedisQuestionCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, questionsKey)
		return nil
	})
	return errors.Wrap(err, "删除题库缓存失败")
}
