package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// UnreadCache 未读数缓存，数据库始终是数据源，缓存只做加速
type UnreadCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// NewUnreadCache 创建未读数缓存实例
func NewUnreadCache(config *Config) *UnreadCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "teamlink:cache"
	}

	return &UnreadCache{
		client: client,
		prefix: prefix,
		ttl:    10 * time.Minute,
	}
}

// Close 关闭Redis连接
func (c *UnreadCache) Close() error {
	return c.client.Close()
}

// Ping 测试Redis连接
func (c *UnreadCache) Ping() error {
	ctx := context.Background()
	return c.client.Ping(ctx).Err()
}

// GetClient 获取底层Redis客户端
func (c *UnreadCache) GetClient() *redis.Client {
	return c.client
}

// GetUnread 读取用户未读数，未命中时第二个返回值为false
func (c *UnreadCache) GetUnread(userID string) (int64, bool, error) {
	ctx := context.Background()
	val, err := c.client.Get(ctx, c.unreadKey(userID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

// SetUnread 写入用户未读数
func (c *UnreadCache) SetUnread(userID string, count int64) error {
	ctx := context.Background()
	return c.client.Set(ctx, c.unreadKey(userID), count, c.ttl).Err()
}

// Invalidate 失效用户未读数，下次读取回源数据库
func (c *UnreadCache) Invalidate(userID string) error {
	ctx := context.Background()
	return c.client.Del(ctx, c.unreadKey(userID)).Err()
}

// NotifyChannel 返回用户的通知推送频道名
func (c *UnreadCache) NotifyChannel(userID string) string {
	return fmt.Sprintf("%s:notify:%s", c.prefix, userID)
}

// PublishNotification 向用户频道推送通知消息，供WebSocket转发
func (c *UnreadCache) PublishNotification(userID string, payload []byte) error {
	ctx := context.Background()
	return c.client.Publish(ctx, c.NotifyChannel(userID), payload).Err()
}

// unreadKey 生成未读数缓存键
func (c *UnreadCache) unreadKey(userID string) string {
	return fmt.Sprintf("%s:unread:%s", c.prefix, userID)
}
