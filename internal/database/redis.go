package database

import (
	"sync"

	"teamlink/pkg/cache"
	"teamlink/pkg/config"
)

var (
	unreadCacheInstance *cache.UnreadCache
	unreadCacheOnce     sync.Once
)

// GetUnreadCache 获取未读数缓存的单例实例
func GetUnreadCache() *cache.UnreadCache {
	unreadCacheOnce.Do(func() {
		cfg := config.GetConfig()
		unreadCacheInstance = cache.NewUnreadCache(&cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	})
	return unreadCacheInstance
}

// CloseUnreadCache 关闭Redis连接
func CloseUnreadCache() error {
	if unreadCacheInstance != nil {
		return unreadCacheInstance.Close()
	}
	return nil
}
