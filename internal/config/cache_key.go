package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// CompareSetKey returns the cache key holding a client's comparison ids as a JSON array.
func (r *CacheKeyStruct) CompareSetKey(clientID string) string {
	return fmt.Sprintf("compare:%s", clientID)
}

// CompareUpdatesChannel returns the Redis PubSub channel for a client's comparison panel updates.
func (r *CacheKeyStruct) CompareUpdatesChannel(clientID string) string {
	return fmt.Sprintf("compare:%s:updates", clientID)
}

var CacheKey = NewCacheKeyStruct()
