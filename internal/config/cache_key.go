package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey returns the cache key for a student's login session.
func (r *CacheKeyStruct) StudentSessionKey(studentID int) string {
	return fmt.Sprintf("login:student:%d", studentID)
}

// CalendarChangedChannel returns the Redis PubSub channel that announces
// calendar mutations (events created/deleted, rules created/discarded).
func (r *CacheKeyStruct) CalendarChangedChannel() string {
	return "calendar:changed"
}

var CacheKey = NewCacheKeyStruct()
