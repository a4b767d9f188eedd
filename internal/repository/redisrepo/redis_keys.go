package redisrepo

import "fmt"

const (
	WORLD_STATE_KEY = "world:%s-state" // <worldID>
	USER_CACHE_KEY = "user-cache:%s" // <userID>
)

func WorldStateKey(worldID string) string {
	return fmt.Sprintf(WORLD_STATE_KEY, worldID)
}

func UserCacheKey(userID string) string {
	return fmt.Sprintf(USER_CACHE_KEY, userID)
}
