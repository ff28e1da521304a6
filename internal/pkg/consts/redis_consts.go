package consts

// Redis connectivity messages
const (
	RedisConnectSuccess    = "Successfully connected to Redis."
	RedisConnectFailure    = "Failed to connect to Redis."
	RedisDisconnectSuccess = "Successfully disconnected from Redis."
	RedisDisconnectFailure = "Failed to disconnect from Redis."
	RedisPingFailure       = "Redis ping failed."
)

// Redis key prefixes
const (
	RedisTrustScoreKeyPrefix = "lendsafe:trust_score:"
)
