package common

const (
	// RedisKeyLastPrice is the hash holding the latest observed price for a
	// symbol: last_price:<symbol> -> {price, timestamp}.
	RedisKeyLastPrice = "last_price:%s"
)
