package redis

const (
	DefaultQueryStream  = "llm-queries"
	DefaultResultStream = "llm-results"
	DefaultGroup        = "llm-group"
	PayloadField        = "payload"
)

type RedisStreamConfig struct {
	RedisAddr     string
	RedisPassword string
	Stream        string
	ResultStream  string
	Group         string
	ConsumerName  string
	// ResultMaxLen caps the result stream (approximate trim). Zero keeps everything.
	ResultMaxLen int64
}

func NewRedisStreamConfig(redisAddr string, redisPassword string, stream string, group string, consumerName string) *RedisStreamConfig {
	cfg := &RedisStreamConfig{
		RedisAddr:     redisAddr,
		RedisPassword: redisPassword,
		Stream:        stream,
		ResultStream:  DefaultResultStream,
		Group:         group,
		ConsumerName:  consumerName,
	}
	if cfg.Stream == "" {
		cfg.Stream = DefaultQueryStream
	}
	if cfg.Group == "" {
		cfg.Group = DefaultGroup
	}
	if cfg.ConsumerName == "" {
		cfg.ConsumerName = "guardrail-worker"
	}
	return cfg
}
