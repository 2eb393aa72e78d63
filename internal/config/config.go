package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	REST      RESTConfig
	Security  SecurityConfig
	Kafka     KafkaConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	AMQP      AMQPConfig
	Notices   NoticeConfig
	Websocket WebsocketConfig
}

type ServerConfig struct {
	Port      string
	LoginPath string
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

type RESTConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SecurityConfig struct {
	JWTSecret    string
	JWTPublicKey string
	// EventsKey enables POST /events for backends that push instead of using Kafka.
	EventsKey string
}

type KafkaConfig struct {
	Brokers []string
	GroupID string
	// Topics maps a canonical entity to the Kafka topics carrying its events.
	Topics map[string][]string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
}

type CacheConfig struct {
	MemcachedHosts []string
	LocalMaxSize   int64
	LocalTTL       time.Duration
	RemoteTTL      time.Duration
}

type AMQPConfig struct {
	URL   string
	Queue string
}

type NoticeConfig struct {
	TTL time.Duration
}

type WebsocketConfig struct {
	SendBuffer int
}

// Load reads the process environment. Unset variables fall back to defaults; malformed ones are errors.
func Load() (*Config, error) {
	var errs []error

	cfg := &Config{
		Server: ServerConfig{
			Port:      envStr("PORT", "8080"),
			LoginPath: envStr("LOGIN_PATH", "/login.html"),
		},
		Logging: LoggingConfig{
			Directory: envStr("LOG_DIR", "./logs"),
			Level:     envStr("LOG_LEVEL", "info"),
			Format:    envStr("LOG_FORMAT", "text"),
		},
		REST: RESTConfig{
			BaseURL: strings.TrimRight(envStr("REST_BASE_URL", "http://localhost:8081"), "/"),
			Timeout: envDur("REST_TIMEOUT", 10*time.Second, &errs),
		},
		Security: SecurityConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			JWTPublicKey: strings.ReplaceAll(os.Getenv("JWT_PUBLIC_KEY"), `\n`, "\n"),
			EventsKey:    os.Getenv("EVENTS_API_KEY"),
		},
		Kafka: KafkaConfig{
			Brokers: envList(firstEnv("KAFKA_BROKERS", "KAFKA_BROKER")),
			GroupID: envStr("KAFKA_GROUP_ID", "golden-palm-dashboards"),
			Topics:  parseTopics(envStr("KAFKA_TOPICS", "bookings=hotel.bookings,payments=hotel.payments,refund-requests=hotel.refunds,rooms=hotel.rooms,event-spaces=hotel.event-spaces,users=hotel.users,notifications=hotel.notifications")),
		},
		Redis: RedisConfig{
			Addr:     redisAddr(),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envInt("REDIS_DB", 0, &errs),
		},
		RateLimit: RateLimitConfig{
			Enabled:        envBool("RATE_LIMIT_ENABLED", true),
			Capacity:       envInt("RATE_LIMIT_CAPACITY", 30, &errs),
			RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1, &errs),
			RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second, &errs),
			TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute, &errs),
			KeyStrategy:    envStr("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
			Prefix:         envStr("RATE_LIMIT_PREFIX", "rl"),
		},
		Cache: CacheConfig{
			MemcachedHosts: envList(os.Getenv("MEMCACHED_HOSTS")),
			LocalMaxSize:   int64(envInt("PAGE_STATE_LOCAL_MAX", 1000, &errs)),
			LocalTTL:       envDur("PAGE_STATE_LOCAL_TTL", 5*time.Minute, &errs),
			RemoteTTL:      envDur("PAGE_STATE_REMOTE_TTL", 30*time.Minute, &errs),
		},
		AMQP: AMQPConfig{
			URL:   firstEnv("RABBITMQ_URL", "AMQP_URL"),
			Queue: envStr("AUDIT_QUEUE", "dashboard.actions"),
		},
		Notices: NoticeConfig{
			TTL: envDur("NOTICE_TTL", 5*time.Second, &errs),
		},
		Websocket: WebsocketConfig{
			SendBuffer: envInt("WS_SEND_BUFFER", 16, &errs),
		},
	}

	if cfg.Notices.TTL <= 0 {
		errs = append(errs, fmt.Errorf("NOTICE_TTL must be positive, got %s", cfg.Notices.TTL))
	}
	if cfg.REST.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("REST_TIMEOUT must be positive, got %s", cfg.REST.Timeout))
	}
	if cfg.RateLimit.Capacity < 1 {
		cfg.RateLimit.Capacity = 1
	}
	if cfg.RateLimit.RefillTokens < 1 {
		cfg.RateLimit.RefillTokens = 1
	}
	if cfg.RateLimit.RefillInterval <= 0 {
		cfg.RateLimit.RefillInterval = time.Second
	}
	if minTTL := 5 * cfg.RateLimit.RefillInterval; cfg.RateLimit.TTL < minTTL {
		cfg.RateLimit.TTL = minTTL
	}
	if cfg.Websocket.SendBuffer <= 0 {
		cfg.Websocket.SendBuffer = 16
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// AllTopics flattens the entity topic map.
func (k KafkaConfig) AllTopics() []string {
	topics := make([]string, 0)
	for _, list := range k.Topics {
		topics = append(topics, list...)
	}
	return topics
}

func parseTopics(raw string) map[string][]string {
	topics := make(map[string][]string)
	for _, pair := range strings.Split(raw, ",") {
		entity, topic, ok := strings.Cut(pair, "=")
		entity = strings.TrimSpace(entity)
		topic = strings.TrimSpace(topic)
		if !ok || entity == "" || topic == "" {
			continue
		}
		topics[entity] = append(topics[entity], topic)
	}
	return topics
}

func redisAddr() string {
	host := os.Getenv("REDIS_HOST")
	port := os.Getenv("REDIS_PORT")
	if host != "" && port != "" {
		return host + ":" + port
	}
	return os.Getenv("REDIS_ADDR")
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func envBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

func envInt(key string, def int, errs *[]error) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func envDur(key string, def time.Duration, errs *[]error) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}
