package config

import "time"

type Config struct {
	AppName                       string   `env:"APP_NAME" env-default:"modonty-seeder"`
	AppEnv                        string   `env:"APP_ENV" env-default:"development"`
	Port                          int      `env:"PORT" env-default:"3010"`
	LogLevel                      string   `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs                    bool     `env:"PRETTY_LOGS" env-default:"false"`
	HttpServerWriteTimeoutSeconds int      `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"0"` // seed runs stream for minutes; no write deadline
	HttpServerReadTimeoutSeconds  int      `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerIdleTimeoutSeconds  int      `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	MaxHeaderBytes                int      `env:"HTTP_SERVER_MAX_HEADER_BYTES" env-default:"64000"` // 64KB
	AllowOrigins                  []string `env:"HTTP_SERVER_ALLOW_ORIGINS" env-default:"*"`
	AllowMethods                  []string `env:"HTTP_SERVER_ALLOW_METHODS" env-default:"GET,POST"`

	// PostgreSQL (content store)
	DatabaseDriver                string        `env:"DB_DRIVER" env-default:"postgres"`
	DatabaseHost                  string        `env:"DB_HOST" env-default:"localhost"`
	DatabasePort                  string        `env:"DB_PORT" env-default:"5432"`
	DatabaseUserName              string        `env:"DB_USER_NAME" env-default:""`
	DatabasePassword              string        `env:"DB_PASSWORD" env-default:""`
	DatabaseName                  string        `env:"DB_NAME" env-default:"modonty"`
	DatabaseSSLMode               string        `env:"DB_SSL_MODE" env-default:"disable"`
	DatabaseMaxOpenConns          int           `env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	DatabaseMaxIdleConns          int           `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	DatabaseConnMaxLifetime       time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"10s"`
	DatabaseMigrationFolderPath   string        `env:"DB_MIGRATION_FOLDER_PATH" env-default:"db/pg"`
	DatabaseMigrationVersion      int           `env:"DB_MIGRATION_VERSION" env-default:"0"`
	DatabaseMigrationForce        int           `env:"DB_MIGRATION_FORCE" env-default:"0"`
	DatabaseMigrationAutoRollback bool          `env:"DB_MIGRATION_AUTO_ROLLBACK" env-default:"true"`

	// Redis (run lock)
	RedisEnabled  bool   `env:"REDIS_ENABLED" env-default:"false"`
	RedisHost     string `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" env-default:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" env-default:""`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`
	RunLockTTL    time.Duration `env:"SEED_RUN_LOCK_TTL" env-default:"30m"`

	// Kafka progress fanout (optional)
	KafkaEnabled      bool     `env:"KAFKA_ENABLED" env-default:"false"`
	KafkaBrokers      []string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaTopic        string   `env:"KAFKA_TOPIC" env-default:"seed-progress"`
	KafkaBatchSize    int      `env:"KAFKA_BATCH_SIZE" env-default:"100"`
	KafkaBatchTimeout int      `env:"KAFKA_BATCH_TIMEOUT_MS" env-default:"100"`
	KafkaRequiredAcks int      `env:"KAFKA_REQUIRED_ACKS" env-default:"1"`
	KafkaCompression  string   `env:"KAFKA_COMPRESSION" env-default:"snappy"`

	// AI text generation collaborator
	AIBaseURL        string        `env:"AI_BASE_URL" env-default:"https://api.openai.com/v1"`
	AIAPIKey         string        `env:"AI_API_KEY" env-default:""`
	AIModel          string        `env:"AI_MODEL" env-default:"gpt-4o-mini"`
	AIRequestTimeout time.Duration `env:"AI_REQUEST_TIMEOUT" env-default:"45s"`

	// News aggregation collaborator
	NewsBaseURL        string        `env:"NEWS_BASE_URL" env-default:"https://newsapi.org/v2"`
	NewsAPIKey         string        `env:"NEWS_API_KEY" env-default:""`
	NewsRequestTimeout time.Duration `env:"NEWS_REQUEST_TIMEOUT" env-default:"20s"`

	// Image asset collaborator
	ImageCloudName      string        `env:"IMAGE_CLOUD_NAME" env-default:""`
	ImageAPIKey         string        `env:"IMAGE_API_KEY" env-default:""`
	ImageAPISecret      string        `env:"IMAGE_API_SECRET" env-default:""`
	ImageUploadFolder   string        `env:"IMAGE_UPLOAD_FOLDER" env-default:"seed"`
	ImageRequestTimeout time.Duration `env:"IMAGE_REQUEST_TIMEOUT" env-default:"60s"`
}
