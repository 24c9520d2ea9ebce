// Package config provides configuration structures and validation for the application.
// It handles environment-based configuration for all major components including
// the processing engine, HTTP server, database connections and message queues.
package config

import (
	"errors"
	"strings"
	"time"
)

const (
	// ProcessingModeSequential applies every transaction on a single ledger in input order
	ProcessingModeSequential = "sequential"
	// ProcessingModePartitioned fans transactions out to one ledger per client partition
	ProcessingModePartitioned = "partitioned"
)

// Config holds the complete application configuration with settings for all components.
// Each field represents a major subsystem's configuration and is validated during
// application startup.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Processing  ProcessingConfig
	Server      ServerConfig
	Kafka       KafkaConfig
	Postgres    PostgresConfig
	MongoDB     MongoDBConfig
	WorkerPool  WorkerPoolConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Output string // "stderr" or "stdout"
}

// ProcessingConfig selects how transactions are applied to the ledger
type ProcessingConfig struct {
	Mode             string
	RecordOutcome    bool // Audit every outcome to MongoDB when it is enabled
	OutcomeBatchSize int  // Outcomes buffered before each MongoDB insert
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// KafkaConfig contains Kafka configuration
type KafkaConfig struct {
	Brokers           string
	TransactionTopic  string
	NumPartitions     int // Number of partitions for topics
	ReplicationFactor int // Replication factor for topics
	ConsumerGroup     string
	MinBytes          int
	MaxBytes          int
	MaxWait           time.Duration
	IdleTimeout       time.Duration // Consumer stops after this long without a message
	DLQTopic          string        // Topic for Dead Letter Queue, empty disables it
}

// PostgresConfig contains PostgreSQL configuration
type PostgresConfig struct {
	Enabled         bool
	URL             string        // Database connection string
	MaxConns        int32         // Maximum number of open connections
	MinConns        int32         // Maximum number of idle connections
	ConnMaxLifetime time.Duration // Maximum lifetime of a connection
	ConnMaxIdleTime time.Duration // Maximum idle time of a connection
	MigrationsPath  string        // Path to migration files
}

// MongoDBConfig contains MongoDB configuration
type MongoDBConfig struct {
	Enabled         bool
	URI             string
	Database        string
	Timeout         time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
}

// WorkerPoolConfig contains worker pool configuration
type WorkerPoolConfig struct {
	Size      int // Number of client partitions, one worker each
	QueueSize int // Buffered transactions per partition
}

// validate performs comprehensive validation of all configuration values,
// ensuring they meet minimum requirements and logical constraints
func (c *Config) validate() error {
	var validationErrors []string

	// Validate Processing config
	if c.Processing.Mode != ProcessingModeSequential && c.Processing.Mode != ProcessingModePartitioned {
		validationErrors = append(validationErrors, "PROCESSING_MODE must be one of sequential, partitioned")
	}

	if c.Processing.OutcomeBatchSize <= 0 {
		validationErrors = append(validationErrors, "PROCESSING_OUTCOME_BATCH_SIZE must be greater than 0")
	}

	// Validate Logging config
	if c.Logging.Output != "stderr" && c.Logging.Output != "stdout" {
		validationErrors = append(validationErrors, "LOG_OUTPUT must be one of stderr, stdout")
	}

	// Validate Server config
	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	// Validate Kafka config
	if len(c.Kafka.Brokers) == 0 {
		validationErrors = append(validationErrors, "KAFKA_BROKERS is required")
	}
	if c.Kafka.TransactionTopic == "" {
		validationErrors = append(validationErrors, "KAFKA_TRANSACTION_TOPIC is required")
	}
	if c.Kafka.ConsumerGroup == "" {
		validationErrors = append(validationErrors, "KAFKA_CONSUMER_GROUP is required")
	}
	if c.Kafka.MinBytes <= 0 {
		validationErrors = append(validationErrors, "KAFKA_CONSUMER_MIN_BYTES must be greater than 0")
	}
	if c.Kafka.MaxBytes <= 0 {
		validationErrors = append(validationErrors, "KAFKA_CONSUMER_MAX_BYTES must be greater than 0")
	}
	if c.Kafka.MaxWait <= 0 {
		validationErrors = append(validationErrors, "KAFKA_CONSUMER_MAX_WAIT must be greater than 0")
	}
	if c.Kafka.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "KAFKA_CONSUMER_IDLE_TIMEOUT must be greater than 0")
	}

	// Validate PostgreSQL config, only when the snapshot export is enabled
	if c.Postgres.Enabled {
		if c.Postgres.URL == "" {
			validationErrors = append(validationErrors, "POSTGRES_URL is required")
		}
		if c.Postgres.MaxConns <= 0 {
			validationErrors = append(validationErrors, "POSTGRES_MAX_CONNS must be greater than 0")
		}
		if c.Postgres.MinConns <= 0 {
			validationErrors = append(validationErrors, "POSTGRES_MIN_CONNS must be greater than 0")
		}
		if c.Postgres.ConnMaxLifetime <= 0 {
			validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
		}
		if c.Postgres.ConnMaxIdleTime <= 0 {
			validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")
		}
	}

	// Validate MongoDB config, only when the outcome audit is enabled
	if c.MongoDB.Enabled {
		if c.MongoDB.URI == "" {
			validationErrors = append(validationErrors, "MONGO_URI is required")
		}
		if c.MongoDB.Database == "" {
			validationErrors = append(validationErrors, "MONGO_DATABASE is required")
		}
		if c.MongoDB.Timeout <= 0 {
			validationErrors = append(validationErrors, "MONGO_TIMEOUT must be greater than 0")
		}
		if c.MongoDB.MaxPoolSize <= 0 {
			validationErrors = append(validationErrors, "MONGO_MAX_POOL_SIZE must be greater than 0")
		}
		if c.MongoDB.MinPoolSize <= 0 {
			validationErrors = append(validationErrors, "MONGO_MIN_POOL_SIZE must be greater than 0")
		}
		if c.MongoDB.MaxConnIdleTime <= 0 {
			validationErrors = append(validationErrors, "MONGO_MAX_CONN_IDLE_TIME must be greater than 0")
		}
	}

	// Validate WorkerPool config
	if c.WorkerPool.Size <= 0 {
		validationErrors = append(validationErrors, "WORKER_POOL_SIZE must be greater than 0")
	}
	if c.WorkerPool.QueueSize <= 0 {
		validationErrors = append(validationErrors, "WORKER_POOL_QUEUE_SIZE must be greater than 0")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
