package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name      string `mapstructure:"name"`
	Version   string `mapstructure:"version"`
	LogLevel  string `mapstructure:"log_level"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTP HTTPConfig `mapstructure:"http"`
}

// HTTPConfig HTTP服务配置
type HTTPConfig struct {
	Addr    string `mapstructure:"addr"`
	Timeout string `mapstructure:"timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	PostgreSQL    PostgreSQLConfig    `mapstructure:"postgresql"`
	MongoDB       MongoDBConfig       `mapstructure:"mongodb"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

// PostgreSQLConfig PostgreSQL配置
type PostgreSQLConfig struct {
	DSN    string `mapstructure:"dsn"`
	DBName string `mapstructure:"db_name"`
}

// MongoDBConfig MongoDB配置
type MongoDBConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"db_name"`
}

// ElasticsearchConfig Elasticsearch配置
type ElasticsearchConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	GroupID string   `mapstructure:"group_id"`
}

// LoadConfig 加载配置：内置默认值，支持config.yaml和环境变量覆盖
func LoadConfig(serviceName string) *Config {
	v := viper.New()

	v.SetDefault("app.name", serviceName)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.jwt_secret", "campus-hub-dev")
	v.SetDefault("server.http.addr", ":8080")
	v.SetDefault("server.http.timeout", "30s")
	v.SetDefault("database.postgresql.dsn", "host=localhost user=postgres password=postgres dbname="+serviceName+" port=5432 sslmode=disable")
	v.SetDefault("database.postgresql.db_name", serviceName)
	v.SetDefault("database.mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("database.mongodb.db_name", serviceName)
	v.SetDefault("database.elasticsearch.enabled", true)
	v.SetDefault("database.elasticsearch.addr", "http://localhost:9200")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.group_id", serviceName+"-group")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("CAMPUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 配置文件缺失时使用默认值
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic("failed to unmarshal config: " + err.Error())
	}

	return &cfg
}
