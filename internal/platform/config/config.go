package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Cfg 是加载完成后的全局配置实例。
var Cfg *Config

// Config 与 config.yaml 的结构完全对应。
// 这里只放基础设施参数；所有可以在运行期调整的策略
// （管理员号码、每日上限、睡眠开关等）都存在settings表中，由核心实时读取。
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
}

// ServerConfig 定义了HTTP服务相关的配置。
type ServerConfig struct {
	Address string     `mapstructure:"address"`
	BaseURL string     `mapstructure:"baseUrl"` // 短链接的外部基地址
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置。
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置。
type DatabaseConfig struct {
	Redis  RedisConfig  `mapstructure:"redis"`
	Sqlite SqliteConfig `mapstructure:"sqlite"`
}

// RedisConfig 定义了Redis的连接参数。
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SqliteConfig 定义了SQLite数据文件的位置。
// 当环境变量DATABASE_URL存在时会改用PostgreSQL，此项被忽略。
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// GatewayConfig 定义了出站消息网关的参数。
// 网关是聊天网络的边界适配器，核心只通过它发送文本。
type GatewayConfig struct {
	URL           string `mapstructure:"url"`
	SendTimeoutMS int    `mapstructure:"sendTimeoutMs"`
}

// LoadConfig 查找、加载并解析配置文件。
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 允许环境变量覆盖，例如 SERVER_ADDRESS=:9090
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 缺省值：本地开发可以零配置启动
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.baseUrl", "http://localhost:8080")
	v.SetDefault("server.cors.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("database.redis.db", 0)
	v.SetDefault("database.sqlite.path", "redz.db")
	v.SetDefault("gateway.url", "http://localhost:3001")
	v.SetDefault("gateway.sendTimeoutMs", 10000)

	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失不是错误，全部走缺省值和环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	Cfg = &cfg
	return Cfg, nil
}
