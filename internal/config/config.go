package config

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	Game    GameConfig    `yaml:"game"`
	Redis   RedisConfig   `yaml:"redis"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// SessionConfig 对局会话配置
type SessionConfig struct {
	Key      string `yaml:"key"`       // 共享密钥，留空则随机生成
	HostName string `yaml:"host_name"` // 本机托管座位（AI），留空则等待两名远程玩家
}

// GameConfig 游戏配置
type GameConfig struct {
	Seed        uint64 `yaml:"seed"`          // 洗牌种子，0 表示随机
	AIMoveDelay int    `yaml:"ai_move_delay"` // 托管座位出牌间隔（毫秒）
}

// RedisConfig Redis 配置（战绩统计，可选）
type RedisConfig struct {
	Addr     string `yaml:"addr"` // 留空则禁用统计
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// AIMoveDelayDuration 返回托管座位出牌间隔
func (c *GameConfig) AIMoveDelayDuration() time.Duration {
	return time.Duration(c.AIMoveDelay) * time.Millisecond
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 12345
	}
	if c.Session.Key == "" {
		c.Session.Key = GenerateKey()
	}
	if c.Game.AIMoveDelay == 0 {
		c.Game.AIMoveDelay = 500
	}
}

// GenerateKey 生成随机六位数字密钥
func GenerateKey() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}
