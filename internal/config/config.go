package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// 默认值
const (
	defaultRedisAddr    = "localhost:6379"
	defaultRoundSeconds = 30
	defaultTimerBuffer  = 2
	defaultWinningScore = 30
	defaultCardsPath    = "assets/cards.csv"
	defaultPresenceTTL  = 30
	defaultSweepEvery   = 10
)

// Config 客户端配置
type Config struct {
	Redis RedisConfig `yaml:"redis"`
	Game  GameConfig  `yaml:"game"`
	Cards CardsConfig `yaml:"cards"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 游戏配置
type GameConfig struct {
	RoundSeconds int `yaml:"round_seconds"` // 回合时长（秒）
	TimerBuffer  int `yaml:"timer_buffer"`  // 计时缓冲（秒），吸收时钟偏差
	WinningScore int `yaml:"winning_score"` // 默认获胜分数
	PresenceTTL  int `yaml:"presence_ttl"`  // 在线标记过期时间（秒）
	SweepEvery   int `yaml:"sweep_every"`   // 掉线清理间隔（秒）
}

// CardsConfig 卡牌文件配置
type CardsConfig struct {
	Path string `yaml:"path"`
}

// RoundDuration 返回回合时长
func (c *GameConfig) RoundDuration() time.Duration {
	return time.Duration(c.RoundSeconds) * time.Second
}

// TimerBufferDuration 返回计时缓冲时长
func (c *GameConfig) TimerBufferDuration() time.Duration {
	return time.Duration(c.TimerBuffer) * time.Second
}

// PresenceTTLDuration 返回在线标记过期时长
func (c *GameConfig) PresenceTTLDuration() time.Duration {
	return time.Duration(c.PresenceTTL) * time.Second
}

// SweepInterval 返回掉线清理间隔
func (c *GameConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepEvery) * time.Second
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
	cfg.applyEnv()
	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg
}

// applyDefaults 设置默认值
func (c *Config) applyDefaults() {
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
	if c.Game.RoundSeconds == 0 {
		c.Game.RoundSeconds = defaultRoundSeconds
	}
	if c.Game.TimerBuffer == 0 {
		c.Game.TimerBuffer = defaultTimerBuffer
	}
	if c.Game.WinningScore == 0 {
		c.Game.WinningScore = defaultWinningScore
	}
	if c.Game.PresenceTTL == 0 {
		c.Game.PresenceTTL = defaultPresenceTTL
	}
	if c.Game.SweepEvery == 0 {
		c.Game.SweepEvery = defaultSweepEvery
	}
	if c.Cards.Path == "" {
		c.Cards.Path = defaultCardsPath
	}
}

// applyEnv 环境变量覆盖
func (c *Config) applyEnv() {
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = n
		}
	}
	if v := os.Getenv("CARDS_PATH"); v != "" {
		c.Cards.Path = v
	}
}
