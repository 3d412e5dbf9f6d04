package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/thirty-seconds/internal/card"
	"github.com/palemoky/thirty-seconds/internal/config"
	"github.com/palemoky/thirty-seconds/internal/game/session"
	"github.com/palemoky/thirty-seconds/internal/logger"
	"github.com/palemoky/thirty-seconds/internal/sound"
	"github.com/palemoky/thirty-seconds/internal/store"
	"github.com/palemoky/thirty-seconds/internal/ui"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	cardsPath := flag.String("cards", "", "卡牌文件路径（覆盖配置）")
	redisAddr := flag.String("redis", "", "Redis 地址（覆盖配置）")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}
	if *cardsPath != "" {
		cfg.Cards.Path = *cardsPath
	}
	if *redisAddr != "" {
		cfg.Redis.Addr = *redisAddr
	}

	// 日志写入文件，终端交给 TUI
	if err := logger.Init(); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	// 加载卡牌
	cards, err := card.Load(cfg.Cards.Path)
	if err != nil {
		log.Fatalf("加载卡牌文件失败: %v", err)
	}
	logger.LogInfo("loaded %d cards from %s", len(cards), cfg.Cards.Path)

	// 连接共享房间存储
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	st := store.New(client, cfg.Game.PresenceTTLDuration())

	// 音效（失败不致命）
	sounds := sound.NewSoundManager()
	if err := sounds.Init(); err != nil {
		logger.LogError("sound disabled: %v", err)
	}
	defer sounds.Close()

	sess := session.New(st, &cfg.Game, cards)
	model := ui.New(sess, sounds)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("启动客户端时出错: %v", err)
	}
}
