package config

import (
	"log/slog"
	"sync"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
)

type Config struct {
	TelegramBotToken    string        `hcl:"telegram_bot_token" env:"TELEGRAM_BOT_TOKEN" required:"true"`
	TelegramAdminChatID int64         `hcl:"telegram_admin_chat_id" env:"TELEGRAM_ADMIN_CHAT_ID" required:"true"`
	ListenAddr          string        `hcl:"listen_addr" env:"LISTEN_ADDR" default:":3333"`
	ServiceName         string        `hcl:"service_name" env:"SERVICE_NAME" default:"error-logger-bot"`
	DispatchTimeout     time.Duration `hcl:"dispatch_timeout" env:"DISPATCH_TIMEOUT" default:"30s"`
	Environment         string        `hcl:"environment" env:"ENVIRONMENT" default:"production"`
	// PlatformLabels extends or overrides the built-in platform table,
	// one "identifier=display label" pair per entry.
	PlatformLabels []string `hcl:"platform_labels" env:"PLATFORM_LABELS"`
}

var (
	cfg  Config
	once sync.Once
)

func Get() Config {
	once.Do(func() {
		loader := aconfig.LoaderFor(&cfg, aconfig.Config{
			EnvPrefix: "EWB",
			Files:     []string{"./config.hcl", "./config.local.hcl", "$HOME/.config/error-logger-bot/config.hcl"},
			FileDecoders: map[string]aconfig.FileDecoder{
				".hcl": aconfighcl.New(),
			},
		})

		if err := loader.Load(); err != nil {
			slog.Error("failed to load config", "err", err)
		}
	})

	return cfg
}
