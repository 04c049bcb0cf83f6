package main

import (
	"log"

	corecmd "astrobot/core/cmd"
	"astrobot/internal/bot"
	appconfig "astrobot/internal/config"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return appconfig.Load(path)
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			return bot.NewApp(cfg.(*appconfig.Config))
		},
	})
	if err != nil {
		log.Fatalf("astrobot: %v", err)
	}
}
