package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, Port, BaseURL string }
type DBCfg struct{ DSN string }
type RedisCfg struct{ Addr string }

type P24Cfg struct {
	MerchantID int
	PosID      int // defaults to MerchantID
	APIKey     string
	CRCKey     string
	Sandbox    bool
}

type SecurityCfg struct {
	AdminToken string // guards the checkout API
	TrustProxy bool   // honor X-Forwarded-For on webhook source-IP checks
}

type Cfg struct {
	App   AppCfg
	DB    DBCfg
	Redis RedisCfg
	P24   P24Cfg
	Sec   SecurityCfg
}

func Load() Cfg {
	// 1) Load .env into process env (if file exists)
	_ = godotenv.Load()

	// 2) Read from env via viper
	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", "sandbox")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("P24_SANDBOX", true)
	viper.SetDefault("ADMIN_TOKEN", "")
	viper.SetDefault("TRUST_PROXY", false)

	cfg := Cfg{
		App: AppCfg{
			Env:     viper.GetString("APP_ENV"),
			Port:    viper.GetString("APP_PORT"),
			BaseURL: viper.GetString("APP_BASE_URL"),
		},
		DB:    DBCfg{DSN: viper.GetString("DB_DSN")},
		Redis: RedisCfg{Addr: viper.GetString("REDIS_ADDR")},
		P24: P24Cfg{
			MerchantID: viper.GetInt("P24_MERCHANT_ID"),
			PosID:      viper.GetInt("P24_POS_ID"),
			APIKey:     viper.GetString("P24_API_KEY"),
			CRCKey:     viper.GetString("P24_CRC_KEY"),
			Sandbox:    viper.GetBool("P24_SANDBOX"),
		},
		Sec: SecurityCfg{
			AdminToken: strings.TrimSpace(viper.GetString("ADMIN_TOKEN")),
			TrustProxy: viper.GetBool("TRUST_PROXY"),
		},
	}

	// 3) Fail fast on required settings
	if cfg.DB.DSN == "" {
		log.Fatal().Msg("DB_DSN is required")
	}
	if cfg.P24.MerchantID == 0 {
		log.Fatal().Msg("P24_MERCHANT_ID is required")
	}
	if cfg.P24.APIKey == "" || cfg.P24.CRCKey == "" {
		log.Fatal().Msg("P24_API_KEY and P24_CRC_KEY are required")
	}
	if cfg.P24.PosID == 0 {
		cfg.P24.PosID = cfg.P24.MerchantID
	}
	return cfg
}
