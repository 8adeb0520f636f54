package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName          string
		Env              string // DEV (local; default), TEST, QA, PROD
		Debug            bool
		TestMode         bool
		Build            string
		SecretKey        []byte
		DefaultFromEmail string
		SendgridAPIKey   string
		RollbarToken     string
		// HashPasswords switches user authentication from the
		// legacy plaintext comparison to bcrypt.
		HashPasswords bool

		Server ServerConfig
		Store  StoreConfig
	}

	ServerConfig struct {
		Host                      string
		Addr                      string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	StoreConfig struct {
		DataDir   string
		BackupDir string
	}
)

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "EduNexus")
	conf.SetDefault("build", "dev")
	conf.SetDefault("secretKey", "j8#2kq)wvn$+04=xr&mtbh7(d!p)#*y5(#cz9f6g^$aqm3rwe")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("hashPasswords", false)
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":8000")
	conf.SetDefault("shutdownTimeout", 5*time.Second)
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	conf.SetDefault("storeDataDir", filepath.Join(Getwd(), "data"))
	conf.SetDefault("storeBackupDir", filepath.Join(Getwd(), "backups"))

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:          conf.GetString("appName"),
		Env:              env,
		Debug:            conf.GetBool("debug"),
		TestMode:         conf.GetBool("testMode"),
		Build:            conf.GetString("build"),
		SecretKey:        []byte(conf.GetString("secretKey")),
		DefaultFromEmail: conf.GetString("defaultFromEmail"),
		SendgridAPIKey:   conf.GetString("sendgridApiKey"),
		RollbarToken:     conf.GetString("rollbarToken"),
		HashPasswords:    conf.GetBool("hashPasswords"),
		Server: ServerConfig{
			Host:                      conf.GetString("serverHost"),
			Addr:                      conf.GetString("serverAddr"),
			ShutdownTimeout:           conf.GetDuration("shutdownTimeout"),
			JWTExpirationDelta:        conf.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: conf.GetDuration("jwtRefreshExpirationDelta"),
		},
		Store: StoreConfig{
			DataDir:   conf.GetString("storeDataDir"),
			BackupDir: conf.GetString("storeBackupDir"),
		},
	}
}

// Getwd returns the app's root dir.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd: %v", err)
	}
	return wd
}
