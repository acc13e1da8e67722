package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Google   Google
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Auth struct {
	JWTSecret         string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	MinPasswordLength int
	BcryptCost        int
	AdminEmail        string
	AdminPassword     string
}

type Google struct {
	ClientID string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	viper.SetDefault("REFRESH_TOKEN_EXPIRE_DAYS", 7)
	viper.SetDefault("MIN_PASSWORD_LENGTH", 6)
	viper.SetDefault("BCRYPT_COST", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Auth.JWTSecret = viper.GetString("SECRET_KEY")
	config.Auth.AccessTokenTTL = time.Duration(viper.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute
	config.Auth.RefreshTokenTTL = time.Duration(viper.GetInt("REFRESH_TOKEN_EXPIRE_DAYS")) * 24 * time.Hour
	config.Auth.MinPasswordLength = viper.GetInt("MIN_PASSWORD_LENGTH")
	config.Auth.BcryptCost = viper.GetInt("BCRYPT_COST")
	config.Auth.AdminEmail = viper.GetString("ADMIN_EMAIL")
	config.Auth.AdminPassword = viper.GetString("ADMIN_PASSWORD")

	config.Google.ClientID = viper.GetString("GOOGLE_CLIENT_ID")

	if config.Auth.JWTSecret == "" {
		log.Warn().Msg("SECRET_KEY is not set, using an insecure development default")
		config.Auth.JWTSecret = "insecure-dev-secret-change-me"
	}

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
