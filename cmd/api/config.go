package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/facultyapp/faculty-backend/internal/auth"
)

// tokenValidity is how long issued login tokens last.
const tokenValidity = 24 * time.Hour

type config struct {
	Env          string `envconfig:"ENV" default:"production"`
	Port         string `envconfig:"PORT" default:"8080"`
	MongoURI     string `envconfig:"MONGODB_URI" required:"true"`
	JWTSecret    string `envconfig:"JWT_SECRET"`
	JWTKeys      string `envconfig:"JWT_KEYS"` // optional rotation set: kid:secret,kid2:secret2
	JWTActiveKid string `envconfig:"JWT_ACTIVE_KID"`
	RateLimitRPM int    `envconfig:"RATE_LIMIT_RPM" default:"10"`
}

// loadConfig reads configuration from the environment, preloading a local
// .env file when one exists.
func loadConfig() (config, error) {
	_ = godotenv.Load()

	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		return config{}, err
	}
	if cfg.JWTSecret == "" && cfg.JWTKeys == "" {
		return config{}, errors.New("either JWT_SECRET or JWT_KEYS must be set")
	}
	return cfg, nil
}

// jwtManager builds the token manager from either the rotation key set or the
// single-secret fallback.
func (c config) jwtManager() (*auth.JWTManager, error) {
	if c.JWTKeys == "" {
		return auth.NewJWTManager(c.JWTSecret, tokenValidity), nil
	}

	keys := map[string]string{}
	for _, pair := range strings.Split(c.JWTKeys, ",") {
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid JWT_KEYS entry: %s", pair)
		}
		keys[parts[0]] = parts[1]
	}
	if len(keys) == 0 {
		return nil, errors.New("JWT_KEYS contained no usable entries")
	}
	return auth.NewJWTManagerFromKeys(keys, c.JWTActiveKid, tokenValidity), nil
}
