package dispatch

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the HTTP adapter's environment-driven configuration.
//
// The write timeout defaults to 0 because dispatch streams are
// long-lived; a finite write deadline would cut infinite handlers off.
type Config struct {
	Addr            string        `env:"DISPATCH_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"DISPATCH_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"DISPATCH_WRITE_TIMEOUT" envDefault:"0"`
	IdleTimeout     time.Duration `env:"DISPATCH_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"DISPATCH_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// LoadConfig reads Config from the environment, consulting a .env file
// when one exists.
func LoadConfig() (Config, error) {
	// the .env file is optional; a missing one is not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("dispatch: parse config: %w", err)
	}
	return cfg, nil
}
