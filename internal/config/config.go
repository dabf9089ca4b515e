package config

import (
	"flag"
	"os"

	"github.com/IlyasAtabaev731/transfer-api/internal/domain/models"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	SeedSourceConfig   = "config"
	SeedSourcePostgres = "postgres"
)

type Config struct {
	Env      string `yaml:"env" env:"APP_ENV" env-default:"local" env-description:"Environment" env-choices:"local,dev,prod"`
	ApiPort  int    `yaml:"api_port" env:"API_PORT" env-default:"8080"`
	ApiHost  string `yaml:"api_host" env:"API_HOST" env-default:"localhost"`
	Seed     Seed   `yaml:"seed"`
	Postgres `yaml:"postgres"`
}

// Seed describes where the initial user set comes from.
type Seed struct {
	Source string        `yaml:"source" env:"SEED_SOURCE" env-default:"config" env-description:"Seed source" env-choices:"config,postgres"`
	Users  []models.User `yaml:"users"`
}

type Postgres struct {
	Host string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"POSTGRES_PORT" env-default:"5433"`
	User string `yaml:"user" env:"POSTGRES_USER" env-default:"test"`
	Pass string `yaml:"pass" env:"POSTGRES_PASS" env-default:"12345"`
	Db   string `yaml:"db" env:"POSTGRES_DB" env-default:"test_db"`
}

// DefaultUsers is the seed used when the config file lists no users.
func DefaultUsers() []models.User {
	return []models.User{
		{ID: 1, Name: "Alice", Balance: 1000},
		{ID: 2, Name: "Bob", Balance: 500},
	}
}

func Default() *Config {
	return &Config{
		Env:     "local",
		ApiPort: 8080,
		ApiHost: "localhost",
		Seed: Seed{
			Source: SeedSourceConfig,
			Users:  DefaultUsers(),
		},
	}
}

func MustLoad() *Config {
	path := fetchConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		panic("config file does not exist: " + path)
	}

	cfg, err := Load(path)
	if err != nil {
		panic("Failed to read config: " + err.Error())
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.Seed.Source == SeedSourceConfig && len(cfg.Seed.Users) == 0 {
		cfg.Seed.Users = DefaultUsers()
	}

	return &cfg, nil
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
