package config

import (
	"errors"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Reader interface {
	Read() (*Config, error)
}

// EnvReader читает конфиг из переменных окружения,
// предварительно подгружая .env-файлы, если они есть
type EnvReader struct {
	files []string
}

func NewEnvReader(files ...string) EnvReader {
	return EnvReader{files: files}
}

func (r EnvReader) Read() (*Config, error) {
	for _, file := range r.files {
		// уже заданные переменные не перезаписываются
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
