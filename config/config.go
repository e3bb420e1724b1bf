package config

import "time"

type Config struct {
	Web       Web
	DB        DB
	Cors      Cors
	Session   Session
	Pix       Pix
	RateLimit RateLimit
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost"`
	Name       string `conf:"default:pokecards"`
	DisableTLS bool   `conf:"default:true"`
}

type Cors struct {
	Origin string `conf:"default:"`
}

type Session struct {
	Lifetime time.Duration `conf:"default:24h"`
}

// Pix carries the static merchant identity embedded in every
// generated payment reference.
type Pix struct {
	Merchant string `conf:"default:PokéCards"`
	Key      string `conf:"default:contato@pokecards.com.br,mask"`
}

type RateLimit struct {
	LoginRPS   float64 `conf:"default:1"`
	LoginBurst int     `conf:"default:5"`
}
