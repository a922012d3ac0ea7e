package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config reúne todas as variáveis de ambiente usadas pelo sistema.
// Nenhum pacote lê o ambiente diretamente; tudo passa por aqui.
type Config struct {
	PortaHTTP string

	DBHost    string
	DBPort    uint
	DBNome    string
	DBUsuario string
	DBSenha   string
	DBSSLMode string

	// Base externa de produtos (catálogo). Vazio + UsarCatalogoMock=true
	// liga o catálogo simulado.
	CatalogoURL      string
	UsarCatalogoMock bool

	// Host de imagens dos produtos (fotos por referência).
	ImagensBaseURL string

	JWTSecret string
}

// Carregar monta a configuração a partir do ambiente.
func Carregar() (*Config, error) {
	cfg := &Config{
		PortaHTTP:        valorOuPadrao("HTTP_PORT", "8080"),
		DBHost:           valorOuPadrao("DB_HOST", "localhost"),
		DBNome:           valorOuPadrao("DB_NAME", "controle_pedidos"),
		DBUsuario:        valorOuPadrao("DB_USER", "postgres"),
		DBSenha:          os.Getenv("DB_PASSWORD"),
		DBSSLMode:        valorOuPadrao("DB_SSL_MODE", "disable"),
		CatalogoURL:      os.Getenv("CATALOGO_URL"),
		ImagensBaseURL:   valorOuPadrao("IMAGENS_BASE_URL", "https://nyc3.digitaloceanspaces.com/moribr/base-fotos"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		UsarCatalogoMock: os.Getenv("CATALOGO_MOCK") == "true",
	}

	porta := valorOuPadrao("DB_PORT", "5432")
	p, err := strconv.ParseUint(porta, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("DB_PORT inválida %q: %w", porta, err)
	}
	cfg.DBPort = uint(p)

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET não definida")
	}
	if cfg.CatalogoURL == "" && !cfg.UsarCatalogoMock {
		return nil, fmt.Errorf("CATALOGO_URL não definida (ou defina CATALOGO_MOCK=true)")
	}

	return cfg, nil
}

// DSN monta a string de conexão do Postgres.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.DBHost, c.DBUsuario, c.DBSenha, c.DBNome, c.DBPort, c.DBSSLMode)
}

func valorOuPadrao(chave, padrao string) string {
	if v := os.Getenv(chave); v != "" {
		return v
	}
	return padrao
}
