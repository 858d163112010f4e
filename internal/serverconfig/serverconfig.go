package serverconfig

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

type ConfigStore struct {
	FlagRunAddr   string
	FlagAdminAddr string
	FlagDatabase  string
	FlagAPIBase   string
	FlagLogLevel  string

	AdminLogin        string
	AdminPasswordHash []byte
	JWTSecret         []byte

	ClientBotToken  string
	BaristaBotToken string
}

func NewConfigStore() *ConfigStore {
	return &ConfigStore{}
}

// ParseFlags обрабатывает аргументы командной строки и переменные
// окружения; окружение имеет приоритет над флагами.
func (configStore *ConfigStore) ParseFlags() {
	flag.StringVar(&configStore.FlagRunAddr, "a", ":8080", "address and port to run API server")
	flag.StringVar(&configStore.FlagAdminAddr, "p", ":8081", "address and port to run admin panel")
	flag.StringVar(&configStore.FlagDatabase, "d", "", "data for connecting to db")
	flag.StringVar(&configStore.FlagAPIBase, "r", "http://localhost:8080", "loyalty API base url")
	flag.StringVar(&configStore.FlagLogLevel, "l", "info", "log level")
	flag.Parse()

	if envRunAddr := os.Getenv("RUN_ADDRESS"); envRunAddr != "" {
		configStore.FlagRunAddr = envRunAddr
	}
	if envAdminAddr := os.Getenv("ADMIN_ADDRESS"); envAdminAddr != "" {
		configStore.FlagAdminAddr = envAdminAddr
	}
	if envDatabase := os.Getenv("DATABASE_URI"); envDatabase != "" {
		configStore.FlagDatabase = envDatabase
	}
	if envAPIBase := os.Getenv("API_BASE_URL"); envAPIBase != "" {
		configStore.FlagAPIBase = envAPIBase
	}
	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		configStore.FlagLogLevel = envLogLevel
	}

	configStore.AdminLogin = envOrDefault("ADMIN_LOGIN", "admin")
	configStore.JWTSecret = []byte(envOrDefault("SECRET_KEY", "supersecretkey"))
	configStore.ClientBotToken = os.Getenv("TELEGRAM_TOKEN_CLIENT")
	configStore.BaristaBotToken = os.Getenv("TELEGRAM_TOKEN_BARISTA")

	// пароль админки нигде не храним открытым текстом после старта
	password := envOrDefault("ADMIN_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash admin password: %v", err))
	}
	configStore.AdminPasswordHash = hash
}

// ValidateForAPI проверяет, что API-серверу хватает настроек для старта.
func (configStore *ConfigStore) ValidateForAPI() error {
	if configStore.FlagDatabase == "" {
		return fmt.Errorf("database DSN is required (flag -d or DATABASE_URI)")
	}
	return nil
}

// ValidateForBot проверяет токен перед запуском бота.
func (configStore *ConfigStore) ValidateForBot(token string) error {
	if token == "" {
		return fmt.Errorf("telegram bot token is required")
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
