package config

import "os"

type Config struct {
	Port            string
	Env             string
	JWTSecret       string
	PostgresConnStr string
	UploadDir       string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		JWTSecret:       getEnv("JWT_SECRET", "supersecretjwtkey"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		UploadDir:       getEnv("UPLOAD_DIR", "./media"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
