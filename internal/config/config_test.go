package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("JWT_SECRET", "jwt-secret")
		t.Setenv("SESSION_SECRET", "session-secret")
		t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://shop.example.com ,")
		t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
		t.Setenv("CLOUDINARY_API_KEY", "key")
		t.Setenv("CLOUDINARY_API_SECRET", "secret")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "jwt-secret", cfg.JWTSecret)
		assert.Equal(t, "session-secret", cfg.SessionSecret)
		assert.Equal(t, []string{"http://localhost:3000", "https://shop.example.com"}, cfg.CORSOrigins)
		assert.Equal(t, "demo", cfg.CloudinaryCloudName)
		assert.Equal(t, "key", cfg.CloudinaryAPIKey)
		assert.Equal(t, "secret", cfg.CloudinaryAPISecret)
		assert.False(t, cfg.IsProduction())
		assert.NoError(t, cfg.ValidateServer())
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("APP_PORT", "")
		t.Setenv("CORS_ORIGINS", "")
		t.Setenv("CLOUDINARY_FOLDER", "")
		t.Setenv("APP_ENV", "production")

		cfg := LoadConfig()

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
		assert.Equal(t, "motoshop/categories", cfg.CloudinaryFolder)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("Missing JWT secret", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("JWT_SECRET", "")

		cfg := LoadConfig()

		assert.ErrorIs(t, cfg.ValidateServer(), ErrMissingJWTSecret)
	})

	t.Run("Blank JWT secret", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("JWT_SECRET", "   ")

		assert.ErrorIs(t, LoadConfig().ValidateServer(), ErrMissingJWTSecret)
	})
}
