package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"GEARSHOP_APP_NAME":                os.Getenv("GEARSHOP_APP_NAME"),
		"GEARSHOP_APP_ENV":                 os.Getenv("GEARSHOP_APP_ENV"),
		"GEARSHOP_APP_PORT":                os.Getenv("GEARSHOP_APP_PORT"),
		"GEARSHOP_DATABASE_HOST":           os.Getenv("GEARSHOP_DATABASE_HOST"),
		"GEARSHOP_DATABASE_PORT":           os.Getenv("GEARSHOP_DATABASE_PORT"),
		"GEARSHOP_DATABASE_USER":           os.Getenv("GEARSHOP_DATABASE_USER"),
		"GEARSHOP_DATABASE_PASSWORD":       os.Getenv("GEARSHOP_DATABASE_PASSWORD"),
		"GEARSHOP_DATABASE_DBNAME":         os.Getenv("GEARSHOP_DATABASE_DBNAME"),
		"GEARSHOP_DATABASE_SSLMODE":        os.Getenv("GEARSHOP_DATABASE_SSLMODE"),
		"GEARSHOP_DATABASE_MAX_OPEN_CONNS": os.Getenv("GEARSHOP_DATABASE_MAX_OPEN_CONNS"),
		"GEARSHOP_DATABASE_MAX_IDLE_CONNS": os.Getenv("GEARSHOP_DATABASE_MAX_IDLE_CONNS"),
		"GEARSHOP_RESERVATION_WINDOW":      os.Getenv("GEARSHOP_RESERVATION_WINDOW"),
		"GEARSHOP_PRICING_HANDLING_FEE":    os.Getenv("GEARSHOP_PRICING_HANDLING_FEE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "gearshop-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "gearshop", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "10m0s", cfg.Reservation.Window.String())
		assert.Equal(t, "0", cfg.Pricing.HandlingFee)
	})

	t.Run("loads values from environment variables with GEARSHOP prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("GEARSHOP_APP_NAME", "test-app")
		os.Setenv("GEARSHOP_APP_ENV", "testing")
		os.Setenv("GEARSHOP_APP_PORT", "9000")
		os.Setenv("GEARSHOP_DATABASE_HOST", "testdb.local")
		os.Setenv("GEARSHOP_DATABASE_PORT", "5433")
		os.Setenv("GEARSHOP_DATABASE_USER", "testuser")
		os.Setenv("GEARSHOP_DATABASE_PASSWORD", "testpass")
		os.Setenv("GEARSHOP_DATABASE_DBNAME", "testdb")
		os.Setenv("GEARSHOP_DATABASE_SSLMODE", "require")
		os.Setenv("GEARSHOP_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("GEARSHOP_DATABASE_MAX_IDLE_CONNS", "10")
		os.Setenv("GEARSHOP_RESERVATION_WINDOW", "15m")
		os.Setenv("GEARSHOP_PRICING_HANDLING_FEE", "20.000")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, "15m0s", cfg.Reservation.Window.String())
		assert.Equal(t, "20.000", cfg.Pricing.HandlingFee)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("GEARSHOP_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("GEARSHOP_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("GEARSHOP_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"GEARSHOP_APP_ENV":             os.Getenv("GEARSHOP_APP_ENV"),
		"GEARSHOP_DATABASE_PASSWORD":   os.Getenv("GEARSHOP_DATABASE_PASSWORD"),
		"GEARSHOP_DATABASE_SSLMODE":    os.Getenv("GEARSHOP_DATABASE_SSLMODE"),
		"GEARSHOP_PAYMENT_GATEWAY_URL": os.Getenv("GEARSHOP_PAYMENT_GATEWAY_URL"),
		"GEARSHOP_PAYMENT_MERCHANT_ID": os.Getenv("GEARSHOP_PAYMENT_MERCHANT_ID"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	setValidProductionBase := func() {
		os.Setenv("GEARSHOP_APP_ENV", "production")
		os.Setenv("GEARSHOP_DATABASE_PASSWORD", "secure-password")
		os.Setenv("GEARSHOP_DATABASE_SSLMODE", "require")
		os.Setenv("GEARSHOP_PAYMENT_GATEWAY_URL", "https://gateway.example.com")
		os.Setenv("GEARSHOP_PAYMENT_MERCHANT_ID", "merchant-1")
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("GEARSHOP_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("GEARSHOP_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("requires payment gateway settings in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("GEARSHOP_PAYMENT_GATEWAY_URL")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "payment.gateway_url is required in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		// URL-encoded password should be in the DSN
		assert.Contains(t, dsn, "pass%40word%23123")
	})

	t.Run("handles empty password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.NotEmpty(t, dsn)
	})
}
