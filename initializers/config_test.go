package initializers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv(t *testing.T) {
	original := Config
	t.Cleanup(func() { Config = original })

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SECRET_KEY", "")
		t.Setenv("REQUESTS_PER_PAGE", "")

		LoadEnv()

		assert.Equal(t, "8080", Config.Port)
		assert.Equal(t, 20, Config.RequestsPerPage)
		assert.Equal(t, "2025-12-24 20:00:00", Config.ChristmasEvePrayerTime)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("SECRET_KEY", "from-env")
		t.Setenv("PORT", "9090")
		t.Setenv("REQUESTS_PER_PAGE", "5")

		LoadEnv()

		assert.Equal(t, "from-env", Config.SecretKey)
		assert.Equal(t, "9090", Config.Port)
		assert.Equal(t, 5, Config.RequestsPerPage)
	})

	t.Run("non positive page size falls back", func(t *testing.T) {
		t.Setenv("REQUESTS_PER_PAGE", "0")

		LoadEnv()

		assert.Equal(t, 20, Config.RequestsPerPage)
	})
}
