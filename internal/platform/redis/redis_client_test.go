package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddr(t *testing.T) {
	t.Run("REDIS_ADDR wins", func(t *testing.T) {
		t.Setenv(EnvKeyAddr, "cache.internal:6380")
		t.Setenv(EnvKeyHost, "ignored")
		t.Setenv(EnvKeyPort, "9999")

		assert.Equal(t, "cache.internal:6380", Addr())
	})

	t.Run("host and port are combined", func(t *testing.T) {
		t.Setenv(EnvKeyAddr, "")
		t.Setenv(EnvKeyHost, "redis")
		t.Setenv(EnvKeyPort, "6379")

		assert.Equal(t, "redis:6379", Addr())
	})

	t.Run("defaults to localhost", func(t *testing.T) {
		t.Setenv(EnvKeyAddr, "")
		t.Setenv(EnvKeyHost, "")
		t.Setenv(EnvKeyPort, "")

		assert.Equal(t, "localhost:6379", Addr())
	})
}
