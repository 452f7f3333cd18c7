package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("UNIV_TEST_INT", "12")
	t.Setenv("UNIV_TEST_BAD_INT", "x")
	t.Setenv("UNIV_TEST_BOOL", "true")

	assert.Equal(t, 12, GetEnvInt("UNIV_TEST_INT", 3))
	assert.Equal(t, 3, GetEnvInt("UNIV_TEST_BAD_INT", 3))
	assert.Equal(t, 7, GetEnvInt("UNIV_TEST_MISSING", 7))
	assert.True(t, GetEnvBool("UNIV_TEST_BOOL", false))
	assert.True(t, GetEnvBool("UNIV_TEST_MISSING", true))
	assert.Equal(t, "def", GetEnv("UNIV_TEST_MISSING", "def"))
}

func TestDatabaseDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_HOST", "h")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "campus")
	t.Setenv("DB_SSLMODE", "disable")

	assert.Contains(t, DatabaseDSN(), "postgres://u:p@h:6543/campus?sslmode=disable")

	t.Setenv("DATABASE_URL", "postgres://x")
	assert.Equal(t, "postgres://x", DatabaseDSN())
}
