package serverconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidateForAPI(t *testing.T) {
	configStore := NewConfigStore()
	require.Error(t, configStore.ValidateForAPI())

	configStore.FlagDatabase = "host=localhost user=postgres dbname=coffee"
	assert.NoError(t, configStore.ValidateForAPI())
}

func TestValidateForBot(t *testing.T) {
	configStore := NewConfigStore()
	require.Error(t, configStore.ValidateForBot(""))
	assert.NoError(t, configStore.ValidateForBot("123:token"))
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("COFFEE_TEST_KEY", "value")
	assert.Equal(t, "value", envOrDefault("COFFEE_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", envOrDefault("COFFEE_TEST_MISSING", "fallback"))
}

func TestAdminPasswordIsHashed(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	configStore := NewConfigStore()
	configStore.AdminLogin = "admin"
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	configStore.AdminPasswordHash = hash

	assert.NoError(t, bcrypt.CompareHashAndPassword(configStore.AdminPasswordHash, []byte("s3cret")))
	assert.Error(t, bcrypt.CompareHashAndPassword(configStore.AdminPasswordHash, []byte("wrong")))
}
