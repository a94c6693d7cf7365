package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name       string
		bcryptCost string
		wantCost   int
		wantErr    bool
	}{
		{name: "default cost", bcryptCost: "", wantCost: 12},
		{name: "valid custom cost", bcryptCost: "10", wantCost: 10},
		{name: "cost too low", bcryptCost: "9", wantErr: true},
		{name: "cost too high", bcryptCost: "15", wantErr: true},
		{name: "not a number", bcryptCost: "high", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.bcryptCost)

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, cfg.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, cfg.VerifyPassword("wrong password", hash))
	assert.False(t, cfg.VerifyPassword("correct horse battery staple", "not-a-hash"))
}

func TestPasswordConfig_HashIsSalted(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	first, err := cfg.HashPassword("same-password")
	require.NoError(t, err)
	second, err := cfg.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "bcrypt should salt each hash")
}
