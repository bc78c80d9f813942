package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 3, config.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, config.RetryDelay)
}

func TestNewConfig(t *testing.T) {
	t.Run("no options returns defaults", func(t *testing.T) {
		config := NewConfig()
		assert.Equal(t, DefaultConfig(), config)
	})

	t.Run("with max attempts", func(t *testing.T) {
		config := NewConfig(WithMaxAttempts(5))
		assert.Equal(t, 5, config.MaxAttempts)
		assert.Equal(t, 500*time.Millisecond, config.RetryDelay)
	})

	t.Run("with retry delay", func(t *testing.T) {
		config := NewConfig(WithRetryDelay(time.Second))
		assert.Equal(t, time.Second, config.RetryDelay)
	})

	t.Run("multiple options", func(t *testing.T) {
		config := NewConfig(WithMaxAttempts(1), WithRetryDelay(0))
		assert.Equal(t, 1, config.MaxAttempts)
		assert.Equal(t, time.Duration(0), config.RetryDelay)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "single attempt is valid",
			config:  NewConfig(WithMaxAttempts(1)),
			wantErr: false,
		},
		{
			name:    "zero retry delay is valid",
			config:  NewConfig(WithRetryDelay(0)),
			wantErr: false,
		},
		{
			name:    "zero attempts",
			config:  NewConfig(WithMaxAttempts(0)),
			wantErr: true,
		},
		{
			name:    "negative attempts",
			config:  NewConfig(WithMaxAttempts(-1)),
			wantErr: true,
		},
		{
			name:    "excessive attempts",
			config:  NewConfig(WithMaxAttempts(11)),
			wantErr: true,
		},
		{
			name:    "negative retry delay",
			config:  NewConfig(WithRetryDelay(-time.Second)),
			wantErr: true,
		},
		{
			name:    "excessive retry delay",
			config:  NewConfig(WithRetryDelay(6 * time.Second)),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
