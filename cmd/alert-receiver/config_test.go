package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"HOST", "PORT", "LOG_LEVEL", "LOG_FORMAT", "MAX_BODY_BYTES",
	"READ_TIMEOUT", "WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT",
}

// clearConfigEnv unsets every variable the receiver reads and restores the
// previous values when the test ends.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	config, err := ParseConfig("", "")
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), config)
	assert.Equal(t, "0.0.0.0", config.Host)
	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "0.0.0.0:8080", config.Address())
}

func TestParseConfig_Environment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("READ_TIMEOUT", "3s")
	t.Setenv("MAX_BODY_BYTES", "4096")

	config, err := ParseConfig("", "")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", config.Address())
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, 3*time.Second, config.ReadTimeout)
	assert.Equal(t, int64(4096), config.MaxBodyBytes)
	assert.Equal(t, defaultWriteTimeout, config.WriteTimeout)
}

func TestParseConfig_YAMLThenEnvironment(t *testing.T) {
	clearConfigEnv(t)
	path := writeFile(t, "config.yaml", `
host: 10.0.0.5
port: 9000
log_format: json
shutdown_timeout: 5s
`)
	t.Setenv("PORT", "9100")

	config, err := ParseConfig(path, "")
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5", config.Host)
	assert.Equal(t, 9100, config.Port, "environment overrides the file")
	assert.Equal(t, logFormatJSON, config.LogFormat)
	assert.Equal(t, 5*time.Second, config.ShutdownTimeout)
	assert.Equal(t, defaultReadTimeout, config.ReadTimeout)
}

func TestParseConfig_EmptyYAML(t *testing.T) {
	clearConfigEnv(t)
	path := writeFile(t, "config.yaml", "")

	config, err := ParseConfig(path, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestParseConfig_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	clearConfigEnv(t)
	envPath := writeFile(t, "alert-receiver.env", "PORT=7070\nLOG_LEVEL=debug\n")
	t.Setenv("LOG_LEVEL", "warn")

	config, err := ParseConfig("", envPath)
	require.NoError(t, err)

	assert.Equal(t, 7070, config.Port)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestParseConfig_Errors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"non-numeric port", map[string]string{"PORT": "http"}},
		{"port out of range", map[string]string{"PORT": "70000"}},
		{"negative port", map[string]string{"PORT": "-1"}},
		{"zero body limit", map[string]string{"MAX_BODY_BYTES": "0"}},
		{"bad duration", map[string]string{"READ_TIMEOUT": "soon"}},
		{"zero write timeout", map[string]string{"WRITE_TIMEOUT": "0s"}},
		{"negative shutdown timeout", map[string]string{"SHUTDOWN_TIMEOUT": "-1s"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := ParseConfig("", "")
			assert.Error(t, err)
		})
	}
}

func TestParseConfig_MissingFiles(t *testing.T) {
	clearConfigEnv(t)
	missing := filepath.Join(t.TempDir(), "absent")

	_, err := ParseConfig(missing, "")
	assert.Error(t, err)

	_, err = ParseConfig("", missing)
	assert.Error(t, err)
}

func TestParseConfig_MalformedYAML(t *testing.T) {
	clearConfigEnv(t)
	path := writeFile(t, "config.yaml", "port: [not, a, number]\n")

	_, err := ParseConfig(path, "")
	assert.Error(t, err)
}

func TestConfig_AddressIPv6(t *testing.T) {
	config := DefaultConfig()
	config.Host = "::1"
	assert.Equal(t, "[::1]:8080", config.Address())
}
