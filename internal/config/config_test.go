package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.FileExists(t, path)

	again, err := LoadOrCreate(path)
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}

func TestLoadOrCreateFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	body := `
log_file = "/tmp/doin.log"

[keys]
quit = ["x"]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/doin.log", cfg.LogFile)
	require.Equal(t, []string{"x"}, cfg.Keys.Quit)
	require.Equal(t, Default().Keys.Up, cfg.Keys.Up)
	require.Equal(t, DefaultPollInterval, cfg.Poll())
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadOrCreateRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"bad duration":  `poll_interval = "soon"`,
		"zero duration": `poll_interval = "0s"`,
		"bad level":     `log_level = "loud"`,
		"bad toml":      `poll_interval = `,
		"empty keys":    "[keys]\nquit = []",
		"blank key":     "[keys]\nup = [\"\"]",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultConfigFileName)
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := LoadOrCreate(path)
			require.Error(t, err)
		})
	}
}

func TestLoadOrCreateNamesEmptyKeyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("[keys]\nquit = ['q']\ncancel = []\n"), 0o644))

	_, err := LoadOrCreate(path)
	require.ErrorContains(t, err, "keys.cancel")
}

func TestPollFallsBackToDefault(t *testing.T) {
	require.Equal(t, DefaultPollInterval, Config{PollInterval: "nope"}.Poll())
	require.Equal(t, 200*time.Millisecond, Config{PollInterval: "200ms"}.Poll())
}

func TestResolveConfigPathHonorsEnv(t *testing.T) {
	t.Setenv(envConfigPath, "/etc/doin.toml")
	require.Equal(t, "/etc/doin.toml", ResolveConfigPath())
}
