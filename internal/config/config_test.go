package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	testCases := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults without file",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "3000", cfg.Server.Port)
				assert.Equal(t, BackendFile, cfg.Store.Backend)
				assert.Equal(t, 10, cfg.Quiz.DefaultCount)
				assert.Equal(t, "zh", cfg.Quiz.DefaultLang)
				assert.Equal(t, "questions.json", cfg.Storage.QuestionsFile)
				assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
				assert.Equal(t, "logs/app.log", cfg.Log.File)
			},
		},
		{
			name: "file overrides",
			yaml: `
server:
  port: "8081"
store:
  backend: database
database:
  driver: postgres
  port: 5432
quiz:
  default_count: 5
  default_lang: en
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "8081", cfg.Server.Port)
				assert.Equal(t, BackendDatabase, cfg.Store.Backend)
				assert.Equal(t, "postgres", cfg.Database.Driver)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, 5, cfg.Quiz.DefaultCount)
				assert.Equal(t, "en", cfg.Quiz.DefaultLang)
			},
		},
		{
			name: "unknown backend",
			yaml: `
store:
  backend: mongo
`,
			wantErr: true,
		},
		{
			name: "non positive default count",
			yaml: `
quiz:
  default_count: 0
`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if tc.yaml != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tc.yaml), 0o644))
			}
			t.Setenv("DATA_DIR", filepath.Join(dir, "data"))
			t.Setenv("PORT", "")
			t.Setenv("STORE_BACKEND", "")

			cfg, err := LoadConfig(dir)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, dir, cfg.Dir)
			tc.check(t, cfg)
		})
	}
}
