package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("PORT", "9090")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DriverREST, cfg.Backend.Driver)
	assert.Equal(t, "https://project.supabase.co", cfg.Backend.URL)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Content.RenderWait)
	assert.Equal(t, ":9090", cfg.Address())
	assert.False(t, cfg.AdminEnabled())
}

func TestLoad_MissingCredentialsIsFatal(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestLoad_PostgresNeedsDSN(t *testing.T) {
	t.Setenv("BACKEND_DRIVER", DriverPostgres)
	t.Setenv("DATABASE_URL", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
env: prod
backend:
  driver: sqlite
store:
  path: data/site.db
content:
  render_wait: 2s
business:
  name: Offsite Goa
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("BUSINESS_NAME", "Offsite India")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, DriverSQLite, cfg.Backend.Driver)
	assert.Equal(t, "data/site.db", cfg.GetStorePath())
	assert.Equal(t, 2*time.Second, cfg.Content.RenderWait)
	assert.Equal(t, "Offsite India", cfg.Business.Name)
}

func TestValidate_AdminRequiresSecretOutsideDebug(t *testing.T) {
	cfg := &Config{
		Server:  Server{Port: 8080},
		Backend: Backend{Driver: DriverSQLite},
		Store:   Store{Path: "data/offsite.db"},
		Admin:   Admin{Email: "ops@offsite.test", PasswordHash: "$2a$10$hash"},
	}
	assert.Error(t, cfg.validate())

	cfg.Debug = true
	require.NoError(t, cfg.validate())
	assert.NotEmpty(t, cfg.Admin.JWTSecret)
	assert.True(t, cfg.AdminEnabled())
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{
		Server:  Server{Port: 8080},
		Backend: Backend{Driver: "mongo"},
		Store:   Store{Path: "data/offsite.db"},
	}
	assert.Error(t, cfg.validate())
}
