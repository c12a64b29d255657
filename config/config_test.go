package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternworks/lantern-common/config"
	"github.com/lanternworks/lantern-common/envcfg"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	assert.Equal(t, uint32(1024), cfg.Window.Width)
	assert.Equal(t, uint32(768), cfg.Window.Height)
	assert.True(t, cfg.Graphics.VSync)
	assert.Zero(t, cfg.Graphics.FrameLimit)
	assert.False(t, cfg.Journal.Enabled)
	assert.Equal(t, "journals", cfg.Journal.Dir)
	require.NoError(t, cfg.Validate())
}

func TestFromBytes(t *testing.T) {
	t.Parallel()

	data := []byte(`
window:
  title: asteroid miner
  width: 1920
  height: 1080
graphics:
  vsync: false
  frame_limit: 144
  post_processing:
    film_grain: 0.25
journal:
  enabled: true
  dir: runs
`)

	cfg, err := config.FromBytes(t.Context(), data)
	require.NoError(t, err)

	assert.Equal(t, "asteroid miner", cfg.Window.Title)
	assert.Equal(t, uint32(1920), cfg.Window.Width)
	assert.Equal(t, uint32(1080), cfg.Window.Height)
	assert.False(t, cfg.Graphics.VSync)
	assert.Equal(t, uint32(144), cfg.Graphics.FrameLimit)
	assert.InDelta(t, 0.25, cfg.Graphics.PostProcessing.FilmGrain, 0.0001)
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, "runs", cfg.Journal.Dir)
}

func TestFromBytes_PartialKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromBytes(t.Context(), []byte("window:\n  title: sandbox\n"))
	require.NoError(t, err)

	assert.Equal(t, "sandbox", cfg.Window.Title)
	assert.Equal(t, uint32(1024), cfg.Window.Width)
	assert.True(t, cfg.Graphics.VSync)
}

func TestFromBytes_BadYAML(t *testing.T) {
	t.Parallel()

	_, err := config.FromBytes(t.Context(), []byte("window: [not a mapping"))
	require.Error(t, err)
}

func TestEnvOverridesBeatFile(t *testing.T) {
	t.Parallel()

	ctx := envcfg.WithOverrides(t.Context(), map[string]string{
		"APP_WINDOW_WIDTH": "640",
		"APP_VSYNC":        "true",
		"APP_JOURNAL_DIR":  "/tmp/journals",
	})

	data := []byte(`
window:
  width: 1920
graphics:
  vsync: false
`)

	cfg, err := config.FromBytes(ctx, data)
	require.NoError(t, err)

	assert.Equal(t, uint32(640), cfg.Window.Width)
	assert.True(t, cfg.Graphics.VSync)
	assert.Equal(t, "/tmp/journals", cfg.Journal.Dir)
}

func TestLoad_EmptyPathUsesDefaultsAndEnv(t *testing.T) {
	t.Parallel()

	ctx := envcfg.WithOverrides(t.Context(), map[string]string{
		"APP_WINDOW_TITLE": "debug shell",
		"APP_FRAME_LIMIT":  "60",
	})

	cfg, err := config.Load(ctx, "")
	require.NoError(t, err)

	assert.Equal(t, "debug shell", cfg.Window.Title)
	assert.Equal(t, uint32(60), cfg.Graphics.FrameLimit)
	assert.Equal(t, uint32(1024), cfg.Window.Width)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(t.Context(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(*config.Config) {},
		},
		{
			name: "journal enabled without dir",
			mutate: func(cfg *config.Config) {
				cfg.Journal.Enabled = true
				cfg.Journal.Dir = ""
			},
			wantErr: config.ErrJournalDirRequired,
		},
		{
			name: "negative film grain",
			mutate: func(cfg *config.Config) {
				cfg.Graphics.PostProcessing.FilmGrain = -0.5
			},
			wantErr: config.ErrNegativeStrength,
		},
		{
			name: "negative chromatic aberration",
			mutate: func(cfg *config.Config) {
				cfg.Graphics.PostProcessing.ChromaticAberration = -1
			},
			wantErr: config.ErrNegativeStrength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Window.Title = "saved session"
	cfg.Graphics.FrameLimit = 120
	cfg.Journal.Enabled = true

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded, err := config.FromBytes(t.Context(), data)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
