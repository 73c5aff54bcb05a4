package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/halfspace.viz/internal/field"
	"github.com/banshee-data/halfspace.viz/internal/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRenderConfig(t *testing.T) {
	cfg := DefaultRenderConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, field.DefaultResolution, cfg.GetResolution())
	assert.Equal(t, DefaultWidthInches, cfg.GetWidthInches())
	assert.Equal(t, DefaultHeightInches, cfg.GetHeightInches())
	assert.Equal(t, DefaultPaletteColors, cfg.GetPaletteColors())
	assert.Equal(t, DefaultChartPx, cfg.GetChartPx())
	assert.Nil(t, cfg.AssetsHost)
	assert.Equal(t, "", cfg.GetAssetsHost())
	assert.Equal(t, DefaultTitle, cfg.GetTitle())
}

func TestEmptyRenderConfigGetters(t *testing.T) {
	cfg := EmptyRenderConfig()
	require.NoError(t, cfg.Validate())

	// Empty and default configs must agree.
	def := DefaultRenderConfig()
	assert.Equal(t, def.GetResolution(), cfg.GetResolution())
	assert.Equal(t, def.GetWidthInches(), cfg.GetWidthInches())
	assert.Equal(t, def.GetHeightInches(), cfg.GetHeightInches())
	assert.Equal(t, def.GetPaletteColors(), cfg.GetPaletteColors())
	assert.Equal(t, def.GetChartPx(), cfg.GetChartPx())
	assert.Equal(t, def.GetAssetsHost(), cfg.GetAssetsHost())
	assert.Equal(t, def.GetTitle(), cfg.GetTitle())
}

func TestLoadRenderConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.json")
	testJSON := `{
  "resolution": 120,
  "width_inches": 10,
  "palette_colors": 64,
  "assets_host": "http://localhost:8080/assets/",
  "title": "Spam filter"
}`
	require.NoError(t, os.WriteFile(path, []byte(testJSON), 0644))

	cfg, err := LoadRenderConfig(fsutil.OSFileSystem{}, path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.GetResolution())
	assert.Equal(t, 10.0, cfg.GetWidthInches())
	assert.Equal(t, DefaultHeightInches, cfg.GetHeightInches())
	assert.Equal(t, 64, cfg.GetPaletteColors())
	assert.Equal(t, DefaultChartPx, cfg.GetChartPx())
	assert.Equal(t, "http://localhost:8080/assets/", cfg.GetAssetsHost())
	assert.Equal(t, "Spam filter", cfg.GetTitle())
}

func TestLoadRenderConfigErrors(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/bad.json", []byte(`{"resolution": `), 0644))
	require.NoError(t, mfs.WriteFile("/low.json", []byte(`{"resolution": 1}`), 0644))
	require.NoError(t, mfs.WriteFile("/multi.json", []byte(`{"palette_colors": 1, "width_inches": -2}`), 0644))
	require.NoError(t, mfs.WriteFile("/host.json", []byte(`{"assets_host": "not a url"}`), 0644))
	require.NoError(t, mfs.WriteFile("/big.json", []byte(strings.Repeat(" ", maxFileSize+1)), 0644))
	require.NoError(t, mfs.WriteFile("/settings.yaml", []byte(`resolution: 3`), 0644))

	tests := []struct {
		name    string
		path    string
		invalid bool
		substr  string
	}{
		{"missing", "/missing.json", false, "failed to stat"},
		{"wrong extension", "/settings.yaml", false, ".json extension"},
		{"malformed", "/bad.json", false, "failed to parse"},
		{"too large", "/big.json", false, "too large"},
		{"resolution below two", "/low.json", true, "resolution must satisfy gte=2"},
		{"several bad fields", "/multi.json", true, "palette_colors"},
		{"bad host", "/host.json", true, "assets_host must be a valid url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadRenderConfig(mfs, tt.path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.substr)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NotErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestWithResolution(t *testing.T) {
	base := EmptyRenderConfig()

	over := base.WithResolution(12)
	assert.Equal(t, 12, over.GetResolution())
	assert.Nil(t, base.Resolution, "original must not change")

	same := base.WithResolution(0)
	assert.Equal(t, field.DefaultResolution, same.GetResolution())

	neg := base.WithResolution(-5)
	assert.Equal(t, -5, neg.GetResolution())
	assert.Nil(t, base.Resolution, "original must not change")
}

func TestEmptyAssetsHost(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/render.json", []byte(`{"assets_host": ""}`), 0644))

	cfg, err := LoadRenderConfig(mfs, "/render.json")
	require.NoError(t, err)
	require.NotNil(t, cfg.AssetsHost)
	assert.Equal(t, "", cfg.GetAssetsHost())

	// The empty host is still kept on the config itself.
	direct := &RenderConfig{AssetsHost: ptrString("")}
	require.NoError(t, direct.Validate())
	assert.NotNil(t, direct.AssetsHost)
}

func TestGetTitleEmptyString(t *testing.T) {
	cfg := &RenderConfig{Title: ptrString("")}
	assert.Equal(t, DefaultTitle, cfg.GetTitle())
}
