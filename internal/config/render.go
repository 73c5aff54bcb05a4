package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/banshee-data/halfspace.viz/internal/field"
	"github.com/banshee-data/halfspace.viz/internal/fsutil"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid render config")

// maxFileSize caps the settings file size.
const maxFileSize = 1 * 1024 * 1024 // 1MB

// Defaults for fields omitted from the settings file.
const (
	DefaultWidthInches   = 8.0
	DefaultHeightInches  = 6.0
	DefaultPaletteColors = 255
	DefaultChartPx       = 900
	DefaultTitle         = "Probability Space of Binary Classifier"
)

// RenderConfig holds the optional render settings. Every field is a pointer
// so partial files are safe; the Get* methods supply defaults.
type RenderConfig struct {
	Resolution    *int     `json:"resolution,omitempty" validate:"omitempty,gte=2,lte=2000"`
	WidthInches   *float64 `json:"width_inches,omitempty" validate:"omitempty,gt=0,lte=100"`
	HeightInches  *float64 `json:"height_inches,omitempty" validate:"omitempty,gt=0,lte=100"`
	PaletteColors *int     `json:"palette_colors,omitempty" validate:"omitempty,gte=2,lte=4096"`
	ChartPx       *int     `json:"chart_px,omitempty" validate:"omitempty,gte=100,lte=10000"`
	AssetsHost    *string  `json:"assets_host,omitempty" validate:"omitempty,url"`
	Title         *string  `json:"title,omitempty" validate:"omitempty,max=200"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Report JSON names so errors match what the user wrote.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// EmptyRenderConfig returns a RenderConfig with all fields set to nil.
func EmptyRenderConfig() *RenderConfig {
	return &RenderConfig{}
}

// DefaultRenderConfig returns a RenderConfig with every field populated
// except AssetsHost, which stays nil so echarts uses its own host.
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		Resolution:    ptrInt(field.DefaultResolution),
		WidthInches:   ptrFloat64(DefaultWidthInches),
		HeightInches:  ptrFloat64(DefaultHeightInches),
		PaletteColors: ptrInt(DefaultPaletteColors),
		ChartPx:       ptrInt(DefaultChartPx),
		Title:         ptrString(DefaultTitle),
	}
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// LoadRenderConfig loads a RenderConfig from a JSON file.
// The file must have a .json extension and be no larger than 1MB.
// Fields omitted from the file keep their defaults.
func LoadRenderConfig(fsys fsutil.FileSystem, path string) (*RenderConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyRenderConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configured values are in range.
// An empty assets_host is accepted and means the library default.
func (c *RenderConfig) Validate() error {
	v := *c
	if v.AssetsHost != nil && *v.AssetsHost == "" {
		v.AssetsHost = nil
	}
	err := validate.Struct(&v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s, got %v", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must be a valid %s, got %v", fe.Field(), fe.Tag(), fe.Value()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// WithResolution returns a copy of c with the resolution overridden.
// Zero leaves c's resolution unchanged; any other value, including a negative
// one, replaces it so that validation downstream can reject it.
func (c *RenderConfig) WithResolution(n int) *RenderConfig {
	out := *c
	if n != 0 {
		out.Resolution = ptrInt(n)
	}
	return &out
}

// GetResolution returns the samples per axis or the default.
func (c *RenderConfig) GetResolution() int {
	if c.Resolution == nil {
		return field.DefaultResolution
	}
	return *c.Resolution
}

// GetWidthInches returns the static image width or the default.
func (c *RenderConfig) GetWidthInches() float64 {
	if c.WidthInches == nil {
		return DefaultWidthInches
	}
	return *c.WidthInches
}

// GetHeightInches returns the static image height or the default.
func (c *RenderConfig) GetHeightInches() float64 {
	if c.HeightInches == nil {
		return DefaultHeightInches
	}
	return *c.HeightInches
}

// GetPaletteColors returns the heatmap palette size or the default.
func (c *RenderConfig) GetPaletteColors() int {
	if c.PaletteColors == nil {
		return DefaultPaletteColors
	}
	return *c.PaletteColors
}

// GetChartPx returns the HTML chart edge length in pixels or the default.
func (c *RenderConfig) GetChartPx() int {
	if c.ChartPx == nil {
		return DefaultChartPx
	}
	return *c.ChartPx
}

// GetAssetsHost returns the echarts asset host; empty means the library default.
func (c *RenderConfig) GetAssetsHost() string {
	if c.AssetsHost == nil {
		return ""
	}
	return *c.AssetsHost
}

// GetTitle returns the plot title or the default.
func (c *RenderConfig) GetTitle() string {
	if c.Title == nil || *c.Title == "" {
		return DefaultTitle
	}
	return *c.Title
}
