package salinity

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// CameraControlsConfig tunes CameraControls.
type CameraControlsConfig struct {
	// DragButton pans the camera.
	DragButton MouseButton `toml:"drag_button"`
	// Drag2Button pans the camera while space is held.
	Drag2Button MouseButton `toml:"drag2_button"`
	// RotateButton rotates the camera by horizontal pointer movement.
	RotateButton MouseButton `toml:"rotate_button"`

	WheelFactor float64 `toml:"wheel_factor"`
	RotateSpeed float64 `toml:"rotate_speed"`

	// FocusDuration is the double-click focus animation length in seconds.
	FocusDuration float64 `toml:"focus_duration"`
	// SceneFillRatio and ObjectFillRatio scale the zoom that would exactly
	// fit the scene or a single object when focusing it.
	SceneFillRatio  float64 `toml:"scene_fill_ratio"`
	ObjectFillRatio float64 `toml:"object_fill_ratio"`
}

// Theme holds the colors used by synthesized helper nodes.
type Theme struct {
	IconLight Color `toml:"icon_light"`
	IconDark  Color `toml:"icon_dark"`
	Highlight Color `toml:"highlight"`
}

// Config holds renderer and controller settings.
type Config struct {
	Width      int   `toml:"width"`
	Height     int   `toml:"height"`
	Background Color `toml:"background"`
	Debug      bool  `toml:"debug"`

	SelectionColor Color   `toml:"selection_color"`
	SelectionWidth float64 `toml:"selection_width"`

	// DragSlop is the Manhattan distance in pixels the pointer must travel
	// before a default drag moves its node.
	DragSlop float64 `toml:"drag_slop"`

	// HandleRadius is the resize tool's handle size in pixels.
	HandleRadius float64 `toml:"handle_radius"`

	Camera CameraControlsConfig `toml:"camera"`
	Theme  Theme                `toml:"theme"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Width:          1280,
		Height:         720,
		Background:     MustColor("#222222"),
		SelectionColor: MustColor("#00aacc"),
		SelectionWidth: 2,
		DragSlop:       2,
		HandleRadius:   5,
		Camera: CameraControlsConfig{
			DragButton:      MouseButtonRight,
			Drag2Button:     MouseButtonLeft,
			RotateButton:    MouseButtonMiddle,
			WheelFactor:     0.001,
			RotateSpeed:     0.01,
			FocusDuration:   0.2,
			SceneFillRatio:  0.5,
			ObjectFillRatio: 0.1,
		},
		Theme: Theme{
			IconLight: MustColor("#ffffff"),
			IconDark:  MustColor("#c3c3c3"),
			Highlight: MustColor("#00aacc"),
		},
	}
}

// Validate reports every out-of-range setting, joined into one error
// wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []string
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Sprintf("size %dx%d must be positive", c.Width, c.Height))
	}
	if c.SelectionWidth < 0 {
		errs = append(errs, "selection_width must not be negative")
	}
	if c.DragSlop < 0 {
		errs = append(errs, "drag_slop must not be negative")
	}
	if c.HandleRadius <= 0 {
		errs = append(errs, "handle_radius must be positive")
	}
	if c.Camera.FocusDuration < 0 {
		errs = append(errs, "camera.focus_duration must not be negative")
	}
	if c.Camera.SceneFillRatio <= 0 || c.Camera.SceneFillRatio > 1 {
		errs = append(errs, "camera.scene_fill_ratio must be in (0, 1]")
	}
	if c.Camera.ObjectFillRatio <= 0 || c.Camera.ObjectFillRatio > 1 {
		errs = append(errs, "camera.object_fill_ratio must be in (0, 1]")
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
}

// DecodeConfig reads TOML from r over the defaults. Unknown keys are an
// error.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML config file. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	cfg, err := DecodeConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
