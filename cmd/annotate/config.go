package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/image/colornames"
	"golang.org/x/text/language"

	"github.com/gogpu/annotate"
	"github.com/gogpu/annotate/surface"
)

const (
	configName = "annotate"
	configType = "yaml"
	envPrefix  = "ANNOTATE"

	keyScale   = "scale"
	keyLocale  = "locale"
	keyBackend = "backend"
	keyFont    = "font"
)

// Per-tool keys, below tools.<tool name>.
const (
	keyStrokeWidth = "stroke_width"
	keyStrokeColor = "stroke_color"
	keyFillColor   = "fill_color"
	keyStrength    = "strength"
	keyFontColor   = "font_color"
	keyFontSize    = "font_size"
	keyShadow      = "shadow"
)

// loadConfig reads the config file at path into v, or ./annotate.yaml when
// path is empty. A missing default file is not an error. Every key can be
// overridden from the environment: tools.arrow.stroke_width becomes
// ANNOTATE_TOOLS_ARROW_STROKE_WIDTH.
func loadConfig(v *viper.Viper, path string) error {
	v.SetDefault(keyScale, 1.0)
	v.SetDefault(keyBackend, surface.ImageBackend)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// documentOptions turns the configuration into document options.
func documentOptions(v *viper.Viper) ([]annotate.DocumentOption, error) {
	var opts []annotate.DocumentOption

	if s := v.GetString(keyLocale); s != "" {
		tag, err := language.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("locale %q: %w", s, err)
		}
		opts = append(opts, annotate.WithLocale(tag))
	}

	if path := v.GetString(keyFont); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		opts = append(opts, annotate.WithFontData(data))
	}

	backend := v.GetString(keyBackend)
	check, err := surface.NewSurfaceByName(backend, surface.Options{Width: 1, Height: 1})
	if err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}
	_ = check.Close()
	opts = append(opts, annotate.WithSurfaceFactory(func(o surface.Options) (surface.Surface, error) {
		return surface.NewSurfaceByName(backend, o)
	}))

	for t := annotate.FreehandTool; t <= annotate.NumberTool; t++ {
		s, err := toolSettings(v, t)
		if err != nil {
			return nil, err
		}
		opts = append(opts, annotate.WithToolSettings(t, s))
	}
	return opts, nil
}

// toolSettings returns the defaults of t overridden by tools.<t>.* keys.
func toolSettings(v *viper.Viper, t annotate.Tool) (annotate.ToolSettings, error) {
	s := annotate.DefaultToolSettings(t)
	key := func(k string) string { return "tools." + t.String() + "." + k }

	if v.IsSet(key(keyStrokeWidth)) {
		s.StrokeWidth = v.GetFloat64(key(keyStrokeWidth))
	}
	if v.IsSet(key(keyStrength)) {
		s.Strength = v.GetFloat64(key(keyStrength))
	}
	if v.IsSet(key(keyFontSize)) {
		s.FontSize = v.GetFloat64(key(keyFontSize))
	}
	if v.IsSet(key(keyShadow)) {
		s.Shadow = v.GetBool(key(keyShadow))
	}
	for k, dst := range map[string]*color.Color{
		keyStrokeColor: &s.StrokeColor,
		keyFillColor:   &s.FillColor,
		keyFontColor:   &s.FontColor,
	} {
		if !v.IsSet(key(k)) {
			continue
		}
		c, err := parseColor(v.GetString(key(k)))
		if err != nil {
			return s, fmt.Errorf("%s: %w", key(k), err)
		}
		*dst = c
	}
	return s, nil
}

// parseColor accepts an SVG colour name or #rrggbb / #rrggbbaa.
func parseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	raw, ok := strings.CutPrefix(s, "#")
	if !ok || (len(raw) != 6 && len(raw) != 8) {
		return nil, fmt.Errorf("invalid colour %q", s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	c := color.NRGBA{R: b[0], G: b[1], B: b[2], A: 255}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}
