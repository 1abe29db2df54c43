// Package config loads racer settings from racer.cfg.json, RACER_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"racer/internal/game"
	"racer/internal/track"
)

// FileName is the config file looked up in the config directory.
const FileName = "racer.cfg.json"

type WindowConfig struct {
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
	Title  string `json:"title" mapstructure:"title"`
}

type TrackConfig struct {
	Visual string `json:"visual" mapstructure:"visual"`
	Mask   string `json:"mask" mapstructure:"mask"`
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
}

type PhysicsConfig struct {
	WallStickiness   float64 `json:"wallStickiness" mapstructure:"wallStickiness"`
	WallBounceFactor float64 `json:"wallBounceFactor" mapstructure:"wallBounceFactor"`
}

// CarConfig overrides a vehicle preset. Color is "#rrggbb".
type CarConfig struct {
	Acceleration float64 `json:"acceleration" mapstructure:"acceleration"`
	MaxSpeed     float64 `json:"maxSpeed" mapstructure:"maxSpeed"`
	Friction     float64 `json:"friction" mapstructure:"friction"`
	TurnRate     float64 `json:"turnRate" mapstructure:"turnRate"`
	Length       float64 `json:"length" mapstructure:"length"`
	Width        float64 `json:"width" mapstructure:"width"`
	Color        string  `json:"color" mapstructure:"color"`
}

type PlayersConfig struct {
	One string `json:"one" mapstructure:"one"`
	Two string `json:"two" mapstructure:"two"`
}

type AudioConfig struct {
	Enabled bool    `json:"enabled" mapstructure:"enabled"`
	Volume  float64 `json:"volume" mapstructure:"volume"`
}

type TunerConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// Config is the full typed configuration.
type Config struct {
	LogLevel string               `json:"logLevel" mapstructure:"logLevel"`
	LogFile  string               `json:"logFile" mapstructure:"logFile"`
	Window   WindowConfig         `json:"window" mapstructure:"window"`
	Track    TrackConfig          `json:"track" mapstructure:"track"`
	Physics  PhysicsConfig        `json:"physics" mapstructure:"physics"`
	Cars     map[string]CarConfig `json:"cars" mapstructure:"cars"`
	Players  PlayersConfig        `json:"players" mapstructure:"players"`
	Audio    AudioConfig          `json:"audio" mapstructure:"audio"`
	Tuner    TunerConfig          `json:"tuner" mapstructure:"tuner"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")

	v.SetDefault("window.width", track.DefaultWidth)
	v.SetDefault("window.height", track.DefaultHeight)
	v.SetDefault("window.title", "Racer")

	v.SetDefault("track.visual", "assets/track2_visual.png")
	v.SetDefault("track.mask", "assets/track2_mask.png")
	v.SetDefault("track.width", track.DefaultWidth)
	v.SetDefault("track.height", track.DefaultHeight)

	v.SetDefault("physics.wallStickiness", game.DefaultWallStickiness)
	v.SetDefault("physics.wallBounceFactor", game.DefaultWallBounceFactor)

	for _, s := range []game.Stats{game.SportsCar, game.Truck} {
		prefix := "cars." + s.Name + "."
		v.SetDefault(prefix+"acceleration", s.Acceleration)
		v.SetDefault(prefix+"maxSpeed", s.MaxSpeed)
		v.SetDefault(prefix+"friction", s.Friction)
		v.SetDefault(prefix+"turnRate", s.TurnRate)
		v.SetDefault(prefix+"length", s.Length)
		v.SetDefault(prefix+"width", s.Width)
		v.SetDefault(prefix+"color", FormatColor(s.Color))
	}

	v.SetDefault("players.one", game.SportsCar.Name)
	v.SetDefault("players.two", game.Truck.Name)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.6)

	v.SetDefault("tuner.enabled", true)
}

// Flags returns the command-line flags Load understands.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("racer", pflag.ContinueOnError)
	fs.String("config-dir", ".", "directory containing "+FileName)
	fs.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	fs.String("log-file", "", "also write logs to this file")
	fs.String("visual", "", "track visual image")
	fs.String("mask", "", "track collision mask image")
	fs.String("player1", "", "car preset for player one")
	fs.String("player2", "", "car preset for player two")
	fs.Bool("audio", true, "enable sound")
	fs.Bool("tuner", true, "show the terminal tuning panel")
	return fs
}

var flagKeys = map[string]string{
	"log-level": "logLevel",
	"log-file":  "logFile",
	"visual":    "track.visual",
	"mask":      "track.mask",
	"player1":   "players.one",
	"player2":   "players.two",
	"audio":     "audio.enabled",
	"tuner":     "tuner.enabled",
}

// Load reads configuration from configDir, the environment and fs. A missing
// config file is not an error; fs may be nil.
func Load(configDir string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	v.AddConfigPath(configDir)
	v.SetConfigType("json")

	v.SetEnvPrefix("RACER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Track.Width < track.MinWidth || c.Track.Height < track.MinHeight {
		return fmt.Errorf("invalid track resolution %dx%d, minimum is %dx%d",
			c.Track.Width, c.Track.Height, track.MinWidth, track.MinHeight)
	}
	for _, name := range []string{c.Players.One, c.Players.Two} {
		if _, err := c.Stats(name); err != nil {
			return err
		}
	}
	return nil
}

// Stats resolves a car preset by name.
func (c *Config) Stats(name string) (game.Stats, error) {
	key := strings.ToLower(name)
	cc, ok := c.Cars[key]
	if !ok {
		return game.Stats{}, fmt.Errorf("unknown car preset %q", name)
	}
	col, err := ParseColor(cc.Color)
	if err != nil {
		return game.Stats{}, fmt.Errorf("car preset %q: %w", name, err)
	}
	if cc.MaxSpeed <= 0 || cc.Length <= 0 || cc.Width <= 0 {
		return game.Stats{}, fmt.Errorf("car preset %q: speed and size must be positive", name)
	}
	if cc.Friction <= 0 || cc.Friction >= 1 {
		return game.Stats{}, fmt.Errorf("car preset %q: friction %.3f outside (0,1)", name, cc.Friction)
	}
	return game.Stats{
		Name:         key,
		Acceleration: cc.Acceleration,
		MaxSpeed:     cc.MaxSpeed,
		Friction:     cc.Friction,
		TurnRate:     cc.TurnRate,
		Length:       cc.Length,
		Width:        cc.Width,
		Color:        col,
	}, nil
}

// Presets returns the stats for player one and two.
func (c *Config) Presets() ([game.Players]game.Stats, error) {
	var out [game.Players]game.Stats
	for i, name := range []string{c.Players.One, c.Players.Two} {
		s, err := c.Stats(name)
		if err != nil {
			return out, err
		}
		out[i] = s
	}
	return out, nil
}

// ParseColor parses "#rrggbb".
func ParseColor(s string) (track.RGB, error) {
	var c track.RGB
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("invalid color %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

func FormatColor(c track.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
