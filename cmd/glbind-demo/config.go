// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/BurntSushi/toml"
)

type config struct {
	LogLevel slog.Level `toml:"log_level"`

	Window struct {
		Width  int    `toml:"width"`
		Height int    `toml:"height"`
		Title  string `toml:"title"`
	} `toml:"window"`

	Framebuffer struct {
		Size int `toml:"size"`
	} `toml:"framebuffer"`

	Texture struct {
		URL    string   `toml:"url"`
		Origin string   `toml:"origin"`
		Tile   [2]int   `toml:"tile"`
		Fetch  duration `toml:"fetch_timeout"`
	} `toml:"texture"`

	Clear [4]float32 `toml:"clear"`
	// Speed is the rotation speed in radians per second.
	Speed float32 `toml:"speed"`
}

// duration is a time.Duration decoded from strings such as "10s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func defaultConfig() *config {
	c := new(config)
	c.LogLevel = slog.LevelInfo
	c.Window.Width = 800
	c.Window.Height = 600
	c.Window.Title = "glbind"
	c.Framebuffer.Size = 512
	c.Texture.Tile = [2]int{1, 1}
	c.Texture.Fetch.Duration = 10 * time.Second
	c.Clear = [4]float32{0.1, 0.1, 0.1, 1}
	c.Speed = 1
	return c
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (*config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("config: unknown keys %v", undec)
	}
	if c.Framebuffer.Size <= 0 || c.Window.Width <= 0 || c.Window.Height <= 0 {
		return nil, fmt.Errorf("config: sizes must be positive")
	}
	return c, nil
}
