// Package config holds the fixed configuration surface of the server:
// simulation rate, room table shape, arena geometry and listen addresses.
// Values come from an optional XML file with flag overrides on top.
package config

import (
	"fmt"
	"time"

	"lockstep-arena/arena"
	"lockstep-arena/util"
)

// Config is the recognized option set. Defaults reproduce the reference
// deployment: 60 FPS, ten rooms of two, one second monitor interval, a
// 500x200 arena with radius-20 entities and a four color palette.
type Config struct {
	WebAddress string `xml:"web_address"` // http: websocket endpoint + status api
	KCPAddress string `xml:"kcp_address"` // native client endpoint

	FPS               int      `xml:"fps"`
	RoomNumber        int      `xml:"room_number"`
	RoomSize          int      `xml:"room_size"`
	MonitorIntervalMS int      `xml:"monitor_interval_ms"`
	ArenaWidth        int      `xml:"arena_width"`
	ArenaHeight       int      `xml:"arena_height"`
	EntityRadius      int      `xml:"entity_radius"`
	Colors            []string `xml:"colors>color"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		WebAddress:        ":10002",
		KCPAddress:        ":10086",
		FPS:               60,
		RoomNumber:        10,
		RoomSize:          2,
		MonitorIntervalMS: 1000,
		ArenaWidth:        500,
		ArenaHeight:       200,
		EntityRadius:      20,
		Colors:            []string{"red", "blue", "black", "green"},
	}
}

// Load reads an XML file over the defaults. The palette is cleared before
// decoding, since the XML decoder appends to a populated slice: a configured
// palette replaces the default, an absent one keeps it.
func Load(file string) (Config, error) {
	cfg := Default()
	cfg.Colors = nil
	if err := util.LoadConfig(file, &cfg); err != nil {
		return Default(), err
	}
	if len(cfg.Colors) == 0 {
		cfg.Colors = Default().Colors
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	case c.RoomNumber <= 0:
		return fmt.Errorf("room_number must be positive, got %d", c.RoomNumber)
	case c.RoomSize <= 0:
		return fmt.Errorf("room_size must be positive, got %d", c.RoomSize)
	case c.MonitorIntervalMS <= 0:
		return fmt.Errorf("monitor_interval_ms must be positive, got %d", c.MonitorIntervalMS)
	case len(c.Colors) == 0:
		return fmt.Errorf("color palette is empty")
	case c.ArenaWidth <= 2*c.EntityRadius || c.ArenaHeight <= 2*c.EntityRadius:
		return fmt.Errorf("arena %dx%d too small for entity radius %d",
			c.ArenaWidth, c.ArenaHeight, c.EntityRadius)
	}
	return nil
}

// MaxClients is the deployment-wide connection capacity.
func (c Config) MaxClients() int {
	return c.RoomNumber * c.RoomSize
}

// MonitorInterval is the room lifecycle sweep period.
func (c Config) MonitorInterval() time.Duration {
	return time.Duration(c.MonitorIntervalMS) * time.Millisecond
}

// Arena returns the spawn settings.
func (c Config) Arena() arena.Settings {
	return arena.Settings{
		Width:  c.ArenaWidth,
		Height: c.ArenaHeight,
		Radius: c.EntityRadius,
		Colors: c.Colors,
	}
}
