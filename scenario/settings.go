// Package scenario loads a YAML-described demo scenario: RNG seed,
// landscape dimensions, terrain edits, and initial unit placements, for
// driving a Coordinator headlessly from the CLI.
package scenario

import (
	"io/ioutil"

	yaml "gopkg.in/yaml.v2"

	"github.com/popsim/popcore/coordinator"
	"github.com/popsim/popcore/unit"
)

// TerrainEdit stamps a rectangular block of heightmap cells to Height, for
// scripting water (height 0) without hand-authoring a full heightmap.
// Heightmap applies only Height; TerrainType is parsed but not applied.
type TerrainEdit struct {
	X0          int    `yaml:"x0"`
	Z0          int    `yaml:"z0"`
	X1          int    `yaml:"x1"`
	Z1          int    `yaml:"z1"`
	TerrainType uint8  `yaml:"terrain_type"`
	Height      uint16 `yaml:"height"`
}

// UnitPlacement is one unit's starting location and type, as authored in
// the scenario file.
type UnitPlacement struct {
	Subtype    uint8  `yaml:"subtype"`
	TribeIndex uint8  `yaml:"tribe"`
	LocX       int32  `yaml:"x"`
	LocY       int32  `yaml:"y"`
	Angle      uint16 `yaml:"angle"`
}

// Settings is the YAML-loadable root of a demo scenario, analogous to
// sample/solomesh.Settings for the navmesh builder: one struct carrying
// every tunable a headless run needs.
type Settings struct {
	Seed          uint32          `yaml:"seed"`
	LandscapeSize int             `yaml:"landscape_size"`
	DefaultHeight uint16          `yaml:"default_height"`
	TerrainEdits  []TerrainEdit   `yaml:"terrain_edits"`
	Units         []UnitPlacement `yaml:"units"`
	Ticks         int             `yaml:"ticks"`
}

// NewSettings returns a Settings struct filled with default values: a
// 128x128 all-land landscape, the original binary's fixed RNG seed, no
// units, no terrain edits, and a single tick.
func NewSettings() Settings {
	return Settings{
		Seed:          0x1234,
		LandscapeSize: 128,
		DefaultHeight: 1,
		Ticks:         1,
	}
}

// LoadSettings reads and parses a scenario file in YAML format.
func LoadSettings(path string) (Settings, error) {
	s := NewSettings()
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(buf, &s); err != nil {
		return s, err
	}
	return s, nil
}

// Heightmap materializes the scenario's terrain edits over a uniform
// DefaultHeight base, in the [128][128]uint16 layout LoadLevel expects.
func (s Settings) Heightmap() [128][128]uint16 {
	var height [128][128]uint16
	for y := range height {
		for x := range height[y] {
			height[y][x] = s.DefaultHeight
		}
	}
	for _, e := range s.TerrainEdits {
		for z := e.Z0; z <= e.Z1 && z < 128; z++ {
			if z < 0 {
				continue
			}
			for x := e.X0; x <= e.X1 && x < 128; x++ {
				if x < 0 {
					continue
				}
				height[z][x] = e.Height
			}
		}
	}
	return height
}

// UnitsRaw converts the scenario's unit placements into the raw records
// Coordinator.LoadLevel expects.
func (s Settings) UnitsRaw() []coordinator.UnitRaw {
	raws := make([]coordinator.UnitRaw, len(s.Units))
	for i, u := range s.Units {
		raws[i] = coordinator.UnitRaw{
			ModelType:  unit.ModelPerson,
			Subtype:    u.Subtype,
			TribeIndex: u.TribeIndex,
			LocX:       u.LocX,
			LocY:       u.LocY,
			Angle:      u.Angle,
		}
	}
	return raws
}

// NewCoordinator builds and loads a Coordinator from the scenario's
// terrain and unit placements, seeded with the scenario's RNG seed.
func (s Settings) NewCoordinator() *coordinator.Coordinator {
	c := coordinator.New()
	c.RNG = unit.NewGameRng(s.Seed)
	c.LoadLevel(s.UnitsRaw(), s.Heightmap(), s.LandscapeSize)
	return c
}
