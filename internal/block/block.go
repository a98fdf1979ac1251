package block

// Material identifies the contents of a single voxel. The zero value is Air,
// so a freshly allocated chunk is all air without further initialization.
type Material uint8

const (
	Air Material = iota
	FreshWater
	SaltWater

	// Surface and subsurface dressing.
	Grass
	Dirt
	Sand
	Gravel
	Clay
	RedClay
	GrayClay

	// Geological strata.
	Limestone
	Sandstone
	Slate
	Stone
	Granite
	Basalt

	// Ores, each bound to one host rock.
	CopperOre
	TinOre
	IronOre
	CoalOre

	// Placed by the structure and vegetation passes.
	Cobblestone
	Log
	Leaves
	Cactus

	materialCount
)

var names = [...]string{
	Air:         "air",
	FreshWater:  "fresh_water",
	SaltWater:   "salt_water",
	Grass:       "grass",
	Dirt:        "dirt",
	Sand:        "sand",
	Gravel:      "gravel",
	Clay:        "clay",
	RedClay:     "red_clay",
	GrayClay:    "gray_clay",
	Limestone:   "limestone",
	Sandstone:   "sandstone",
	Slate:       "slate",
	Stone:       "stone",
	Granite:     "granite",
	Basalt:      "basalt",
	CopperOre:   "copper_ore",
	TinOre:      "tin_ore",
	IronOre:     "iron_ore",
	CoalOre:     "coal_ore",
	Cobblestone: "cobblestone",
	Log:         "log",
	Leaves:      "leaves",
	Cactus:      "cactus",
}

func (m Material) String() string {
	if int(m) < len(names) {
		return names[m]
	}
	return "unknown"
}

// Valid reports whether m is a defined material identifier.
func (m Material) Valid() bool {
	return m < materialCount
}

// IsWater reports whether the material is a fluid cell.
func (m Material) IsWater() bool {
	return m == FreshWater || m == SaltWater
}

// IsSolid reports whether the material blocks movement and supports
// structures. Air and water are not solid.
func (m Material) IsSolid() bool {
	return m != Air && !m.IsWater()
}
