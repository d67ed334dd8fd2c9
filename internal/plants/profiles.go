package plants

import "fmt"

// Range is an ideal min/max band with display units.
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

// String renders "2-3 L/week", or "1 L/week" when Min == Max.
func (r Range) String() string {
	if r.Min == r.Max {
		return fmt.Sprintf("%g %s", r.Min, r.Unit)
	}
	return fmt.Sprintf("%g-%g %s", r.Min, r.Max, r.Unit)
}

// Contains reports whether v lies inside the band, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Profile is the static care reference for a plant kind.
type Profile struct {
	Type        Type   `json:"type"`
	Name        string `json:"name"`
	WaterNeeds  Range  `json:"water_needs"`
	Temperature Range  `json:"temperature"`
	Humidity    Range  `json:"humidity"`
}

const (
	unitWater = "L/week"
	unitTemp  = "°C"
	unitPct   = "%"
)

func profile(t Type, name string, water, temp, hum [2]float64) Profile {
	return Profile{
		Type:        t,
		Name:        name,
		WaterNeeds:  Range{Min: water[0], Max: water[1], Unit: unitWater},
		Temperature: Range{Min: temp[0], Max: temp[1], Unit: unitTemp},
		Humidity:    Range{Min: hum[0], Max: hum[1], Unit: unitPct},
	}
}

// profileTable is read-only after init.
var profileTable = map[Type]Profile{
	TypeTomato:   profile(TypeTomato, "Tomato", [2]float64{2, 3}, [2]float64{18, 25}, [2]float64{60, 80}),
	TypeLettuce:  profile(TypeLettuce, "Lettuce", [2]float64{1, 1.5}, [2]float64{15, 20}, [2]float64{70, 85}),
	TypeBasil:    profile(TypeBasil, "Basil", [2]float64{1.5, 2}, [2]float64{20, 25}, [2]float64{65, 75}),
	TypePepper:   profile(TypePepper, "Pepper", [2]float64{2, 2.5}, [2]float64{20, 28}, [2]float64{60, 70}),
	TypeZucchini: profile(TypeZucchini, "Zucchini", [2]float64{2.5, 3}, [2]float64{18, 24}, [2]float64{65, 75}),
	TypeRadish:   profile(TypeRadish, "Radish", [2]float64{1, 1}, [2]float64{10, 18}, [2]float64{70, 80}),
	TypeCarrot:   profile(TypeCarrot, "Carrot", [2]float64{1.5, 1.5}, [2]float64{15, 21}, [2]float64{65, 75}),
	TypeSpinach:  profile(TypeSpinach, "Spinach", [2]float64{1.5, 2}, [2]float64{12, 18}, [2]float64{70, 85}),
	TypeParsley:  profile(TypeParsley, "Parsley", [2]float64{1, 1}, [2]float64{15, 22}, [2]float64{65, 75}),
	TypeMint:     profile(TypeMint, "Mint", [2]float64{2, 2}, [2]float64{18, 24}, [2]float64{70, 80}),
	TypeThyme:    profile(TypeThyme, "Thyme", [2]float64{0.5, 0.5}, [2]float64{20, 30}, [2]float64{40, 60}),
}

// DefaultType is the profile used for unknown kinds and when no plant
// is active.
const DefaultType = TypeTomato

// ProfileFor returns the profile for t. Unknown types yield the default
// profile; found reports whether t was recognized.
func ProfileFor(t Type) (p Profile, found bool) {
	if canon, ok := Canonical(t); ok {
		if p, ok := profileTable[canon]; ok {
			return p, true
		}
	}
	return profileTable[DefaultType], false
}

// DefaultProfile returns the fallback profile.
func DefaultProfile() Profile {
	return profileTable[DefaultType]
}
