package colortable

// ReferenceColor maps a representative composite color to its meaning
type ReferenceColor struct {
	Color       RGB    `json:"color"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Product describes one RGB composite and its reference colors. Day and
// Night hold interpretations that only apply under that illumination;
// General applies at any time. Lookup concatenates all three.
type Product struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Day     []ReferenceColor `json:"day,omitempty"`
	Night   []ReferenceColor `json:"night,omitempty"`
	General []ReferenceColor `json:"general,omitempty"`
}

var products = map[string]*Product{
	"airmass": {
		ID:   "airmass",
		Name: "Airmass RGB",
		General: []ReferenceColor{
			{RGB{160, 60, 150}, "Stratospheric intrusion", "High potential vorticity air with ozone-rich descent"},
			{RGB{200, 80, 60}, "Dry descending air", "Warm, dry upper-level air behind a front"},
			{RGB{90, 160, 80}, "Moist tropical air", "Warm airmass with high moisture content"},
			{RGB{70, 90, 170}, "Cold airmass", "Polar air with low tropopause"},
			{RGB{235, 235, 235}, "Thick high cloud", "Deep convection or frontal cloud shield"},
		},
	},
	"dust": {
		ID:   "dust",
		Name: "Dust RGB",
		General: []ReferenceColor{
			{RGB{200, 60, 200}, "Airborne dust", "Elevated dust or sand plume"},
			{RGB{120, 30, 80}, "Dry surface", "Bare desert surface, no lofted dust"},
			{RGB{200, 150, 60}, "Thin cirrus", "Semi-transparent ice cloud"},
			{RGB{150, 40, 40}, "Thick mid-level cloud", "Opaque water cloud at mid levels"},
			{RGB{40, 25, 90}, "Thick ice cloud", "Cold, opaque cloud top"},
		},
	},
	"daycloudphase": {
		ID:   "daycloudphase",
		Name: "Day Cloud Phase Distinction RGB",
		Day: []ReferenceColor{
			{RGB{60, 200, 60}, "Low water cloud", "Warm liquid-phase cloud near the surface"},
			{RGB{200, 170, 50}, "Supercooled water cloud", "Liquid droplets below freezing"},
			{RGB{220, 60, 60}, "Thick ice cloud", "Glaciated cloud top, likely deep convection"},
			{RGB{50, 60, 200}, "Thin ice cloud", "Cirrus or anvil edge"},
			{RGB{30, 30, 30}, "Clear sky (land)", "Cloud-free land surface"},
		},
		Night: []ReferenceColor{
			{RGB{90, 90, 90}, "Clear sky", "Cloud-free surface after dark"},
			{RGB{180, 180, 200}, "Low cloud or fog", "Nighttime stratus deck"},
		},
	},
	"firetemperature": {
		ID:   "firetemperature",
		Name: "Fire Temperature RGB",
		Day: []ReferenceColor{
			{RGB{255, 60, 30}, "Warm fire", "Fire pixel near the low end of detection"},
			{RGB{255, 200, 40}, "Hot fire", "Vigorous fire front"},
			{RGB{255, 255, 255}, "Extremely hot fire", "Saturated fire pixel, intense combustion"},
		},
		General: []ReferenceColor{
			{RGB{40, 80, 140}, "Cloud", "Water or ice cloud masking the surface"},
			{RGB{30, 60, 30}, "Vegetated surface", "Cloud-free vegetation, no fire"},
		},
	},
}

// LookupProduct returns the RGB composite descriptor or nil if unknown
func LookupProduct(id string) *Product {
	return products[id]
}
