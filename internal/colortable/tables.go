package colortable

// RGB is a single 8-bit color triple
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Table is a calibrated enhancement table for one infrared channel:
// temperatures (degrees Celsius, strictly ascending) index-aligned with the
// colors the renderer paints them.
type Table struct {
	Temperatures []float64
	Colors       []RGB
}

// ChannelKind distinguishes reflective from emissive ABI bands
type ChannelKind string

const (
	KindVisible  ChannelKind = "visible"
	KindInfrared ChannelKind = "infrared"
)

// Channel describes one ABI band
type Channel struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Kind  ChannelKind `json:"kind"`
	Table *Table      `json:"-"`
}

// Shortwave window enhancement (band 7)
var tableC07 = &Table{
	Temperatures: []float64{
		-83, -78, -73, -68, -63, -58, -53, -48, -43, -42, -38,
		-33, -28, -23, -18, -13, -8, -3, 2, 7, 13, 17, 22, 27,
		32, 38, 42, 47, 52, 57, 62, 67, 72, 77, 82, 87, 92, 97,
		102, 107, 112, 117, 122, 127,
	},
	Colors: []RGB{
		{122, 122, 122}, {101, 101, 101}, {79, 79, 79}, {58, 58, 58}, {35, 35, 35},
		{70, 0, 0}, {252, 0, 0}, {255, 149, 0}, {201, 255, 0}, {172, 255, 0},
		{0, 249, 3}, {0, 2, 114}, {0, 166, 206}, {186, 186, 186}, {177, 177, 177},
		{167, 167, 167}, {156, 156, 156}, {145, 145, 145}, {135, 135, 135}, {125, 125, 125},
		{112, 112, 112}, {103, 103, 103}, {91, 91, 91}, {80, 80, 80}, {69, 69, 69},
		{56, 56, 56}, {53, 53, 53}, {49, 49, 49}, {46, 46, 46}, {44, 44, 44},
		{40, 40, 40}, {37, 37, 37}, {34, 34, 34}, {31, 31, 31}, {27, 27, 27},
		{24, 24, 24}, {21, 21, 21}, {17, 17, 17}, {14, 14, 14}, {11, 11, 11},
		{8, 8, 8}, {5, 5, 5}, {2, 2, 2}, {0, 0, 0},
	},
}

// Water vapor enhancement, shared by bands 8-10
var tableWaterVapor = &Table{
	Temperatures: []float64{
		-93, -88, -83, -78, -73, -68, -63, -58, -54, -53, -48, -43,
		-38, -33, -30, -28, -23, -18, -13, -8, -5, -3, 2, 7,
	},
	Colors: []RGB{
		{9, 239, 227}, {26, 207, 170}, {43, 176, 114}, {61, 144, 57}, {77, 137, 47},
		{100, 152, 73}, {122, 167, 99}, {145, 182, 126}, {164, 194, 148}, {170, 200, 156},
		{206, 223, 198}, {243, 248, 241}, {224, 224, 238}, {169, 169, 207}, {137, 137, 190},
		{92, 92, 166}, {21, 21, 105}, {199, 199, 25}, {255, 216, 0}, {255, 149, 0},
		{255, 109, 0}, {255, 81, 0}, {255, 9, 0}, {0, 0, 0},
	},
}

// Longwave window enhancement, shared by bands 11-16
var tableLongwave = &Table{
	Temperatures: []float64{
		-110, -105, -100, -95, -90, -85, -80, -75, -70, -65, -60, -59,
		-55, -50, -45, -40, -35, -30, -25, -20, -15, -10, -5, 0, 5, 6,
		10, 15, 20, 25, 30, 31, 35, 40, 45, 50, 55, 57,
	},
	Colors: []RGB{
		{255, 255, 255}, {255, 255, 255}, {255, 255, 255}, {187, 187, 187}, {103, 103, 103},
		{8, 11, 11}, {104, 0, 0}, {223, 0, 0}, {255, 79, 0}, {255, 184, 0},
		{219, 255, 0}, {199, 255, 0}, {67, 255, 0}, {0, 144, 50}, {0, 9, 120},
		{0, 149, 197}, {199, 186, 186}, {182, 182, 182}, {176, 176, 176}, {168, 168, 168},
		{157, 157, 157}, {146, 146, 146}, {136, 136, 136}, {125, 125, 125}, {114, 114, 114},
		{113, 113, 113}, {103, 103, 103}, {92, 92, 92}, {80, 80, 80}, {69, 69, 69},
		{58, 58, 58}, {55, 55, 55}, {48, 48, 48}, {37, 37, 37}, {28, 28, 28},
		{18, 18, 18}, {9, 9, 9}, {5, 5, 5},
	},
}

var channels = map[string]*Channel{
	"C01": {ID: "C01", Name: "Blue", Kind: KindVisible},
	"C02": {ID: "C02", Name: "Red", Kind: KindVisible},
	"C03": {ID: "C03", Name: "Veggie", Kind: KindVisible},
	"C04": {ID: "C04", Name: "Cirrus", Kind: KindVisible},
	"C05": {ID: "C05", Name: "Snow/Ice", Kind: KindVisible},
	"C06": {ID: "C06", Name: "Cloud Particle Size", Kind: KindVisible},
	"C07": {ID: "C07", Name: "Shortwave Window", Kind: KindInfrared, Table: tableC07},
	"C08": {ID: "C08", Name: "Upper-Level Water Vapor", Kind: KindInfrared, Table: tableWaterVapor},
	"C09": {ID: "C09", Name: "Mid-Level Water Vapor", Kind: KindInfrared, Table: tableWaterVapor},
	"C10": {ID: "C10", Name: "Lower-Level Water Vapor", Kind: KindInfrared, Table: tableWaterVapor},
	"C11": {ID: "C11", Name: "Cloud-Top Phase", Kind: KindInfrared, Table: tableLongwave},
	"C12": {ID: "C12", Name: "Ozone", Kind: KindInfrared, Table: tableLongwave},
	"C13": {ID: "C13", Name: "Clean Longwave Window", Kind: KindInfrared, Table: tableLongwave},
	"C14": {ID: "C14", Name: "Longwave Window", Kind: KindInfrared, Table: tableLongwave},
	"C15": {ID: "C15", Name: "Dirty Longwave Window", Kind: KindInfrared, Table: tableLongwave},
	"C16": {ID: "C16", Name: "CO2 Longwave", Kind: KindInfrared, Table: tableLongwave},
}

// LookupChannel returns the channel descriptor for an ABI band identifier,
// or nil if the identifier is unknown.
func LookupChannel(id string) *Channel {
	return channels[id]
}

// IsInfrared reports whether the identifier names an emissive band with a
// calibrated enhancement table.
func IsInfrared(id string) bool {
	ch := channels[id]
	return ch != nil && ch.Kind == KindInfrared
}
