// Package product defines the four Vasp Technologies products and the
// keyword scans that find them in a user utterance.
package product

// ID is the canonical identifier of a product. The string value is the token
// searched for in normalized text and the value written to the product_name slot.
type ID string

const (
	Ednect     ID = "ednect"     // school ERP, established
	Desalite   ID = "desalite"   // school ERP, modern UI
	TransTrack ID = "transtrack" // transport management
	IceBox     ID = "icebox"     // cold storage management
)

// Industry groups products by the market they serve.
type Industry string

const (
	IndustryEducation   Industry = "education"
	IndustryLogistics   Industry = "logistics"
	IndustryWarehousing Industry = "warehousing"
)

// Contact numbers. School ERPs share one sales line, the logistics products another.
const (
	SchoolPhone    = "+91 7099020876"
	LogisticsPhone = "+91 8811047292"
)

// Info is the static description of a product.
type Info struct {
	ID          ID
	DisplayName string
	FullName    string
	Industry    Industry
	Phone       string
}

// canonical is the detection priority order. FirstMention and MentionSet
// iteration both follow it.
var canonical = [...]Info{
	{ID: Ednect, DisplayName: "Ednect", FullName: "Ednect", Industry: IndustryEducation, Phone: SchoolPhone},
	{ID: Desalite, DisplayName: "Desalite", FullName: "Desalite Connect", Industry: IndustryEducation, Phone: SchoolPhone},
	{ID: TransTrack, DisplayName: "TransTrack", FullName: "TransTrack", Industry: IndustryLogistics, Phone: LogisticsPhone},
	{ID: IceBox, DisplayName: "IceBox", FullName: "IceBox", Industry: IndustryWarehousing, Phone: LogisticsPhone},
}

// All returns every product in detection priority order.
func All() []Info {
	out := make([]Info, len(canonical))
	copy(out, canonical[:])
	return out
}

// IDs returns every product identifier in detection priority order.
func IDs() []ID {
	out := make([]ID, len(canonical))
	for i, p := range canonical {
		out[i] = p.ID
	}
	return out
}

// Lookup returns the static info for id.
func Lookup(id ID) (Info, bool) {
	if i := id.index(); i >= 0 {
		return canonical[i], true
	}
	return Info{}, false
}

// Parse converts a raw slot value into an ID.
func Parse(s string) (ID, bool) {
	id := ID(s)
	return id, id.Valid()
}

// Valid reports whether id is one of the four known products.
func (id ID) Valid() bool {
	return id.index() >= 0
}

// DisplayName returns the short human name, or the raw identifier when unknown.
func (id ID) DisplayName() string {
	if info, ok := Lookup(id); ok {
		return info.DisplayName
	}
	return string(id)
}

func (id ID) String() string {
	return string(id)
}

func (id ID) index() int {
	for i, p := range canonical {
		if p.ID == id {
			return i
		}
	}
	return -1
}
