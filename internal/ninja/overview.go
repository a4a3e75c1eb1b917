package ninja

import "fmt"

// ItemOverviewType is an item category of the poe.ninja item overview API.
type ItemOverviewType string

// Item overview categories.
const (
	TypeProphecy        ItemOverviewType = "Prophecy"
	TypeDivinationCard  ItemOverviewType = "DivinationCard"
	TypeWatchstone      ItemOverviewType = "Watchstone"
	TypeIncubator       ItemOverviewType = "Incubator"
	TypeEssence         ItemOverviewType = "Essence"
	TypeOil             ItemOverviewType = "Oil"
	TypeResonator       ItemOverviewType = "Resonator"
	TypeUniqueJewel     ItemOverviewType = "UniqueJewel"
	TypeUniqueFlask     ItemOverviewType = "UniqueFlask"
	TypeUniqueWeapon    ItemOverviewType = "UniqueWeapon"
	TypeUniqueArmour    ItemOverviewType = "UniqueArmour"
	TypeUniqueAccessory ItemOverviewType = "UniqueAccessory"
	TypeBeast           ItemOverviewType = "Beast"
	TypeFossil          ItemOverviewType = "Fossil"
	TypeMap             ItemOverviewType = "Map"
	TypeUniqueMap       ItemOverviewType = "UniqueMap"
)

// pathByType maps a category to its site path segment. The segments mirror
// the live site, misspellings included.
var pathByType = map[ItemOverviewType]string{
	TypeProphecy:        "prophecies",
	TypeDivinationCard:  "divinationcards",
	TypeWatchstone:      "watchstones",
	TypeIncubator:       "incubators",
	TypeEssence:         "essences",
	TypeOil:             "oils",
	TypeResonator:       "resonators",
	TypeUniqueJewel:     "unique-jewels",
	TypeUniqueFlask:     "unique-flaks",
	TypeUniqueWeapon:    "unique-weapons",
	TypeUniqueArmour:    "unique-armours",
	TypeUniqueAccessory: "unique-accessories",
	TypeBeast:           "beats",
	TypeFossil:          "fossils",
	TypeMap:             "maps",
	TypeUniqueMap:       "unique-maps",
}

// Types returns every known overview category.
func Types() []ItemOverviewType {
	return []ItemOverviewType{
		TypeProphecy, TypeDivinationCard, TypeWatchstone, TypeIncubator,
		TypeEssence, TypeOil, TypeResonator, TypeUniqueJewel,
		TypeUniqueFlask, TypeUniqueWeapon, TypeUniqueArmour,
		TypeUniqueAccessory, TypeBeast, TypeFossil, TypeMap, TypeUniqueMap,
	}
}

// ParseType converts an API type string into an ItemOverviewType.
func ParseType(s string) (ItemOverviewType, error) {
	t := ItemOverviewType(s)
	if _, ok := pathByType[t]; !ok {
		return "", fmt.Errorf("unknown item overview type %q", s)
	}
	return t, nil
}

// PathSegment returns the site path segment for the category.
func (t ItemOverviewType) PathSegment() string {
	return pathByType[t]
}

// OverviewLine is one price line of an item overview.
type OverviewLine struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	BaseType      string  `json:"baseType,omitempty"`
	MapTier       int     `json:"mapTier,omitempty"`
	StackSize     int     `json:"stackSize,omitempty"`
	Links         int     `json:"links,omitempty"`
	ItemClass     int     `json:"itemClass,omitempty"`
	ChaosValue    float64 `json:"chaosValue"`
	ExaltedValue  float64 `json:"exaltedValue"`
	Count         int     `json:"count"`
	ListingCount  int     `json:"listingCount"`
	DetailsID     string  `json:"detailsId"`
	Icon          string  `json:"icon,omitempty"`
	FlavourText   string  `json:"flavourText,omitempty"`
	Corrupted     bool    `json:"corrupted,omitempty"`
	GemLevel      int     `json:"gemLevel,omitempty"`
	GemQuality    int     `json:"gemQuality,omitempty"`
	LevelRequired int     `json:"levelRequired,omitempty"`
	Variant       string  `json:"variant,omitempty"`
}

// Overview is a normalized item overview snapshot. URL points at the matching
// page on the overview site and is derived from the category, never taken
// from the response.
type Overview struct {
	Lines []OverviewLine `json:"lines"`
	URL   string         `json:"url"`
}
