// Package domain defines the core business types shared by the poemarket
// clients.
package domain

import "time"

// Language selects which localized trade API host a request is sent to.
type Language string

// Supported trade site languages.
const (
	LanguageEnglish            Language = "en"
	LanguageGerman             Language = "de"
	LanguageFrench             Language = "fr"
	LanguageSpanish            Language = "es"
	LanguageKorean             Language = "ko"
	LanguagePortuguese         Language = "pt"
	LanguageRussian            Language = "ru"
	LanguageThai               Language = "th"
	LanguageSimplifiedChinese  Language = "zh-CN"
	LanguageTraditionalChinese Language = "zh-TW"
)

// IndexedRange restricts trade search results to listings indexed within the
// given window. The zero value means no restriction.
type IndexedRange string

// Indexed range constants as accepted by the trade API.
const (
	IndexedAnyTime  IndexedRange = ""
	IndexedUpTo1Day IndexedRange = "1day"
	IndexedUpTo3Day IndexedRange = "3days"
	IndexedUpTo1Wk  IndexedRange = "1week"
	IndexedUpTo2Wk  IndexedRange = "2weeks"
	IndexedUpTo1Mo  IndexedRange = "1month"
	IndexedUpTo2Mo  IndexedRange = "2months"
)

// Currency describes one trade currency as referenced by listing prices.
type Currency struct {
	ID       string `json:"id"`
	NameType string `json:"nameType"`
	Image    string `json:"image,omitempty"`
}

// ItemRarity is the rarity frame of an item.
type ItemRarity string

// Item rarities.
const (
	RarityNormal   ItemRarity = "normal"
	RarityMagic    ItemRarity = "magic"
	RarityRare     ItemRarity = "rare"
	RarityUnique   ItemRarity = "unique"
	RarityCurrency ItemRarity = "currency"
	RarityGem      ItemRarity = "gem"
	RarityCard     ItemRarity = "divinationcard"
)

// Item is the caller-supplied description of what to search for. The search
// layer does not interpret it; translation into trade API filter terms is the
// query mapper's job.
type Item struct {
	Rarity    ItemRarity `json:"rarity,omitempty"`
	NameID    string     `json:"nameId,omitempty"`
	Name      string     `json:"name,omitempty"`
	TypeID    string     `json:"typeId,omitempty"`
	Type      string     `json:"type,omitempty"`
	Corrupted *bool      `json:"corrupted,omitempty"`
}

// SearchResult identifies a submitted trade search. The ID references a
// server-side result set that the trade API expires after a while; fetching
// against an expired ID fails like any other fetch.
type SearchResult struct {
	ID       string   `json:"id"`
	Language Language `json:"language"`
	URL      string   `json:"url"`
	Total    int      `json:"total"`
	Hits     []string `json:"hits"`
}

// Listing is one seller's validated offer. Every field is guaranteed present:
// listings that fail validation are dropped, never emitted partially filled.
type Listing struct {
	Seller   string    `json:"seller"`
	Indexed  time.Time `json:"indexed"`
	Age      string    `json:"age"`
	Currency Currency  `json:"currency"`
	Amount   float64   `json:"amount"`
}
