package models

import "time"

// Slot is one of the fixed outfit categories. Top+Bottom and Set are
// mutually substitutable: an outfit is complete if it has Shoes AND
// (Set OR (Top AND Bottom)).
type Slot string

const (
	SlotTop         Slot = "Top"
	SlotBottom      Slot = "Bottom"
	SlotShoes       Slot = "Shoes"
	SlotOuterwear   Slot = "Outerwear"
	SlotAccessories Slot = "Accessories"
	SlotSet         Slot = "Set"
)

// AllSlots lists slots in their canonical order.
var AllSlots = []Slot{SlotTop, SlotBottom, SlotShoes, SlotOuterwear, SlotAccessories, SlotSet}

// OutfitComponent is one product filling one slot of an outfit.
// SimilarLinks starts empty and is filled best-effort after combination.
type OutfitComponent struct {
	Slot         Slot     `json:"slot"`
	ProductID    string   `json:"product_id"`
	ProductName  string   `json:"product_name"`
	ImageURL     string   `json:"image_url,omitempty"`
	SimilarLinks []string `json:"similar_links,omitempty"`
	Gender       Gender   `json:"gender"`
}

// Outfit is one complete, slot-valid assignment of products.
type Outfit struct {
	Components []OutfitComponent `json:"components"`
}

// OutfitSuggestion is the persisted result of one recommendation request.
// Immutable after creation.
type OutfitSuggestion struct {
	ID            int64     `json:"suggestion_id"`
	UserID        int64     `json:"user_id"`
	Outfits       []Outfit  `json:"outfits"`
	Gender        Gender    `json:"gender"`
	DateSuggested time.Time `json:"date_suggested"`
}
