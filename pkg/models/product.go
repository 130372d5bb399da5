package models

// CatalogProduct is one item from the external product search result.
// CategoryLabel is free text (e.g. "Jean", "Boots") and may be empty, in
// which case it must be inferred before categorization. Gender may likewise
// be empty until inferred.
type CatalogProduct struct {
	ID            string  `json:"product_id"`
	Name          string  `json:"product_name"`
	CategoryLabel string  `json:"category_label,omitempty"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	Gender        Gender  `json:"gender,omitempty"`
	ImageURL      string  `json:"image_url,omitempty"`
	SourceURL     string  `json:"source_url,omitempty"`
}
