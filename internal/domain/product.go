package domain

// Product is the catalog view the storefront consumes. Localized text
// travels as a language-code → string mapping (uz/en/ru).
type Product struct {
	ID          string            `json:"id"`
	SKU         string            `json:"sku,omitempty"`
	Name        map[string]string `json:"name"`
	Description map[string]string `json:"description,omitempty"`
	Price       int64             `json:"price"`
	ImageURL    string            `json:"image_url"`
	Category    string            `json:"category"`
	InStock     bool              `json:"in_stock"`
}

// Name mapping falls back to Uzbek, the storefront's default language.
func (p *Product) LocalizedName(lang string) string {
	if n, ok := p.Name[lang]; ok {
		return n
	}
	return p.Name["uz"]
}
