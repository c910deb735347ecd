package catalog

import "github.com/sellora/saree-storefront/internal/storefront/domain"

// Normalize filters the raw records down to active ones and maps each into
// the internal Product shape.
//
// Falsy upstream fields fall back to fixed defaults: the display copy assumes
// a fully populated card, so gaps are patched here rather than at render time.
func Normalize(records []RawRecord) []domain.Product {
	products := make([]domain.Product, 0, len(records))
	for _, r := range records {
		if !r.IsActive {
			continue
		}
		products = append(products, normalizeRecord(r))
	}
	return products
}

func normalizeRecord(r RawRecord) domain.Product {
	p := domain.Product{
		ID:            r.ID,
		Name:          r.Title,
		Image:         r.Thumbnail,
		Price:         r.SellingPrice,
		OriginalPrice: r.RegulerPrice,
		OrderNumber:   r.OrderNumber,
		IsActive:      r.IsActive,
	}
	if r.Variants != nil {
		p.Color = r.Variants.Value
	}

	if p.Name == "" {
		p.Name = domain.DefaultProductName
	}
	if p.Color == "" {
		p.Color = domain.DefaultColor
	}
	if p.Image == "" {
		p.Image = domain.FallbackImagePath
	}
	if p.Price == 0 {
		p.Price = domain.DefaultPrice
	}
	if p.OriginalPrice == 0 {
		p.OriginalPrice = domain.DefaultOriginalPrice
	}
	if p.OrderNumber == 0 {
		p.OrderNumber = domain.DefaultOrderNumber
	}
	return p
}
