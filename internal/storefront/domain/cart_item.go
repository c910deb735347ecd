package domain

// CartItem is a point-in-time snapshot of a product selection. Once built it
// is independent of the Product it came from; later catalog refetches never
// change lines already in the cart.
type CartItem struct {
	ProductID   string
	ProductName string
	Color       string
	Image       string
	Quantity    int
	Price       float64
}

// NewCartItem snapshots the product with the quantity chosen by the visitor.
func NewCartItem(p Product, quantity int) CartItem {
	return CartItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Color:       p.Color,
		Image:       p.Image,
		Quantity:    quantity,
		Price:       p.Price,
	}
}
