package httpx

type CreateSessionRequest struct {
	ViewportWidth int `json:"viewport_width"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type ViewportRequest struct {
	Width int `json:"width"`
}

type VisibilityRequest struct {
	Ratio float64 `json:"ratio"`
}

type VisibilityResponse struct {
	Fired bool `json:"fired"`
}

type HoverRequest struct {
	Entered bool `json:"entered"`
}

type GoToRequest struct {
	Index int `json:"index"`
}

type QuantityRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id"`
}

type AddToCartResponse struct {
	Accepted bool `json:"accepted"`
	InFlight bool `json:"in_flight"`
}

type ProductResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Color           string  `json:"color"`
	Image           string  `json:"image"`
	Price           float64 `json:"price"`
	OriginalPrice   float64 `json:"original_price"`
	OrderNumber     int     `json:"order_number"`
	Quantity        int     `json:"quantity"`
	InFlight        bool    `json:"in_flight"`
	DiscountPercent int     `json:"discount_percent,omitempty"`
	SaveAmount      float64 `json:"save_amount,omitempty"`
}

type CarouselResponse struct {
	CurrentIndex int  `json:"current_index"`
	PageSize     int  `json:"page_size"`
	MaxIndex     int  `json:"max_index"`
	Dots         int  `json:"dots"`
	Suspended    bool `json:"suspended"`
}

type SectionResponse struct {
	Loading   bool              `json:"loading"`
	Error     string            `json:"error,omitempty"`
	Empty     bool              `json:"empty"`
	Products  []ProductResponse `json:"products"`
	Carousel  CarouselResponse  `json:"carousel"`
	CartCount int               `json:"cart_count"`
	ScrollTo  string            `json:"scroll_to,omitempty"`
}

type CartItemResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Color       string  `json:"color"`
	Image       string  `json:"image"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
