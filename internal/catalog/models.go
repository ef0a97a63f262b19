package catalog

// Models mirror the upstream API's catalog payloads; the gateway passes them
// through without reshaping.

type Product struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	OriginalPrice float64        `json:"originalPrice"`
	Category      string         `json:"category"`
	IsActive      bool           `json:"isActive"`
	IsFeatured    bool           `json:"isFeatured"`
	Rating        float64        `json:"rating"`
	ReviewCount   int            `json:"reviewCount"`
	CreatedAt     string         `json:"createdAt"`
	UpdatedAt     string         `json:"updatedAt"`
	Images        []ProductImage `json:"images"`
	Promotions    []Promotion    `json:"promotions"`
}

type ProductImage struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	ImageURL  string `json:"imageUrl"`
	AltText   string `json:"altText"`
	SortOrder int    `json:"sortOrder"`
	CreatedAt string `json:"createdAt"`
}

type Promotion struct {
	ID                 string  `json:"id"`
	ProductID          string  `json:"productId"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	DiscountPercentage float64 `json:"discountPercentage"`
	IsHeroPromotion    bool    `json:"isHeroPromotion"`
	IsActive           bool    `json:"isActive"`
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}
