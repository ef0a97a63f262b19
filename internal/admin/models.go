package admin

// Back-office payloads, passed through to the upstream API unchanged.

type ProductInput struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	Category      string  `json:"category"`
	IsActive      bool    `json:"isActive"`
	IsFeatured    bool    `json:"isFeatured"`
}

type PromotionInput struct {
	ProductID          string  `json:"productId"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	DiscountPercentage float64 `json:"discountPercentage"`
	IsHeroPromotion    bool    `json:"isHeroPromotion"`
	IsActive           bool    `json:"isActive"`
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
}

type Material struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	TotalCost float64 `json:"total_cost"`
	Supplier  string  `json:"supplier,omitempty"`
}

type MaterialInput struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Supplier  string  `json:"supplier,omitempty"`
}

type FinancialEntry struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

type FinancialEntryInput struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

type DashboardSummary struct {
	TotalProducts    int     `json:"totalProducts"`
	ActivePromotions int     `json:"activePromotions"`
	MonthlyRevenue   float64 `json:"monthlyRevenue"`
	LowStockItems    int     `json:"lowStockItems"`
}
