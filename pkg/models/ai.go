package models

// ParsedOrderItem is one line extracted from free text by the AI parser.
type ParsedOrderItem struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit,omitempty"`
}

type ParsedOrder struct {
	Items           []ParsedOrderItem `json:"items"`
	CustomerName    *string           `json:"customer_name"`
	DeliveryAddress *string           `json:"delivery_address"`
	Notes           *string           `json:"notes"`
	Error           string            `json:"error,omitempty"`
}

type GSTInfo struct {
	GSTRate     float64 `json:"gst_rate"`
	HSNCode     *string `json:"hsn_code"`
	Category    string  `json:"category,omitempty"`
	Explanation string  `json:"explanation,omitempty"`
}

type OptimizedRoute struct {
	Sequence            []string `json:"sequence"`
	EstimatedDistanceKM float64  `json:"estimated_distance_km"`
	Insight             string   `json:"insight,omitempty"`
}

type InventoryInsights struct {
	Alert          *string `json:"alert"`
	Insight        string  `json:"insight"`
	Recommendation string  `json:"recommendation"`
}
