package models

// Tenant is a restaurant listed in the catalog.
type Tenant struct {
	ID   string
	Name string
	Logo string
	Hero string
}

// MenuItem is a purchasable catalog entry. Price is in rupiah (no minor digits).
type MenuItem struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	Image       string `json:"image,omitempty"`
}
