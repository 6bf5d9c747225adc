// internal/shop/types.go
//
// Wire types shared by the API client and the views. Field names mirror the
// backend's JSON; the client does not reshape responses beyond decoding.

package shop

// Plant is a catalog entry. Admin-mutable via the /admin/plants endpoints.
type Plant struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl"`
}

// PlantPage is one page of the admin paginated plant listing.
type PlantPage struct {
	Content       []Plant `json:"content"`
	TotalPages    int     `json:"totalPages"`
	TotalElements int64   `json:"totalElements"`
	Number        int     `json:"number"`
}

// CartItem is one line of the current customer's cart. Fetched fresh per
// view; mutated only through the cart endpoints.
type CartItem struct {
	CartItemID int64   `json:"cartItemId"`
	PlantName  string  `json:"plantName"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"totalPrice"`
	ImageURL   string  `json:"imageUrl"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	PlantName string  `json:"plantName"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

// Order is a placed order as returned by the order endpoints.
type Order struct {
	OrderID     int64       `json:"orderId"`
	OrderDate   string      `json:"orderDate"`
	Status      Status      `json:"status"`
	TotalAmount float64     `json:"totalAmount"`
	Items       []OrderItem `json:"items"`
}

// User is the admin-facing account record.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Enabled  bool   `json:"enabled"`
	JoinedAt string `json:"joinedAt"`
}

// UserStats is the aggregate returned by /admin/users/stats.
type UserStats struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalCustomers int64 `json:"totalCustomers"`
	TotalAdmins    int64 `json:"totalAdmins"`
	ActiveUsers    int64 `json:"activeUsers"`
}
