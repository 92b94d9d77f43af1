// This file defines the core data structures (models) for our application.
// They mirror the JSON shapes the backend API exchanges with us; the admin
// server itself persists nothing.

package models

// Category groups books. Referenced by Book via category_id.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Book is a catalog entry. Stock is mutated server-side by order
// placement and stock returns, never by this layer.
type Book struct {
	ID          int64    `json:"id"`
	Barcode     string   `json:"barcode"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	Translator  string   `json:"translator"`
	PublishYear int      `json:"publish_year"`
	Cost        int64    `json:"cost"`
	Price       int64    `json:"price"`
	Stock       int      `json:"stock"`
	Category    Category `json:"category"`
	Cover       string   `json:"cover,omitempty"`
}

// BookPage is the backend's pagination envelope for book lists.
type BookPage struct {
	Data        []Book `json:"data"`
	CurrentPage int    `json:"current_page"`
	LastPage    int    `json:"last_page"`
	PerPage     int    `json:"per_page"`
	Total       int    `json:"total"`
}

// OrderItem is one line of an order, priced at the moment of sale.
type OrderItem struct {
	ID          int64  `json:"id"`
	BookID      int64  `json:"book_id"`
	BookName    string `json:"book_name,omitempty"`
	PriceAtSale int64  `json:"price"`
	Quantity    int    `json:"quantity"`
}

// Order statuses as the backend reports them.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

// Order is a point-of-sale transaction. Paid may be less than Total
// ("paid later" orders).
type Order struct {
	ID                  int64       `json:"id"`
	CustomerName        string      `json:"customer_name"`
	CustomerPhoneNumber string      `json:"customer_phone_number"`
	Status              string      `json:"status"`
	Total               int64       `json:"total"`
	Paid                int64       `json:"paid"`
	Items               []OrderItem `json:"items"`
	CreatedAt           string      `json:"created_at,omitempty"`
}

// OrderPage is the backend's pagination envelope for order lists.
type OrderPage struct {
	Data        []Order `json:"data"`
	CurrentPage int     `json:"current_page"`
	LastPage    int     `json:"last_page"`
	PerPage     int     `json:"per_page"`
	Total       int     `json:"total"`
}

// CategoryStock is a dashboard aggregate entry.
type CategoryStock struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	BooksCount int    `json:"books_count"`
}

// Report is the read-only dashboard snapshot from /api/admin/reports/index.
type Report struct {
	BooksAddedRecently  int             `json:"books_added_in_last_2_weeks"`
	CategoriesWithStock []CategoryStock `json:"categories_with_most_books_in_stock"`
	OrdersToday         int             `json:"orders_today"`
	OrdersCompleted     int             `json:"orders_completed_today"`
	TotalBooks          int             `json:"total_books"`
	TotalCategories     int             `json:"total_categories"`
}

// Income is the /api/admin/reports/income aggregate for a date range.
type Income struct {
	Total     int64 `json:"total"`
	Paid      int64 `json:"paid"`
	AmountDue int64 `json:"amount_due"`
}
