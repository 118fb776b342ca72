package api

// Types in this package mirror the storefront backend's JSON contracts.
// The backend wraps every successful response body in {"data": ...}; the
// client unwraps the envelope before returning.

// User is a storefront customer account. Read-only from the dashboard.
type User struct {
	UserID       int    `json:"userId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	MobileNumber string `json:"mobileNumber"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar,omitempty"`
}

// Category is a product category. Full CRUD from the dashboard.
type Category struct {
	CategoryID   int    `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// ProductImage is one entry of a product's ordered image sub-collection.
type ProductImage struct {
	ImageID  int    `json:"imageId"`
	ImageURL string `json:"imageUrl"`
}

type Product struct {
	ProductID    int            `json:"productId"`
	ProductName  string         `json:"productName"`
	Description  string         `json:"description"`
	Stock        int            `json:"stock"`
	Price        float64        `json:"price"`
	Discount     float64        `json:"discount"`
	RealPrice    float64        `json:"realPrice,omitempty"`
	CategoryID   int            `json:"categoryId"`
	CategoryName string         `json:"categoryName,omitempty"`
	Images       []ProductImage `json:"images,omitempty"`
	ImageURL     string         `json:"imageUrl,omitempty"`
}

type Address struct {
	Street   string `json:"street"`
	District string `json:"district"`
	City     string `json:"city"`
}

type Payment struct {
	PaymentMethod string `json:"paymentMethod"`
}

type OrderItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type Order struct {
	OrderID       int         `json:"orderId"`
	OrderDate     string      `json:"orderDate"`
	TotalAmount   float64     `json:"totalAmount"`
	OrderStatus   string      `json:"orderStatus"`
	PaymentStatus string      `json:"paymentStatus"`
	Address       Address     `json:"address"`
	Payment       Payment     `json:"payment"`
	OrderItems    []OrderItem `json:"orderItems"`
	User          User        `json:"user"`
}

// UserPage is one page of the admin user listing.
type UserPage struct {
	Users      []User `json:"users"`
	TotalPages int    `json:"totalPages"`
}

type ProductPage struct {
	Products   []Product `json:"products"`
	TotalPages int       `json:"totalPages"`
}

type OrderPage struct {
	Orders     []Order `json:"orders"`
	TotalPages int     `json:"totalPages"`
}

// LoginResult is the body of a successful /auth/login call.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Stats feeds the dashboard overview cards.
type Stats struct {
	TotalUsers    int     `json:"totalUsers"`
	TotalOrders   int     `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalProducts int     `json:"totalProducts"`
}
