// Package entity holds the typed per-collection records produced at the
// repository boundary. Store rows are mapped into these immediately so
// ranking, fuzzy matching, and suggestions never inspect untyped maps.
package entity

import "time"

// Deal is a marketplace offer.
type Deal struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Merchant           string     `json:"merchant"`
	Price              float64    `json:"price"`
	OriginalPrice      float64    `json:"original_price,omitempty"`
	DiscountPercentage float64    `json:"discount_percentage"`
	CategoryID         string     `json:"category_id,omitempty"`
	CompanyID          string     `json:"company_id,omitempty"`
	HasCoupon          bool       `json:"has_coupon"`
	Featured           bool       `json:"featured"`
	Latitude           *float64   `json:"latitude,omitempty"`
	Longitude          *float64   `json:"longitude,omitempty"`
	ViewsCount         int        `json:"views_count"`
	Tags               []string   `json:"tags,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// Coupon is a voucher code.
type Coupon struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Code          string    `json:"code"`
	CouponType    string    `json:"coupon_type,omitempty"`
	DiscountValue float64   `json:"discount_value"`
	CategoryID    string    `json:"category_id,omitempty"`
	CompanyID     string    `json:"company_id,omitempty"`
	Featured      bool      `json:"featured"`
	ViewsCount    int       `json:"views_count"`
	Tags          []string  `json:"tags,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Company is a merchant organization.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug,omitempty"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// User is a member profile.
type User struct {
	ID          string    `json:"id"`
	Handle      string    `json:"username"`
	DisplayName string    `json:"display_name,omitempty"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Karma       int       `json:"karma"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category is a deal/coupon grouping.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Tag is a label attached to deals and coupons through join tables.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}
