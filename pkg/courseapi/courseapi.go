// Package courseapi provides a typed Go client for the course platform
// admin API.
//
// The client wraps every REST operation the platform exposes (category,
// course, module, video, product, and enrollment management plus the
// admin dashboard endpoints) in one typed method per operation. All
// business rules, validation, and persistence live on the server; the
// client attaches credentials, decodes responses, and checks that what
// came back matches the documented schema.
//
// Quick start:
//
//	client := courseapi.NewClient("https://api.example.com/api",
//	    courseapi.WithTokenSource(courseapi.StaticToken(token)),
//	)
//
//	courses, err := client.ListCourses(ctx)
//	if err != nil {
//	    var apiErr *courseapi.APIError
//	    if errors.As(err, &apiErr) {
//	        fmt.Printf("server rejected the request: %s\n", apiErr.Message)
//	    }
//	}
package courseapi

import (
	"encoding/json"
	"time"
)

// RoleAdmin is the role required to use the admin surface. The platform
// has exactly one authorization tier: accounts with any other role are
// treated as not logged in.
const RoleAdmin = "ADMIN"

// Enrollment status values accepted by UpdateEnrollmentStatus.
const (
	EnrollmentPending  = "PENDING"
	EnrollmentApproved = "APPROVED"
	EnrollmentRejected = "REJECTED"
)

// Identity is the account returned by the auth endpoints and carried in
// the local session.
type Identity struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name" validate:"required"`
	Email string `json:"email" yaml:"email" validate:"required,email"`
	Role  string `json:"role" yaml:"role" validate:"required"`
}

// Ref is a relational reference to another entity. The server populates
// references inconsistently: sometimes a full document, sometimes a bare
// ID string, sometimes null. Ref normalizes all three at the decoding
// boundary so absence is explicit (Valid=false) instead of propagating
// as missing fields.
type Ref struct {
	ID    string
	Name  string
	Valid bool
}

// UnmarshalJSON accepts null, a bare ID string, or a populated document
// with _id/id and name/title fields.
func (r *Ref) UnmarshalJSON(data []byte) error {
	*r = Ref{}

	if string(data) == "null" {
		return nil
	}

	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		r.Valid = id != ""
		return nil
	}

	var doc struct {
		ID    string `json:"_id"`
		AltID string `json:"id"`
		Name  string `json:"name"`
		Title string `json:"title"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	r.ID = doc.ID
	if r.ID == "" {
		r.ID = doc.AltID
	}
	r.Name = doc.Name
	if r.Name == "" {
		r.Name = doc.Title
	}
	if r.Name == "" {
		r.Name = doc.Email
	}
	r.Valid = r.ID != "" || r.Name != ""
	return nil
}

// MarshalJSON emits the reference as a bare ID string, or null when the
// reference is not set.
func (r Ref) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// Category groups courses for navigation.
type Category struct {
	ID          string `json:"_id" yaml:"id" validate:"required"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description" yaml:"description"`
}

// Course is a sellable course. Category may be unset for courses created
// before categorization existed.
type Course struct {
	ID          string  `json:"_id" yaml:"id" validate:"required"`
	Title       string  `json:"title" yaml:"title" validate:"required"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price" validate:"gte=0"`
	IsFree      bool    `json:"isFree" yaml:"isFree"`
	IsPublished bool    `json:"isPublished" yaml:"isPublished"`
	Category    Ref     `json:"category" yaml:"category"`
}

// Module is a section of a course.
type Module struct {
	ID          string `json:"_id" yaml:"id" validate:"required"`
	Title       string `json:"title" yaml:"title" validate:"required"`
	Description string `json:"description" yaml:"description"`
	IsPublished bool   `json:"isPublished" yaml:"isPublished"`
	Course      Ref    `json:"course" yaml:"course"`
}

// Video is a lecture video inside a module.
type Video struct {
	ID          string `json:"_id" yaml:"id" validate:"required"`
	Title       string `json:"title" yaml:"title" validate:"required"`
	Description string `json:"description" yaml:"description"`
	VideoURL    string `json:"videoUrl" yaml:"videoUrl" validate:"omitempty,url"`
	Course      Ref    `json:"course" yaml:"course"`
	Module      Ref    `json:"module" yaml:"module"`
}

// Product is a standalone digital product.
type Product struct {
	ID          string  `json:"_id" yaml:"id" validate:"required"`
	Name        string  `json:"name" yaml:"name" validate:"required"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price" validate:"gte=0"`
	FileURL     string  `json:"fileUrl" yaml:"fileUrl"`
	Sales       int     `json:"sales" yaml:"sales"`
	Stock       int     `json:"stock" yaml:"stock"`
}

// Enrollment links a user to a course with an approval status.
type Enrollment struct {
	ID     string `json:"_id" yaml:"id" validate:"required"`
	User   Ref    `json:"user" yaml:"user"`
	Course Ref    `json:"course" yaml:"course"`
	Status string `json:"status" yaml:"status" validate:"required"`
}

// Order is a purchase record.
type Order struct {
	ID          string    `json:"_id" yaml:"id" validate:"required"`
	User        Ref       `json:"user" yaml:"user"`
	Products    []Ref     `json:"products" yaml:"products"`
	TotalAmount float64   `json:"totalAmount" yaml:"totalAmount"`
	Status      string    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

// User is a platform account as the admin listing endpoints return it.
type User struct {
	ID                string    `json:"_id" yaml:"id" validate:"required"`
	Name              string    `json:"name" yaml:"name" validate:"required"`
	Email             string    `json:"email" yaml:"email" validate:"required"`
	Role              string    `json:"role" yaml:"role"`
	Status            string    `json:"status" yaml:"status"`
	EnrolledCourses   []Ref     `json:"enrolledCourses" yaml:"enrolledCourses"`
	PurchasedProducts []Ref     `json:"purchasedProducts" yaml:"purchasedProducts"`
	CreatedAt         time.Time `json:"createdAt" yaml:"createdAt"`
}

// DashboardStats is the aggregate summary for the dashboard view.
type DashboardStats struct {
	TotalUsers    int     `json:"totalUsers" yaml:"totalUsers"`
	TotalOrders   int     `json:"totalOrders" yaml:"totalOrders"`
	TotalCourses  int     `json:"totalCourses" yaml:"totalCourses"`
	TotalProducts int     `json:"totalProducts" yaml:"totalProducts"`
	TotalRevenue  float64 `json:"totalRevenue" yaml:"totalRevenue"`
}

// StatPoint is one point in a server-computed stat series (per-course
// enrollment counts, per-product sales, and similar).
type StatPoint struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}
