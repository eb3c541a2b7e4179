package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultBrand is applied when a product is created without a brand.
const DefaultBrand = "Generic"

// UncategorizedName is the category display name used when enrichment fails.
const UncategorizedName = "Uncategorized"

// Image is a single image reference (thumbnail or gallery entry).
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// StringList stores an ordered sequence of strings as JSON in a TEXT column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to encode string list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported source type %T for string list", src)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// ImageList stores an ordered image gallery as JSON in a TEXT column.
type ImageList []Image

// Value implements driver.Valuer.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *ImageList) Scan(src interface{}) error {
	if src == nil {
		*l = ImageList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported source type %T for image list", src)
	}
	if len(data) == 0 {
		*l = ImageList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Ratings holds the six fixed star buckets. Modeling them as struct fields
// rather than a map keeps the bucket set closed at the type level.
type Ratings struct {
	Stars1 int64 `json:"1" gorm:"column:rating_1;default:0"`
	Stars2 int64 `json:"2" gorm:"column:rating_2;default:0"`
	Stars3 int64 `json:"3" gorm:"column:rating_3;default:0"`
	Stars4 int64 `json:"4" gorm:"column:rating_4;default:0"`
	Stars5 int64 `json:"5" gorm:"column:rating_5;default:0"`
	Stars6 int64 `json:"6" gorm:"column:rating_6;default:0"`
}

// Bucket returns the count for a star value in [1,6], and 0 otherwise.
func (r Ratings) Bucket(stars int) int64 {
	switch stars {
	case 1:
		return r.Stars1
	case 2:
		return r.Stars2
	case 3:
		return r.Stars3
	case 4:
		return r.Stars4
	case 5:
		return r.Stars5
	case 6:
		return r.Stars6
	}
	return 0
}

// RatingColumn maps a star value in [1,6] to its database column. The second
// return is false for any other value, so callers cannot build an increment
// against a column outside the six buckets.
func RatingColumn(stars int) (string, bool) {
	if stars < 1 || stars > 6 {
		return "", false
	}
	return fmt.Sprintf("rating_%d", stars), true
}

// Product represents a product in the catalog.
type Product struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string     `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=1,max=100"`
	Description string     `json:"description" validate:"required,max=2000"`
	Price       float64    `json:"price" validate:"gte=0"`
	Stock       int        `json:"stock" validate:"gte=0"`
	Off         int        `json:"off" validate:"gte=0,lte=100"`
	Brand       string     `json:"brand" gorm:"type:varchar(100)"`
	CategoryID  string     `json:"category" gorm:"index;type:varchar(100)" validate:"required"`
	Tags        StringList `json:"tags" gorm:"type:text"`
	Features    StringList `json:"features" gorm:"type:text"`
	ExtraNote   string     `json:"extraNote,omitempty"`
	Thumbnail   Image      `json:"thumbnail" gorm:"embedded;embeddedPrefix:thumbnail_"`
	Images      ImageList  `json:"images" gorm:"type:text"`
	IsActive    bool       `json:"isActive"`
	IsPremium   bool       `json:"isPremium"`
	Ratings     Ratings    `json:"ratings" gorm:"embedded"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ProductView is the read-one representation: the stored record with the raw
// category identifier replaced by the resolved display name. The response
// only; the stored record keeps the identifier.
type ProductView struct {
	Product
	Category string `json:"category"`
}

// View builds the enriched representation of a product. The embedded
// CategoryID is cleared so its "category" JSON key does not shadow the
// resolved name.
func (p Product) View(categoryName string) ProductView {
	view := ProductView{Product: p, Category: categoryName}
	view.Product.CategoryID = ""
	return view
}

// CreateProductRequest carries the creation payload. Required fields are
// pointers so a legitimate zero value is distinguishable from a missing one.
type CreateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	Off         *int     `json:"off"`
	Brand       *string  `json:"brand"`
	Tags        []string `json:"tags"`
	Features    []string `json:"features"`
	ExtraNote   *string  `json:"extraNote"`
	Thumbnail   *Image   `json:"thumbnail"`
	Images      []Image  `json:"images"`
	IsActive    *bool    `json:"isActive"`
	IsPremium   *bool    `json:"isPremium"`
}

// UpdateProductRequest carries a partial update. Only non-nil fields are
// applied; unrecognized JSON keys are dropped during decoding.
type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Stock       *int      `json:"stock"`
	Category    *string   `json:"category"`
	Off         *int      `json:"off"`
	Brand       *string   `json:"brand"`
	Tags        *[]string `json:"tags"`
	Features    *[]string `json:"features"`
	ExtraNote   *string   `json:"extraNote"`
	Thumbnail   *Image    `json:"thumbnail"`
	Images      *[]Image  `json:"images"`
	IsActive    *bool     `json:"isActive"`
	IsPremium   *bool     `json:"isPremium"`
}

// RateProductRequest carries a single rating vote. Stars is a pointer so an
// absent value is rejected instead of being read as zero.
type RateProductRequest struct {
	Stars *int `json:"stars"`
}

// ProductFilter holds listing parameters after clamping.
type ProductFilter struct {
	Page     int
	Limit    int
	Category string
	Brand    string
	Query    string
}

// Offset returns the number of records to skip for the current page.
func (f ProductFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// ProductPage is one page of listing results plus totals.
type ProductPage struct {
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Pages    int64     `json:"pages"`
	Products []Product `json:"products"`
}
