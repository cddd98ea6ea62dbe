package model

import "time"

// MaxCategoryNameLength is the longest name a category may carry.
const MaxCategoryNameLength = 50

// Category represents a spending or income category.
type Category struct {
	CreatedAt   time.Time
	Name        string
	Description string
	ID          int
}
