package models

// Category represents a category row. An empty user_id marks a shared
// seeded default.
type Category struct {
	CategoryID string `db:"category_id"`
	UserID     string `db:"user_id"`
	Name       string `db:"name"`
	Kind       string `db:"kind"`
	AuditFields
}
