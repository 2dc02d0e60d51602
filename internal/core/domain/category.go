package domain

// CategoryKind separates expense categories from income categories.
type CategoryKind string

const (
	ExpenseCategory CategoryKind = "EXPENSE"
	IncomeCategory  CategoryKind = "INCOME"
)

// IsValid reports whether k is a known category kind.
func (k CategoryKind) IsValid() bool {
	return k == ExpenseCategory || k == IncomeCategory
}

// Category labels expenses and incomes. A category with an empty UserID is a
// read-only shared default seeded at startup; user categories layer on top.
type Category struct {
	CategoryID string       `json:"categoryID"`
	UserID     string       `json:"userID,omitempty"` // empty for seeded defaults
	Name       string       `json:"name"`
	Kind       CategoryKind `json:"kind"`
	AuditFields
}

// IsDefault reports whether the category is one of the seeded shared defaults.
func (c Category) IsDefault() bool {
	return c.UserID == ""
}
