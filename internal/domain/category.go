package domain

// Category groups a user's tasks. Color is a "#RRGGBB" string.
type Category struct {
	ID     int64
	UserID int64
	Name   string
	Color  string
}
