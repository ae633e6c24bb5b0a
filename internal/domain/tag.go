package domain

type Tag struct {
	ID     int64
	UserID int64
	Name   string
}
