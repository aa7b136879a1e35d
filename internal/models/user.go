package models

import "time"

// User is a catalog account. Bookmarks hold drug names in insertion order.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Bookmarks    []string  `json:"bookmarks"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasBookmark reports whether drugName is bookmarked. Matching is exact and case-sensitive.
func (u User) HasBookmark(drugName string) bool {
	for _, b := range u.Bookmarks {
		if b == drugName {
			return true
		}
	}
	return false
}
