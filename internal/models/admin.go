package models

import "time"

// Admin is an operator account provisioned out of band. Referral fields are free-form.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ReferralID   string    `json:"referralId"`
	ReferredID   string    `json:"referredId,omitempty"`
	MyReferrals  string    `json:"myReferrals,omitempty"`
	PhoneNumber  string    `json:"phoneNumber"`
	Bookmarks    []string  `json:"bookmarks"`
	CreatedAt    time.Time `json:"created_at"`
}
