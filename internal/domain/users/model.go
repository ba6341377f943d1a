package users

import (
	"time"
)

// BillingAddress is embedded into the user row; the profile form treats it
// as a single optional block.
type BillingAddress struct {
	Street     string `gorm:"column:address_street" json:"street"`
	City       string `gorm:"column:address_city" json:"city"`
	PostalCode string `gorm:"column:address_postal_code" json:"postalCode"`
	Country    string `gorm:"column:address_country" json:"country"`
}

type User struct {
	UID       string `gorm:"primaryKey;column:uid" json:"uid"`
	Email     string `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	VATNumber string `gorm:"column:vat_number" json:"vatNumber,omitempty"`

	Address BillingAddress `gorm:"embedded" json:"address"`

	Password     *string `json:"-"`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'" json:"-"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub" json:"-"`
	Role         string  `json:"role"`
	IsVerified   bool    `json:"isVerified"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileComplete reports whether the billing profile carries everything
// checkout needs: both names and a full address.
func (u *User) ProfileComplete() bool {
	if u == nil {
		return false
	}
	return u.FirstName != "" &&
		u.LastName != "" &&
		u.Address.Street != "" &&
		u.Address.City != "" &&
		u.Address.PostalCode != "" &&
		u.Address.Country != ""
}
