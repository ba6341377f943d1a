package users

type AddressDTO struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type UserDTO struct {
	UID          string     `json:"uid"`
	Email        string     `json:"email"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Phone        *string    `json:"phone,omitempty"`
	Company      *string    `json:"company,omitempty"`
	VATNumber    *string    `json:"vatNumber,omitempty"`
	Address      AddressDTO `json:"address"`
	Role         string     `json:"role"`
	AuthProvider string     `json:"authProvider"`
	IsVerified   bool       `json:"isVerified"`
}

type MeResponse struct {
	User            UserDTO `json:"user"`
	ProfileComplete bool    `json:"profileComplete"`
}
