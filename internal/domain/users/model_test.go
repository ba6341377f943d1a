package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileComplete(t *testing.T) {
	complete := User{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Address: BillingAddress{
			Street:     "Main St 1",
			City:       "London",
			PostalCode: "E1 6AN",
			Country:    "UK",
		},
	}
	assert.True(t, complete.ProfileComplete())

	missingName := complete
	missingName.FirstName = ""
	assert.False(t, missingName.ProfileComplete())

	missingCity := complete
	missingCity.Address.City = ""
	assert.False(t, missingCity.ProfileComplete())

	var empty User
	assert.False(t, empty.ProfileComplete())
}
