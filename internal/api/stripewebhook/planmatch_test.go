package stripewebhooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v75"
)

func TestResolvePlan(t *testing.T) {
	tests := []struct {
		name         string
		metadata     map[string]string
		price        *stripe.Price
		wantPlan     string
		wantCycle    string
		wantNickname bool
	}{
		{
			name:     "subscription metadata wins",
			metadata: map[string]string{"planName": "BASE", "billingCycle": "monthly"},
			price: &stripe.Price{
				Metadata: map[string]string{"planName": "EXTRA", "billingCycle": "yearly"},
				Nickname: "Extra Yearly",
			},
			wantPlan:  "BASE",
			wantCycle: "monthly",
		},
		{
			name:      "price metadata fills the gaps",
			metadata:  map[string]string{"planName": "BASE"},
			price:     &stripe.Price{Metadata: map[string]string{"billingCycle": "yearly"}},
			wantPlan:  "BASE",
			wantCycle: "yearly",
		},
		{
			name:         "nickname fallback",
			price:        &stripe.Price{Nickname: "Extra Plan Monthly"},
			wantPlan:     "EXTRA",
			wantCycle:    "monthly",
			wantNickname: true,
		},
		{
			name:         "nickname fallback yearly base",
			price:        &stripe.Price{Nickname: "base (yearly)"},
			wantPlan:     "BASE",
			wantCycle:    "yearly",
			wantNickname: true,
		},
		{
			name:         "nickname fills only the missing part",
			metadata:     map[string]string{"planName": "EXTRA"},
			price:        &stripe.Price{Nickname: "billed per month"},
			wantPlan:     "EXTRA",
			wantCycle:    "monthly",
			wantNickname: true,
		},
		{
			name:  "nothing resolvable",
			price: &stripe.Price{Nickname: "Legacy Tier"},
		},
		{
			name: "nil price without metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, cycle, fromNickname := resolvePlan(tt.metadata, tt.price)
			assert.Equal(t, tt.wantPlan, plan)
			assert.Equal(t, tt.wantCycle, cycle)
			assert.Equal(t, tt.wantNickname, fromNickname)
		})
	}
}
