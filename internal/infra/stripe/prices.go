package stripe

import (
	"strings"

	"villma-portal/config"
)

// PriceTable maps (plan name, billing cycle) to a Stripe price id. It is
// built once from the environment and injected where needed, so nothing
// else has to read env vars to resolve a plan.
type PriceTable struct {
	ids map[string]string
}

func NewPriceTable() *PriceTable {
	return &PriceTable{ids: map[string]string{
		"BASE_MONTHLY":  config.STRIPE_BASE_MONTHLY_PRICE_ID,
		"BASE_YEARLY":   config.STRIPE_BASE_YEARLY_PRICE_ID,
		"EXTRA_MONTHLY": config.STRIPE_EXTRA_MONTHLY_PRICE_ID,
		"EXTRA_YEARLY":  config.STRIPE_EXTRA_YEARLY_PRICE_ID,
	}}
}

// NewPriceTableFrom builds a table from explicit ids, keyed
// "PLAN_CYCLE" in upper case.
func NewPriceTableFrom(ids map[string]string) *PriceTable {
	table := make(map[string]string, len(ids))
	for k, v := range ids {
		table[strings.ToUpper(k)] = v
	}
	return &PriceTable{ids: table}
}

// PriceID resolves a plan/cycle pair. Unknown pairs return ("", false),
// never an error; callers decide whether that is a 400 or a skip.
func (t *PriceTable) PriceID(planName, billingCycle string) (string, bool) {
	key := strings.ToUpper(strings.TrimSpace(planName)) + "_" + strings.ToUpper(strings.TrimSpace(billingCycle))
	id, ok := t.ids[key]
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
