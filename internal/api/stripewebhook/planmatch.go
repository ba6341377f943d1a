package stripewebhooks

import (
	"strings"

	"villma-portal/internal/domain/plans"

	"github.com/stripe/stripe-go/v75"
)

// resolvePlan extracts plan name and billing cycle for a new subscription.
// Priority: subscription metadata, then price metadata, then fuzzy matching
// on the price nickname. The nickname path is a best-effort fallback, not a
// guaranteed-correct one; fromNickname lets the caller log it as degraded.
func resolvePlan(metadata map[string]string, price *stripe.Price) (planName, billingCycle string, fromNickname bool) {
	if metadata != nil {
		planName = metadata["planName"]
		billingCycle = metadata["billingCycle"]
	}
	if planName != "" && billingCycle != "" {
		return planName, billingCycle, false
	}

	if price == nil {
		return planName, billingCycle, false
	}

	if price.Metadata != nil {
		if planName == "" {
			planName = price.Metadata["planName"]
		}
		if billingCycle == "" {
			billingCycle = price.Metadata["billingCycle"]
		}
	}

	if price.Nickname != "" {
		nickname := strings.ToLower(price.Nickname)
		if strings.Contains(nickname, "base") {
			planName = plans.NameBase
			fromNickname = true
		} else if strings.Contains(nickname, "extra") {
			planName = plans.NameExtra
			fromNickname = true
		}

		if strings.Contains(nickname, "month") {
			billingCycle = plans.CycleMonthly
			fromNickname = true
		} else if strings.Contains(nickname, "year") {
			billingCycle = plans.CycleYearly
			fromNickname = true
		}
	}

	return planName, billingCycle, fromNickname
}
