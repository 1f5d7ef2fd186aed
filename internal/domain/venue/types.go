package venue

type PricingModel string

const (
	PricingHourly PricingModel = "hourly"
	PricingDaily  PricingModel = "daily"
)

func (m PricingModel) String() string {
	return string(m)
}

func (m PricingModel) IsValid() bool {
	switch m {
	case PricingHourly, PricingDaily:
		return true
	default:
		return false
	}
}
