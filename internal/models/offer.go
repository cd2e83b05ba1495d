package models

// Offer states.
const (
	OfferActive   = "active"
	OfferInactive = "inactive"
	OfferExpired  = "expired"
)

// Offer is a promotion applicable to a list of products.
type Offer struct {
	Entity
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	ApplicableTo    []Reference `json:"applicableTo"`
	MinimumPurchase float64     `json:"minimumPurchase"`
	IsLimited       bool        `json:"isLimited"`
	Limit           *int        `json:"limit,omitempty"`
	State           string      `json:"state"`
	PromotionalCode string      `json:"promotionalCode"`
	StartDate       string      `json:"startDate"`
	EndDate         string      `json:"endDate"`
}

// OfferInput is the body of offer create and update requests. ApplicableTo is
// validated element by element, not through tags.
type OfferInput struct {
	Title           *string                   `json:"title,omitempty" validate:"omitempty,trimmin=5"`
	Description     *string                   `json:"description,omitempty" validate:"omitempty,notblank"`
	ApplicableTo    *[]ProductDescriptorInput `json:"applicableTo,omitempty" validate:"-"`
	MinimumPurchase *float64                  `json:"minimumPurchase,omitempty" validate:"omitempty,gte=0"`
	IsLimited       *bool                     `json:"isLimited,omitempty"`
	Limit           *int                      `json:"limit,omitempty"`
	State           *string                   `json:"state,omitempty" validate:"omitempty,oneof=active inactive expired"`
	PromotionalCode *string                   `json:"promotionalCode,omitempty" validate:"omitempty,trimmin=3"`
	StartDate       *string                   `json:"startDate,omitempty" validate:"omitempty,ddmmyy"`
	EndDate         *string                   `json:"endDate,omitempty" validate:"omitempty,ddmmyy"`
}
