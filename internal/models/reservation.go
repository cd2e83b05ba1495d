package models

// Reservation states. Transitions between them are not enforced.
const (
	ReservationPendingPickup = "pending_pickup"
	ReservationPaid          = "paid"
	ReservationFinished      = "finished"
	ReservationCancelled     = "cancelled"
)

// ReservationItem is one reserved product with the business fields captured at
// write time.
type ReservationItem struct {
	ProductRef Reference `json:"productRef"`
	Quantity   float64   `json:"quantity"`
	UnitPrice  float64   `json:"unitPrice"`
}

// Reservation is a customer's pickup reservation.
type Reservation struct {
	Entity
	UserID           LogicalID         `json:"userId"`
	Products         []ReservationItem `json:"products"`
	TotalAmount      float64           `json:"totalAmount"`
	PickupDate       string            `json:"pickupDate"`
	PickupTimeSlot   string            `json:"pickupTimeSlot"`
	CustomerNotes    string            `json:"customerNotes,omitempty"`
	ContactEmail     string            `json:"contactEmail"`
	PaymentMethod    *string           `json:"paymentMethod"`
	Subtotal         float64           `json:"subtotal"`
	Discount         float64           `json:"discount,omitempty"`
	State            string            `json:"state"`
	DiscountCode     string            `json:"discountCode,omitempty"`
	EcoPackaging     bool              `json:"ecoPackaging"`
	CancellationDate string            `json:"cancellationDate,omitempty"`
}

// ReservationItemInput is one element of a reservation's products list as
// received from clients. Every member is mandatory.
type ReservationItemInput struct {
	Type      *string    `json:"type" validate:"required,oneof=tea craft"`
	ID        *LogicalID `json:"id" validate:"required,notblank"`
	Quantity  *float64   `json:"quantity" validate:"required,gt=0"`
	UnitPrice *float64   `json:"unitPrice" validate:"required,gte=0"`
}

// Descriptor returns the product descriptor of the item. Call only after validation.
func (i ReservationItemInput) Descriptor() ProductDescriptor {
	return ProductDescriptor{Kind: ProductKind(deref(i.Type)), ID: derefID(i.ID)}
}

// ReservationInput is the body of reservation create and update requests.
type ReservationInput struct {
	UserID           *LogicalID              `json:"userId,omitempty" validate:"omitempty,notblank"`
	Products         *[]ReservationItemInput `json:"products,omitempty" validate:"-"`
	TotalAmount      *float64                `json:"totalAmount,omitempty" validate:"omitempty,gte=0"`
	PickupDate       *string                 `json:"pickupDate,omitempty" validate:"omitempty,ddmmyy"`
	PickupTimeSlot   *string                 `json:"pickupTimeSlot,omitempty" validate:"omitempty,timeslot"`
	CustomerNotes    *string                 `json:"customerNotes,omitempty"`
	ContactEmail     *string                 `json:"contactEmail,omitempty" validate:"omitempty,email"`
	PaymentMethod    *string                 `json:"paymentMethod,omitempty" validate:"omitempty,oneof=debit credit cash wallet"`
	Subtotal         *float64                `json:"subtotal,omitempty" validate:"omitempty,gte=0"`
	Discount         *float64                `json:"discount,omitempty" validate:"omitempty,gte=0"`
	State            *string                 `json:"state,omitempty" validate:"omitempty,oneof=pending_pickup finished cancelled paid"`
	DiscountCode     *string                 `json:"discountCode,omitempty"`
	EcoPackaging     *bool                   `json:"ecoPackaging,omitempty"`
	CancellationDate *string                 `json:"cancellationDate,omitempty" validate:"omitempty,optdate"`
}
