package models

// ProductKind is the type tag of a product descriptor.
type ProductKind string

const (
	KindTea   ProductKind = "tea"
	KindCraft ProductKind = "craft"
)

// ProductDescriptor names a product the way clients do: by kind and id.
type ProductDescriptor struct {
	Kind ProductKind
	ID   LogicalID
}

// Reference is a resolved pointer to a product document, embedded in offers and
// reservations.
type Reference struct {
	Collection string      `json:"collection"`
	ID         LogicalID   `json:"id"`
	Kind       ProductKind `json:"type"`
}

// ProductDescriptorInput is one element of an offer's applicableTo list as
// received from clients.
type ProductDescriptorInput struct {
	Type *string    `json:"type" validate:"required,oneof=tea craft"`
	ID   *LogicalID `json:"id" validate:"required,notblank"`
}

// Descriptor returns the validated descriptor. Call only after validation.
func (p ProductDescriptorInput) Descriptor() ProductDescriptor {
	return ProductDescriptor{Kind: ProductKind(deref(p.Type)), ID: derefID(p.ID)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefID(id *LogicalID) LogicalID {
	if id == nil {
		return LogicalID{}
	}
	return *id
}
