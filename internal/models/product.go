package models

// TeaProduct is a product stored in the teasProducts collection.
type TeaProduct struct {
	Entity
	Name        string  `json:"name"`
	Brand       string  `json:"brand,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// TeaProductInput is the body of tea product create and update requests.
type TeaProductInput struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,notblank"`
	Brand       *string  `json:"brand,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
}

// CraftProduct is a product stored in the craftProducts collection.
type CraftProduct struct {
	Entity
	Name         string  `json:"name"`
	BrandArtist  string  `json:"brandArtist"`
	CreationDate string  `json:"creationDate"`
	Description  string  `json:"description"`
	EcoFriendly  bool    `json:"ecoFriendly"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
}

// CraftProductInput is the body of craft product create and update requests.
type CraftProductInput struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,notblank"`
	BrandArtist  *string  `json:"brandArtist,omitempty" validate:"omitempty,notblank"`
	CreationDate *string  `json:"creationDate,omitempty" validate:"omitempty,ddmmyy"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,notblank"`
	EcoFriendly  *bool    `json:"ecoFriendly,omitempty"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock        *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
}
