package handler

// --- Request types ---

type createSweetRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price"    validate:"required,gt=0"`
	Quantity int64   `json:"quantity" validate:"gte=0"`
}

// updateSweetRequest carries a partial update: absent fields keep their
// stored values, so every field is a pointer.
type updateSweetRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"    validate:"omitempty,gt=0"`
	Quantity *int64   `json:"quantity" validate:"omitempty,gte=0"`
}

// stockRequest is the body of purchase and restock calls. A missing or zero
// quantity means one unit; a negative quantity is rejected at validation.
type stockRequest struct {
	Quantity int64 `json:"quantity" validate:"gte=0"`
}

type messageResponse struct {
	Message string `json:"message"`
}
