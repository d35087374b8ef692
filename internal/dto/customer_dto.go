package dto

type CreateCustomerRequest struct {
	Name    string  `json:"name"    validate:"required,min=1"`
	Phone   *string `json:"phone"   validate:"omitempty,max=30"`
	Address *string `json:"address"`
}

type CustomerResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	CreatedAt string  `json:"created_at"`
}
