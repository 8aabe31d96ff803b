package dto

// CartUpdateRequest replaces the stored cart. Keys are product ids.
type CartUpdateRequest struct {
	CartItems map[string]int64 `json:"cartItems"`
}

// CartResponse wraps the stored cart.
type CartResponse struct {
	Response
	CartItems map[string]int64 `json:"cartItems"`
}
