package dto

import "github.com/virebo/lanthandel/internal/domain/model"

// AddressRequest carries a new delivery address.
type AddressRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// AddressPayload is the stored address shape returned to the UI.
type AddressPayload struct {
	ID string `json:"id"`
	AddressRequest
}

// AddressResponse wraps a single created address.
type AddressResponse struct {
	Response
	Address *AddressPayload `json:"address,omitempty"`
}

// AddressListResponse wraps the customer's stored addresses.
type AddressListResponse struct {
	Response
	Addresses []AddressPayload `json:"addresses"`
}

// ToModel maps the request to a domain address.
func (r *AddressRequest) ToModel() *model.Address {
	return &model.Address{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Street:    r.Street,
		City:      r.City,
		State:     r.State,
		Zipcode:   r.Zipcode,
		Country:   r.Country,
		Phone:     r.Phone,
	}
}

// NewAddressPayload maps a stored address to its UI shape.
func NewAddressPayload(a *model.Address) *AddressPayload {
	return &AddressPayload{
		ID: a.ID.String(),
		AddressRequest: AddressRequest{
			FirstName: a.FirstName,
			LastName:  a.LastName,
			Email:     a.Email,
			Street:    a.Street,
			City:      a.City,
			State:     a.State,
			Zipcode:   a.Zipcode,
			Country:   a.Country,
			Phone:     a.Phone,
		},
	}
}
