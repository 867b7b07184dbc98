// Package domain defines the persisted entities, partial-update shapes and
// error taxonomy shared by the hotelres services.
package domain

// EntityType identifies the type of record stored in a collection.
type EntityType string

// Supported entity type identifiers used in errors and collection names.
const (
	// EntityCustomer identifies a customer record.
	EntityCustomer EntityType = "customer"
	// EntityHotel identifies a hotel record.
	EntityHotel EntityType = "hotel"
	// EntityReservation identifies a reservation record.
	EntityReservation EntityType = "reservation"
)

// Collection names used by the record store backends.
const (
	CollectionCustomers    = "customers"
	CollectionHotels       = "hotels"
	CollectionReservations = "reservations"
)

// Customer is a person able to hold reservations.
type Customer struct {
	ID    string `json:"customer_id"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,contains=@"`
}

// Hotel tracks its total capacity and the rooms not currently held by a
// reservation. 0 <= RoomsAvailable <= Rooms.
type Hotel struct {
	ID             string `json:"hotel_id"`
	Name           string `json:"name" validate:"required"`
	Location       string `json:"location"`
	Rooms          int    `json:"rooms" validate:"min=0"`
	RoomsAvailable int    `json:"rooms_available" validate:"min=0"`
}

// Held reports how many rooms are currently held by reservations.
func (h Hotel) Held() int {
	return h.Rooms - h.RoomsAvailable
}

// Reservation links a customer to one held room of a hotel. Reservations are
// immutable; the only transition is cancellation.
type Reservation struct {
	ID         string `json:"reservation_id"`
	CustomerID string `json:"customer_id"`
	HotelID    string `json:"hotel_id"`
}

// CustomerUpdate enumerates the customer fields that may be changed. Nil
// fields are left untouched.
type CustomerUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// HotelUpdate enumerates the hotel fields that may be changed. Changing Rooms
// shifts RoomsAvailable by the same delta, clamped at zero.
type HotelUpdate struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
	Rooms    *int    `json:"rooms,omitempty"`
}
