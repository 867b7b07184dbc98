package core

import recordcore "hotelres/internal/record/core"

// Services bundles the services sharing one backend.
type Services struct {
	Customers    *CustomerService
	Hotels       *HotelService
	Reservations *ReservationService
	Reconcile    *ReconcileService
}

// NewServices wires every service onto backend with the same options.
func NewServices(backend recordcore.Backend, opts ...Option) *Services {
	customers := NewCustomerService(backend, opts...)
	hotels := NewHotelService(backend, opts...)
	reservations := NewReservationService(backend, customers, hotels, opts...)
	return &Services{
		Customers:    customers,
		Hotels:       hotels,
		Reservations: reservations,
		Reconcile:    NewReconcileService(hotels, customers, reservations, opts...),
	}
}
