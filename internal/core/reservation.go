package core

import (
	"context"
	"errors"

	"hotelres/internal/record"
	recordcore "hotelres/internal/record/core"
	"hotelres/pkg/domain"
)

// CustomerLookup is the existence check reservations need from customers.
type CustomerLookup interface {
	GetCustomer(ctx context.Context, id string) (domain.Customer, error)
}

// RoomInventory is the slice of the hotel service reservations consume. The
// reservation service never writes hotels except through these calls.
type RoomInventory interface {
	GetHotel(ctx context.Context, id string) (domain.Hotel, error)
	ReserveRoom(ctx context.Context, id string) error
	ReleaseRoom(ctx context.Context, id string) error
}

// ReservationService books and cancels rooms. It owns the reservations
// collection and holds foreign keys into customers and hotels.
type ReservationService struct {
	reservations *record.Collection[domain.Reservation]
	customers    CustomerLookup
	rooms        RoomInventory
	opts         options
}

// NewReservationService binds the reservations collection of backend.
func NewReservationService(backend recordcore.Backend, customers CustomerLookup, rooms RoomInventory, opts ...Option) *ReservationService {
	o := buildOptions(opts)
	return &ReservationService{
		reservations: record.NewCollection[domain.Reservation](backend, domain.CollectionReservations, o.logger),
		customers:    customers,
		rooms:        rooms,
		opts:         o,
	}
}

// CreateReservation books one room. The steps run in a fixed order: customer
// exists, hotel exists, id is unused, room is held, record is stored. A
// failure before the hold leaves availability untouched; a failed store gives
// the held room back.
func (s *ReservationService) CreateReservation(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error) {
	var created domain.Reservation
	err := s.opts.run(ctx, "reservation.create", func(ctx context.Context) error {
		reservation.ID = s.opts.assignID(reservation.ID)
		if _, err := s.customers.GetCustomer(ctx, reservation.CustomerID); err != nil {
			return referenceErr(reservation.ID, err)
		}
		if _, err := s.rooms.GetHotel(ctx, reservation.HotelID); err != nil {
			return referenceErr(reservation.ID, err)
		}
		reservations := s.reservations.Load(ctx)
		if indexReservation(reservations, reservation.ID) >= 0 {
			return domain.Conflict(domain.EntityReservation, reservation.ID, domain.ErrDuplicateID)
		}
		if err := s.rooms.ReserveRoom(ctx, reservation.HotelID); err != nil {
			return referenceErr(reservation.ID, err)
		}
		reservations = append(reservations, reservation)
		if err := s.reservations.Save(ctx, reservations); err != nil {
			if relErr := s.rooms.ReleaseRoom(ctx, reservation.HotelID); relErr != nil {
				// The hold stays until a reconcile pass repairs it.
				s.opts.logger.Error("room release failed after reservation save failure", "reservation_id", reservation.ID, "hotel_id", reservation.HotelID, "error", relErr)
			}
			return domain.Storage(domain.EntityReservation, reservation.ID, err)
		}
		created = reservation
		return nil
	})
	return created, err
}

// CancelReservation releases the held room and removes the record. The
// release is attempted even when the hotel no longer exists; its failure is
// logged and the record is removed regardless.
func (s *ReservationService) CancelReservation(ctx context.Context, id string) error {
	return s.opts.run(ctx, "reservation.cancel", func(ctx context.Context) error {
		reservations := s.reservations.Load(ctx)
		idx := indexReservation(reservations, id)
		if idx < 0 {
			return domain.NotFound(domain.EntityReservation, id)
		}
		target := reservations[idx]
		if err := s.rooms.ReleaseRoom(ctx, target.HotelID); err != nil {
			s.opts.logger.Warn("room release failed during cancellation", "reservation_id", id, "hotel_id", target.HotelID, "error", err)
		}
		reservations = append(reservations[:idx], reservations[idx+1:]...)
		if err := s.reservations.Save(ctx, reservations); err != nil {
			return domain.Storage(domain.EntityReservation, id, err)
		}
		return nil
	})
}

// GetReservation returns the reservation with id.
func (s *ReservationService) GetReservation(ctx context.Context, id string) (domain.Reservation, error) {
	var found domain.Reservation
	err := s.opts.run(ctx, "reservation.get", func(ctx context.Context) error {
		reservations := s.reservations.Load(ctx)
		idx := indexReservation(reservations, id)
		if idx < 0 {
			return domain.NotFound(domain.EntityReservation, id)
		}
		found = reservations[idx]
		return nil
	})
	return found, err
}

// ListReservations returns every stored reservation in collection order.
func (s *ReservationService) ListReservations(ctx context.Context) []domain.Reservation {
	var reservations []domain.Reservation
	_ = s.opts.run(ctx, "reservation.list", func(ctx context.Context) error {
		reservations = s.reservations.Load(ctx)
		return nil
	})
	return reservations
}

// referenceErr reports a failed collaborator call against the reservation
// while keeping the collaborator's category and entity.
func referenceErr(reservationID string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		detail := "reservation " + reservationID
		if de.Detail != "" {
			detail = de.Detail + "; " + detail
		}
		return &domain.Error{Entity: de.Entity, ID: de.ID, Err: de.Err, Detail: detail}
	}
	return err
}

func indexReservation(reservations []domain.Reservation, id string) int {
	for i := range reservations {
		if reservations[i].ID == id {
			return i
		}
	}
	return -1
}
