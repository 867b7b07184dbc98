package core

import (
	"context"

	"hotelres/internal/record"
	recordcore "hotelres/internal/record/core"
	"hotelres/pkg/domain"
)

// HotelService owns the hotels collection and its room availability counters.
// Every call re-loads the collection and rewrites it after a mutation.
type HotelService struct {
	hotels *record.Collection[domain.Hotel]
	opts   options
}

// NewHotelService binds the hotels collection of backend.
func NewHotelService(backend recordcore.Backend, opts ...Option) *HotelService {
	o := buildOptions(opts)
	return &HotelService{
		hotels: record.NewCollection[domain.Hotel](backend, domain.CollectionHotels, o.logger),
		opts:   o,
	}
}

// CreateHotel stores a new hotel with every room available. A negative room
// count is stored as zero rather than rejected. RoomsAvailable on the input is
// ignored.
func (s *HotelService) CreateHotel(ctx context.Context, hotel domain.Hotel) (domain.Hotel, error) {
	var created domain.Hotel
	err := s.opts.run(ctx, "hotel.create", func(ctx context.Context) error {
		hotel.ID = s.opts.assignID(hotel.ID)
		if hotel.Rooms < 0 {
			s.opts.logger.Warn("rooms must be a non-negative integer, defaulting to 0", "hotel_id", hotel.ID, "rooms", hotel.Rooms)
			hotel.Rooms = 0
		}
		hotel.RoomsAvailable = hotel.Rooms
		if err := domain.ValidateHotel(hotel); err != nil {
			return err
		}
		hotels := s.hotels.Load(ctx)
		if indexHotel(hotels, hotel.ID) >= 0 {
			return domain.Conflict(domain.EntityHotel, hotel.ID, domain.ErrDuplicateID)
		}
		hotels = append(hotels, hotel)
		if err := s.hotels.Save(ctx, hotels); err != nil {
			return domain.Storage(domain.EntityHotel, hotel.ID, err)
		}
		created = hotel
		return nil
	})
	return created, err
}

// GetHotel returns the hotel with id. It doubles as the existence check used
// by reservations.
func (s *HotelService) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	var found domain.Hotel
	err := s.opts.run(ctx, "hotel.get", func(ctx context.Context) error {
		hotels := s.hotels.Load(ctx)
		idx := indexHotel(hotels, id)
		if idx < 0 {
			return domain.NotFound(domain.EntityHotel, id)
		}
		found = hotels[idx]
		return nil
	})
	return found, err
}

// ListHotels returns every stored hotel in collection order.
func (s *HotelService) ListHotels(ctx context.Context) []domain.Hotel {
	var hotels []domain.Hotel
	_ = s.opts.run(ctx, "hotel.list", func(ctx context.Context) error {
		hotels = s.hotels.Load(ctx)
		return nil
	})
	return hotels
}

// UpdateHotel applies the non-nil fields of update. Either every field is
// applied or none is. Changing Rooms shifts RoomsAvailable by the same delta,
// clamped at zero; held rooms are not consulted.
func (s *HotelService) UpdateHotel(ctx context.Context, id string, update domain.HotelUpdate) (domain.Hotel, error) {
	var updated domain.Hotel
	err := s.opts.run(ctx, "hotel.update", func(ctx context.Context) error {
		hotels := s.hotels.Load(ctx)
		idx := indexHotel(hotels, id)
		if idx < 0 {
			return domain.NotFound(domain.EntityHotel, id)
		}
		if err := update.Validate(id); err != nil {
			return err
		}
		h := &hotels[idx]
		if update.Name != nil {
			h.Name = *update.Name
		}
		if update.Location != nil {
			h.Location = *update.Location
		}
		if update.Rooms != nil {
			delta := *update.Rooms - h.Rooms
			h.Rooms = *update.Rooms
			h.RoomsAvailable = max(0, h.RoomsAvailable+delta)
		}
		if err := s.hotels.Save(ctx, hotels); err != nil {
			return domain.Storage(domain.EntityHotel, id, err)
		}
		updated = *h
		return nil
	})
	return updated, err
}

// DeleteHotel removes the hotel. Reservations referencing it are left in
// place and become orphans.
func (s *HotelService) DeleteHotel(ctx context.Context, id string) error {
	return s.opts.run(ctx, "hotel.delete", func(ctx context.Context) error {
		hotels := s.hotels.Load(ctx)
		idx := indexHotel(hotels, id)
		if idx < 0 {
			return domain.NotFound(domain.EntityHotel, id)
		}
		hotels = append(hotels[:idx], hotels[idx+1:]...)
		if err := s.hotels.Save(ctx, hotels); err != nil {
			return domain.Storage(domain.EntityHotel, id, err)
		}
		return nil
	})
}

// ReserveRoom holds one room of the hotel.
func (s *HotelService) ReserveRoom(ctx context.Context, id string) error {
	return s.opts.run(ctx, "hotel.reserve_room", func(ctx context.Context) error {
		return s.adjustAvailability(ctx, id, func(h *domain.Hotel) error {
			if h.RoomsAvailable <= 0 {
				return domain.Conflict(domain.EntityHotel, id, domain.ErrNoRoomsAvailable)
			}
			h.RoomsAvailable--
			return nil
		})
	})
}

// ReleaseRoom gives back one held room of the hotel.
func (s *HotelService) ReleaseRoom(ctx context.Context, id string) error {
	return s.opts.run(ctx, "hotel.release_room", func(ctx context.Context) error {
		return s.adjustAvailability(ctx, id, func(h *domain.Hotel) error {
			if h.RoomsAvailable >= h.Rooms {
				return domain.Conflict(domain.EntityHotel, id, domain.ErrAllRoomsAvailable)
			}
			h.RoomsAvailable++
			return nil
		})
	})
}

// adjustAvailability runs one load, mutate, save cycle on a single hotel.
func (s *HotelService) adjustAvailability(ctx context.Context, id string, mutate func(*domain.Hotel) error) error {
	hotels := s.hotels.Load(ctx)
	idx := indexHotel(hotels, id)
	if idx < 0 {
		return domain.NotFound(domain.EntityHotel, id)
	}
	if err := mutate(&hotels[idx]); err != nil {
		return err
	}
	if err := s.hotels.Save(ctx, hotels); err != nil {
		return domain.Storage(domain.EntityHotel, id, err)
	}
	return nil
}

func indexHotel(hotels []domain.Hotel, id string) int {
	for i := range hotels {
		if hotels[i].ID == id {
			return i
		}
	}
	return -1
}
