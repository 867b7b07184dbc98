package core

import (
	"context"
	"sort"

	"hotelres/pkg/domain"
)

// HotelDrift describes a hotel whose held rooms disagree with its live
// reservations.
type HotelDrift struct {
	HotelID    string `json:"hotel_id"`
	Rooms      int    `json:"rooms"`
	Available  int    `json:"rooms_available"`
	Held       int    `json:"held"`
	Live       int    `json:"live_reservations"`
	Expected   int    `json:"expected_available"`
	Overbooked bool   `json:"overbooked"`
	Repaired   bool   `json:"repaired"`
}

// Orphan is a reservation whose hotel or customer no longer exists.
type Orphan struct {
	Reservation     domain.Reservation `json:"reservation"`
	MissingHotel    bool               `json:"missing_hotel"`
	MissingCustomer bool               `json:"missing_customer"`
}

// Report is the outcome of a reconciliation pass.
type Report struct {
	Hotels       int          `json:"hotels"`
	Reservations int          `json:"reservations"`
	Drift        []HotelDrift `json:"drift"`
	Orphans      []Orphan     `json:"orphans"`
}

// Consistent reports whether the pass found nothing to fix or flag.
func (r Report) Consistent() bool { return len(r.Drift) == 0 && len(r.Orphans) == 0 }

// ReconcileService compares hotel availability with the live reservations.
// Creating or cancelling a reservation spans two collections without a
// shared commit, so a crash or failed save between them leaves a room held
// without a record or a record without a hold. A pass detects that drift and
// can rewrite availability from the reservations, which are authoritative.
type ReconcileService struct {
	hotels       *HotelService
	customers    *CustomerService
	reservations *ReservationService
	opts         options
}

// NewReconcileService builds a reconciler over the three services.
func NewReconcileService(hotels *HotelService, customers *CustomerService, reservations *ReservationService, opts ...Option) *ReconcileService {
	return &ReconcileService{hotels: hotels, customers: customers, reservations: reservations, opts: buildOptions(opts)}
}

// Audit reports drift and orphans without writing anything.
func (s *ReconcileService) Audit(ctx context.Context) (Report, error) {
	var report Report
	err := s.opts.run(ctx, "reconcile.audit", func(ctx context.Context) error {
		report, _ = s.inspect(ctx)
		return nil
	})
	return report, err
}

// Repair sets rooms_available = clamp(rooms - live, 0, rooms) on every
// drifted hotel and saves the hotels collection once. Orphans are reported
// but never deleted.
func (s *ReconcileService) Repair(ctx context.Context) (Report, error) {
	var report Report
	err := s.opts.run(ctx, "reconcile.repair", func(ctx context.Context) error {
		var hotels []domain.Hotel
		report, hotels = s.inspect(ctx)
		if len(report.Drift) == 0 {
			return nil
		}
		byID := make(map[string]int, len(hotels))
		for i := range hotels {
			byID[hotels[i].ID] = i
		}
		for i := range report.Drift {
			d := &report.Drift[i]
			hotels[byID[d.HotelID]].RoomsAvailable = d.Expected
			d.Repaired = true
		}
		if err := s.hotels.hotels.Save(ctx, hotels); err != nil {
			for i := range report.Drift {
				report.Drift[i].Repaired = false
			}
			return domain.Storage(domain.EntityHotel, "", err)
		}
		s.opts.logger.Info("availability repaired", "hotels", len(report.Drift))
		return nil
	})
	return report, err
}

func (s *ReconcileService) inspect(ctx context.Context) (Report, []domain.Hotel) {
	hotels := s.hotels.hotels.Load(ctx)
	customers := s.customers.customers.Load(ctx)
	reservations := s.reservations.reservations.Load(ctx)

	live := make(map[string]int, len(hotels))
	knownHotel := make(map[string]bool, len(hotels))
	for _, h := range hotels {
		knownHotel[h.ID] = true
	}
	knownCustomer := make(map[string]bool, len(customers))
	for _, c := range customers {
		knownCustomer[c.ID] = true
	}

	report := Report{Hotels: len(hotels), Reservations: len(reservations)}
	for _, r := range reservations {
		missingHotel := !knownHotel[r.HotelID]
		missingCustomer := !knownCustomer[r.CustomerID]
		if missingHotel || missingCustomer {
			report.Orphans = append(report.Orphans, Orphan{Reservation: r, MissingHotel: missingHotel, MissingCustomer: missingCustomer})
		}
		if !missingHotel {
			live[r.HotelID]++
		}
	}
	for _, h := range hotels {
		n := live[h.ID]
		if h.Held() == n {
			continue
		}
		report.Drift = append(report.Drift, HotelDrift{
			HotelID:    h.ID,
			Rooms:      h.Rooms,
			Available:  h.RoomsAvailable,
			Held:       h.Held(),
			Live:       n,
			Expected:   clamp(h.Rooms-n, 0, h.Rooms),
			Overbooked: n > h.Rooms,
		})
	}
	sort.Slice(report.Drift, func(i, j int) bool { return report.Drift[i].HotelID < report.Drift[j].HotelID })
	return report, hotels
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
