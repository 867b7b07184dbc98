package httpapi

import (
	"net/http"

	"hotelres/pkg/domain"

	"github.com/gorilla/mux"
)

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var in domain.Customer
	if err := decode(r, &in); err != nil {
		s.badRequest(w, domain.EntityCustomer, err)
		return
	}
	created, err := s.svc.Customers.CreateCustomer(r.Context(), in)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Customers.ListCustomers(r.Context()))
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Customers.GetCustomer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var upd domain.CustomerUpdate
	if err := decode(r, &upd); err != nil {
		s.badRequest(w, domain.EntityCustomer, err)
		return
	}
	c, err := s.svc.Customers.UpdateCustomer(r.Context(), mux.Vars(r)["id"], upd)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Customers.DeleteCustomer(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) createHotel(w http.ResponseWriter, r *http.Request) {
	var in domain.Hotel
	if err := decode(r, &in); err != nil {
		s.badRequest(w, domain.EntityHotel, err)
		return
	}
	created, err := s.svc.Hotels.CreateHotel(r.Context(), in)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) listHotels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Hotels.ListHotels(r.Context()))
}

func (s *Server) getHotel(w http.ResponseWriter, r *http.Request) {
	h, err := s.svc.Hotels.GetHotel(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) updateHotel(w http.ResponseWriter, r *http.Request) {
	var upd domain.HotelUpdate
	if err := decode(r, &upd); err != nil {
		s.badRequest(w, domain.EntityHotel, err)
		return
	}
	h, err := s.svc.Hotels.UpdateHotel(r.Context(), mux.Vars(r)["id"], upd)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) deleteHotel(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Hotels.DeleteHotel(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) createReservation(w http.ResponseWriter, r *http.Request) {
	var in domain.Reservation
	if err := decode(r, &in); err != nil {
		s.badRequest(w, domain.EntityReservation, err)
		return
	}
	created, err := s.svc.Reservations.CreateReservation(r.Context(), in)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) listReservations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Reservations.ListReservations(r.Context()))
}

func (s *Server) getReservation(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Reservations.GetReservation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) cancelReservation(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Reservations.CancelReservation(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
