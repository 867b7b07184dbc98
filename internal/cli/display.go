package cli

import (
	"fmt"
	"io"

	"hotelres/internal/core"
	"hotelres/pkg/domain"
)

func printCustomer(w io.Writer, c domain.Customer) {
	fmt.Fprintf(w, "Customer ID: %s\n", c.ID)
	fmt.Fprintf(w, "Name: %s\n", c.Name)
	fmt.Fprintf(w, "Email: %s\n", c.Email)
}

func printHotel(w io.Writer, h domain.Hotel) {
	fmt.Fprintf(w, "Hotel ID: %s\n", h.ID)
	fmt.Fprintf(w, "Name: %s\n", h.Name)
	fmt.Fprintf(w, "Location: %s\n", h.Location)
	fmt.Fprintf(w, "Total Rooms: %d\n", h.Rooms)
	fmt.Fprintf(w, "Rooms Available: %d\n", h.RoomsAvailable)
}

func printReservation(w io.Writer, r domain.Reservation) {
	fmt.Fprintf(w, "Reservation ID: %s\n", r.ID)
	fmt.Fprintf(w, "Customer ID: %s\n", r.CustomerID)
	fmt.Fprintf(w, "Hotel ID: %s\n", r.HotelID)
}

func printList[T any](w io.Writer, items []T, show func(io.Writer, T)) {
	for i, item := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		show(w, item)
	}
}

func printReport(w io.Writer, r core.Report) {
	fmt.Fprintf(w, "Hotels: %d\n", r.Hotels)
	fmt.Fprintf(w, "Reservations: %d\n", r.Reservations)
	if r.Consistent() {
		fmt.Fprintln(w, "Status: consistent")
		return
	}
	for _, d := range r.Drift {
		state := "drift"
		if d.Repaired {
			state = "repaired"
		}
		fmt.Fprintf(w, "Hotel %s: %s held=%d live=%d available=%d expected=%d", d.HotelID, state, d.Held, d.Live, d.Available, d.Expected)
		if d.Overbooked {
			fmt.Fprint(w, " overbooked")
		}
		fmt.Fprintln(w)
	}
	for _, o := range r.Orphans {
		fmt.Fprintf(w, "Orphan reservation %s: hotel=%s missing=%t customer=%s missing=%t\n",
			o.Reservation.ID, o.Reservation.HotelID, o.MissingHotel, o.Reservation.CustomerID, o.MissingCustomer)
	}
}
