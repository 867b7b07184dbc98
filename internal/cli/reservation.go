package cli

import (
	"fmt"

	"hotelres/pkg/domain"

	"github.com/spf13/cobra"
)

func newReservationCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reservation",
		Short: "Book and cancel rooms",
	}
	cmd.AddCommand(newReservationCreateCmd(a), newReservationGetCmd(a), newReservationCancelCmd(a), newReservationListCmd(a))
	return cmd
}

func newReservationCreateCmd(a *app) *cobra.Command {
	var in domain.Reservation
	c := &cobra.Command{
		Use:   "create",
		Short: "Reserve one room of a hotel for a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := a.svc.Reservations.CreateReservation(cmd.Context(), in)
			if err != nil {
				return err
			}
			printReservation(cmd.OutOrStdout(), created)
			return nil
		},
	}
	c.Flags().StringVar(&in.ID, "id", "", "reservation id (generated when empty)")
	c.Flags().StringVar(&in.CustomerID, "customer", "", "customer id")
	c.Flags().StringVar(&in.HotelID, "hotel", "", "hotel id")
	_ = c.MarkFlagRequired("customer")
	_ = c.MarkFlagRequired("hotel")
	return c
}

func newReservationGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.svc.Reservations.GetReservation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printReservation(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

func newReservationCancelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a reservation and release its room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Reservations.CancelReservation(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cancelled reservation %q\n", args[0])
			return nil
		},
	}
}

func newReservationListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reservations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printList(cmd.OutOrStdout(), a.svc.Reservations.ListReservations(cmd.Context()), printReservation)
			return nil
		},
	}
}
