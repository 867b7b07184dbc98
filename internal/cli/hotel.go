package cli

import (
	"fmt"

	"hotelres/pkg/domain"

	"github.com/spf13/cobra"
)

func newHotelCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hotel",
		Short: "Manage hotels",
	}
	cmd.AddCommand(newHotelCreateCmd(a), newHotelGetCmd(a), newHotelUpdateCmd(a), newHotelDeleteCmd(a), newHotelListCmd(a))
	return cmd
}

func newHotelCreateCmd(a *app) *cobra.Command {
	var in domain.Hotel
	c := &cobra.Command{
		Use:   "create",
		Short: "Create a hotel with every room available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := a.svc.Hotels.CreateHotel(cmd.Context(), in)
			if err != nil {
				return err
			}
			printHotel(cmd.OutOrStdout(), created)
			return nil
		},
	}
	c.Flags().StringVar(&in.ID, "id", "", "hotel id (generated when empty)")
	c.Flags().StringVar(&in.Name, "name", "", "hotel name")
	c.Flags().StringVar(&in.Location, "location", "", "hotel location")
	c.Flags().IntVar(&in.Rooms, "rooms", 0, "total rooms")
	return c
}

func newHotelGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a hotel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.svc.Hotels.GetHotel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printHotel(cmd.OutOrStdout(), h)
			return nil
		},
	}
}

func newHotelUpdateCmd(a *app) *cobra.Command {
	var (
		name, location string
		rooms          int
	)
	c := &cobra.Command{
		Use:   "update ID",
		Short: "Change a hotel's name, location or room count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd domain.HotelUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("location") {
				upd.Location = &location
			}
			if cmd.Flags().Changed("rooms") {
				upd.Rooms = &rooms
			}
			h, err := a.svc.Hotels.UpdateHotel(cmd.Context(), args[0], upd)
			if err != nil {
				return err
			}
			printHotel(cmd.OutOrStdout(), h)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "new name")
	c.Flags().StringVar(&location, "location", "", "new location")
	c.Flags().IntVar(&rooms, "rooms", 0, "new total rooms; availability shifts by the same delta")
	return c
}

func newHotelDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a hotel (reservations are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Hotels.DeleteHotel(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted hotel %q\n", args[0])
			return nil
		},
	}
}

func newHotelListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List hotels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printList(cmd.OutOrStdout(), a.svc.Hotels.ListHotels(cmd.Context()), printHotel)
			return nil
		},
	}
}
