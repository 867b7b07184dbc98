package cli

import (
	"fmt"

	"hotelres/pkg/domain"

	"github.com/spf13/cobra"
)

func newCustomerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}
	cmd.AddCommand(newCustomerCreateCmd(a), newCustomerGetCmd(a), newCustomerUpdateCmd(a), newCustomerDeleteCmd(a), newCustomerListCmd(a))
	return cmd
}

func newCustomerCreateCmd(a *app) *cobra.Command {
	var in domain.Customer
	c := &cobra.Command{
		Use:   "create",
		Short: "Create a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := a.svc.Customers.CreateCustomer(cmd.Context(), in)
			if err != nil {
				return err
			}
			printCustomer(cmd.OutOrStdout(), created)
			return nil
		},
	}
	c.Flags().StringVar(&in.ID, "id", "", "customer id (generated when empty)")
	c.Flags().StringVar(&in.Name, "name", "", "customer name")
	c.Flags().StringVar(&in.Email, "email", "", "customer email")
	return c
}

func newCustomerGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.svc.Customers.GetCustomer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printCustomer(cmd.OutOrStdout(), c)
			return nil
		},
	}
}

func newCustomerUpdateCmd(a *app) *cobra.Command {
	var name, email string
	c := &cobra.Command{
		Use:   "update ID",
		Short: "Change a customer's name or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd domain.CustomerUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("email") {
				upd.Email = &email
			}
			c, err := a.svc.Customers.UpdateCustomer(cmd.Context(), args[0], upd)
			if err != nil {
				return err
			}
			printCustomer(cmd.OutOrStdout(), c)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "new name")
	c.Flags().StringVar(&email, "email", "", "new email")
	return c
}

func newCustomerDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Customers.DeleteCustomer(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted customer %q\n", args[0])
			return nil
		},
	}
}

func newCustomerListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printList(cmd.OutOrStdout(), a.svc.Customers.ListCustomers(cmd.Context()), printCustomer)
			return nil
		},
	}
}
