package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/inventory"
)

func init() {
	var token, devUser, devEmail string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Store the auth token used for every request",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" && devUser == "" {
				return fmt.Errorf("--token or --dev-user required")
			}
			if token == "" {
				t, err := app.devToken(devUser, devEmail)
				if err != nil {
					return err
				}
				token = t
			}
			if err := app.Session.SetToken(cmd.Context(), token); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "logged in")
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&token, "token", "t", "", "Bearer token issued by the endpoint")
	loginCmd.Flags().StringVar(&devUser, "dev-user", "", "Sign a token for this user with the dev server secret")
	loginCmd.Flags().StringVar(&devEmail, "dev-email", "", "Email claim of the dev token")
	rootCmd.AddCommand(loginCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Forget the stored auth token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Session.ClearToken(cmd.Context())
		},
	})

	housesCmd := &cobra.Command{
		Use:   "houses",
		Short: "House operations",
	}

	housesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your houses",
		RunE: func(cmd *cobra.Command, args []string) error {
			houses, err := app.Houses.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, houses)
		},
	})

	var desc string
	var selectNew bool
	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a house",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			house, err := app.Houses.Create(cmd.Context(), inventory.CreateHouseInput{Name: args[0], Description: desc})
			if err != nil {
				return err
			}
			if selectNew {
				if err := app.Houses.Select(cmd.Context(), *house); err != nil {
					return err
				}
			}
			return printJSON(os.Stdout, house)
		},
	}
	createCmd.Flags().StringVarP(&desc, "desc", "d", "", "Description")
	createCmd.Flags().BoolVarP(&selectNew, "select", "s", false, "Select the new house")
	housesCmd.AddCommand(createCmd)

	housesCmd.AddCommand(&cobra.Command{
		Use:   "select HOUSE_ID",
		Short: "Make a house the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			house, err := app.Houses.SelectByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, house)
		},
	})

	housesCmd.AddCommand(&cobra.Command{
		Use:   "current",
		Short: "Show the current house",
		RunE: func(cmd *cobra.Command, args []string) error {
			house, ok, err := app.Houses.Current(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no house selected")
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s\t%s\n", house.ID, house.Name)
			return nil
		},
	})

	rootCmd.AddCommand(housesCmd)
}
