package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/inventory"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
)

const dateLayout = "2006-01-02"

func parseDecimal(flag, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %w", flag, err)
	}
	return d, nil
}

func parseDate(flag, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("--%s must be YYYY-MM-DD: %w", flag, err)
	}
	return &t, nil
}

// reportResult prints a repository Result and turns a failure into an error.
func reportResult(res inventory.Result) error {
	if !res.Success {
		return fmt.Errorf("%s", res.Error)
	}
	if res.ItemID != "" {
		_, _ = fmt.Fprintln(os.Stdout, res.ItemID)
	}
	return nil
}

func init() {
	itemsCmd := &cobra.Command{
		Use:   "items",
		Short: "Inventory item operations on the current house",
	}

	itemsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the items of the current house",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Inventory.Refresh(cmd.Context()); err != nil {
				return err
			}
			return printJSON(os.Stdout, app.Inventory.Items())
		},
	})

	itemsCmd.AddCommand(&cobra.Command{
		Use:   "get ITEM_ID",
		Short: "Show one item with its batches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item := app.Inventory.GetItem(cmd.Context(), args[0])
			if item == nil {
				return fmt.Errorf("item %s not found", args[0])
			}
			return printJSON(os.Stdout, item)
		},
	})

	var (
		category, quantity, unit, location, threshold, expires string
		tags                                                   []string
	)
	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an item with its first batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := inventory.AddItemInput{
				Name:     args[0],
				Unit:     unit,
				Location: location,
				Tags:     tags,
			}
			if category == "" {
				in.Category = app.Classifier.Classify(cmd.Context(), args[0]).Category
			} else {
				c, ok := models.ParseCategory(category)
				if !ok {
					return fmt.Errorf("--category: unknown category %q", category)
				}
				in.Category = c
			}
			var err error
			if in.Quantity, err = parseDecimal("quantity", quantity); err != nil {
				return err
			}
			if in.Threshold, err = parseDecimal("threshold", threshold); err != nil {
				return err
			}
			if in.ExpiryDate, err = parseDate("expires", expires); err != nil {
				return err
			}
			return reportResult(app.Inventory.AddItem(cmd.Context(), in))
		},
	}
	addCmd.Flags().StringVarP(&category, "category", "k", "", "Category (classified from the name when omitted)")
	addCmd.Flags().StringVarP(&quantity, "quantity", "q", "1", "Quantity of the first batch")
	addCmd.Flags().StringVarP(&unit, "unit", "u", "", "Unit (defaults to pieces)")
	addCmd.Flags().StringVarP(&location, "location", "l", "", "Where the item is kept")
	addCmd.Flags().StringVar(&threshold, "threshold", "", "Low-stock threshold")
	addCmd.Flags().StringVarP(&expires, "expires", "e", "", "Expiry date of the batch (YYYY-MM-DD)")
	addCmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag, repeatable")
	itemsCmd.AddCommand(addCmd)

	updateCmd := &cobra.Command{
		Use:   "update ITEM_ID",
		Short: "Change item fields; unset flags are left untouched",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var in inventory.UpdateItemInput
			if flags.Changed("name") {
				v, _ := flags.GetString("name")
				in.Name = &v
			}
			if flags.Changed("category") {
				v, _ := flags.GetString("category")
				c, ok := models.ParseCategory(v)
				if !ok {
					return fmt.Errorf("--category: unknown category %q", v)
				}
				in.Category = &c
			}
			if flags.Changed("unit") {
				v, _ := flags.GetString("unit")
				in.DefaultUnit = &v
			}
			if flags.Changed("location") {
				v, _ := flags.GetString("location")
				in.Location = &v
			}
			if flags.Changed("threshold") {
				v, _ := flags.GetString("threshold")
				d, err := parseDecimal("threshold", v)
				if err != nil {
					return err
				}
				in.Threshold = &d
			}
			if flags.Changed("tag") {
				in.Tags, _ = flags.GetStringSlice("tag")
			}
			return reportResult(app.Inventory.UpdateItem(cmd.Context(), args[0], in))
		},
	}
	updateCmd.Flags().String("name", "", "New name")
	updateCmd.Flags().StringP("category", "k", "", "New category")
	updateCmd.Flags().StringP("unit", "u", "", "New default unit")
	updateCmd.Flags().StringP("location", "l", "", "New location")
	updateCmd.Flags().String("threshold", "", "New low-stock threshold")
	updateCmd.Flags().StringSlice("tag", nil, "Replace tags, repeatable")
	itemsCmd.AddCommand(updateCmd)

	itemsCmd.AddCommand(&cobra.Command{
		Use:   "delete ITEM_ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportResult(app.Inventory.DeleteItem(cmd.Context(), args[0]))
		},
	})

	rootCmd.AddCommand(itemsCmd)

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Batch operations",
	}
	var batchQuantity, batchUnit, batchExpires string
	batchAddCmd := &cobra.Command{
		Use:   "add ITEM_ID",
		Short: "Record more stock of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := inventory.AddBatchInput{ItemID: args[0], Unit: batchUnit}
			var err error
			if in.Quantity, err = parseDecimal("quantity", batchQuantity); err != nil {
				return err
			}
			if in.ExpiryDate, err = parseDate("expires", batchExpires); err != nil {
				return err
			}
			return reportResult(app.Inventory.AddBatch(cmd.Context(), in))
		},
	}
	batchAddCmd.Flags().StringVarP(&batchQuantity, "quantity", "q", "", "Quantity (required)")
	batchAddCmd.Flags().StringVarP(&batchUnit, "unit", "u", "", "Unit (defaults to the item's unit)")
	batchAddCmd.Flags().StringVarP(&batchExpires, "expires", "e", "", "Expiry date (YYYY-MM-DD)")
	_ = batchAddCmd.MarkFlagRequired("quantity")
	batchCmd.AddCommand(batchAddCmd)
	rootCmd.AddCommand(batchCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "classify NAME",
		Short: "Show the category a product name is filed under",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				res := app.Classifier.Classify(cmd.Context(), name)
				_, _ = fmt.Fprintf(os.Stdout, "%s\t%s\t%.2f\t%s\n", name, res.Category, res.Confidence, res.Reasoning)
			}
			return nil
		},
	})
}
