package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/interpreter"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
)

func init() {
	var yes bool
	sayCmd := &cobra.Command{
		Use:   "say TRANSCRIPT...",
		Short: "Interpret a spoken or typed command and apply it after confirmation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in := app.Interpreter

			if err := in.Start(); err != nil {
				return err
			}
			intent, err := in.Submit(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			printIntent(os.Stdout, intent)

			if !yes && !confirm(os.Stdin, os.Stdout) {
				return in.Cancel()
			}

			out := in.Confirm(ctx)
			_, _ = fmt.Fprintln(os.Stdout, out.Message)
			switch out.Kind {
			case interpreter.OutcomeCommitted:
				_, _ = fmt.Fprintln(os.Stdout, out.ItemID)
			case interpreter.OutcomeFailed:
				return out.Err
			}
			return nil
		},
	}
	sayCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Apply without asking")
	rootCmd.AddCommand(sayCmd)
}

func printIntent(w io.Writer, intent *models.Intent) {
	item := intent.Item
	_, _ = fmt.Fprintf(w, "intent:     %s (confidence %.2f)\n", intent.Intent, intent.Confidence)
	_, _ = fmt.Fprintf(w, "item:       %s\n", item.DisplayName())
	_, _ = fmt.Fprintf(w, "quantity:   %s %s\n", item.Quantity, item.Unit)
	_, _ = fmt.Fprintf(w, "category:   %s\n", item.Category)
	if item.Location != "" {
		_, _ = fmt.Fprintf(w, "location:   %s\n", item.Location)
	}
}

func confirm(r io.Reader, w io.Writer) bool {
	_, _ = fmt.Fprint(w, "Apply? [y/N] ")
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
