package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Shivanand-hulikatti/event-planner/internal/form"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
	"github.com/Shivanand-hulikatti/event-planner/internal/receipt"
	"github.com/Shivanand-hulikatti/event-planner/internal/ui"
)

var bookingLabels = map[string]string{
	"package_id":    "Package ID",
	"customer_name": "Your name",
	"email":         "Email",
	"phone":         "Phone",
	"event_date":    "Event date (YYYY-MM-DD)",
	"guests":        "Number of guests",
	"notes":         "Notes",
}

var paymentLabels = map[string]string{
	"amount": "Amount",
	"method": "Method (" + strings.Join(form.PaymentMethods, ", ") + ")",
}

var recommendLabels = map[string]string{
	"email":       "Email",
	"event_type":  "Event type",
	"guests":      "Number of guests",
	"budget":      "Budget",
	"event_date":  "Event date (YYYY-MM-DD)",
	"preferences": "Preferences",
}

// fill collects a form from flags, prompting for the rest when stdin is a
// terminal and --no-input is unset.
func fill(cmd *cobra.Command, schema form.Schema, values map[string]string, labels map[string]string) (map[string]string, error) {
	f := form.New(schema)
	f.Fill(values)

	noInput, _ := cmd.Flags().GetBool("no-input")
	if noInput || !ui.IsTerminal() {
		if err := submit(f, schema); err != nil {
			return nil, err
		}
		return f.Values(), nil
	}
	if err := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()).complete(f, labels); err != nil {
		return nil, err
	}
	return f.Values(), nil
}

func stringFlags(fs *pflag.FlagSet, names map[string]string) map[string]string {
	out := make(map[string]string, len(names))
	for field, flag := range names {
		if s, _ := fs.GetString(flag); s != "" {
			out[field] = s
		}
	}
	return out
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

var bookCmd = &cobra.Command{
	Use:     "book",
	Short:   "Book a package for an event",
	GroupID: "forms",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemas := form.NewSchemas(time.Now)
		values, err := fill(cmd, schemas.Booking, stringFlags(cmd.Flags(), map[string]string{
			"package_id":    "package",
			"customer_name": "name",
			"email":         "email",
			"phone":         "phone",
			"event_date":    "date",
			"guests":        "guests",
			"notes":         "notes",
		}), bookingLabels)
		if err != nil {
			return err
		}

		b, err := api.Book(cmd.Context(), model.CreateBookingRequest{
			PackageID:    values["package_id"],
			CustomerName: values["customer_name"],
			Email:        values["email"],
			Phone:        values["phone"],
			EventDate:    values["event_date"],
			Guests:       atoi(values["guests"]),
			Notes:        values["notes"],
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), b)
		}
		printf(cmd.OutOrStdout(), "Booked %s for %s on %s (%s). Total %s.\n",
			b.Reference, b.PackageName, b.EventDate.Format(model.DateLayout), b.Status, receipt.Money(b.TotalPrice))
		return nil
	},
}

var cancelCmd = &cobra.Command{
	Use:     "cancel <booking-id|reference>",
	Short:   "Cancel a booking",
	GroupID: "forms",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := api.CancelBooking(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), b)
		}
		printf(cmd.OutOrStdout(), "Booking %s is %s.\n", b.Reference, b.Status)
		return nil
	},
}

var payCmd = &cobra.Command{
	Use:     "pay <booking-id|reference>",
	Short:   "Record a payment against a booking",
	GroupID: "forms",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemas := form.NewSchemas(time.Now)
		values, err := fill(cmd, schemas.Payment, stringFlags(cmd.Flags(), map[string]string{
			"amount": "amount",
			"method": "method",
		}), paymentLabels)
		if err != nil {
			return err
		}
		p, err := api.RecordPayment(cmd.Context(), args[0], model.CreatePaymentRequest{
			Amount: atof(values["amount"]),
			Method: values["method"],
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), p)
		}
		printf(cmd.OutOrStdout(), "Recorded %s by %s on %s. Payment %s is %s.\n",
			receipt.Money(p.Amount), p.Method, p.BookingReference, p.ID, p.Status)
		return nil
	},
}

var receiptCmd = &cobra.Command{
	Use:     "receipt <payment-id>",
	Short:   "Download a payment receipt as PDF",
	GroupID: "forms",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := api.Receipt(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = "receipt-" + args[0] + ".pdf"
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		printf(cmd.OutOrStdout(), "Saved %s (%d bytes).\n", out, len(data))
		return nil
	},
}

var recommendCmd = &cobra.Command{
	Use:     "recommend",
	Short:   "Get package recommendations for an event",
	GroupID: "forms",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemas := form.NewSchemas(time.Now)
		values, err := fill(cmd, schemas.Recommendation, stringFlags(cmd.Flags(), map[string]string{
			"email":       "email",
			"event_type":  "event-type",
			"guests":      "event-guests",
			"budget":      "budget",
			"event_date":  "date",
			"preferences": "preferences",
		}), recommendLabels)
		if err != nil {
			return err
		}

		q := queryFromFlags(cmd.Flags(), model.KindRecommendation)
		res, err := api.Recommend(cmd.Context(), model.RecommendRequest{
			Email:       values["email"],
			EventType:   values["event_type"],
			Guests:      atoi(values["guests"]),
			Budget:      atof(values["budget"]),
			EventDate:   values["event_date"],
			Preferences: values["preferences"],
		}, q.Values())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), res)
		}
		return printPage(cmd.OutOrStdout(), model.KindRecommendation, res.Results, q.Sort)
	},
}

var exportCmd = &cobra.Command{
	Use:     "export <packages|bookings|payments>",
	Short:   "Export a filtered collection to object storage",
	GroupID: "forms",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := collections[args[0]]
		if !ok {
			return fmt.Errorf("unknown collection %q", args[0])
		}
		q := queryFromFlags(cmd.Flags(), kind)
		params := q.Values()
		params.Del("page")
		params.Del("page_size")

		res, err := api.Export(cmd.Context(), args[0], params)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), res)
		}
		printf(cmd.OutOrStdout(), "Exported %d %s to %s.\n", res.Count, res.Collection, res.Key)
		return nil
	},
}

func init() {
	fs := bookCmd.Flags()
	fs.String("package", "", "package ID")
	fs.String("name", "", "customer name")
	fs.String("email", "", "contact email")
	fs.String("phone", "", "contact phone")
	fs.String("date", "", "event date, YYYY-MM-DD")
	fs.String("guests", "", "number of guests")
	fs.String("notes", "", "anything the planner should know")
	fs.Bool("no-input", false, "never prompt; fail on missing fields")

	fs = payCmd.Flags()
	fs.String("amount", "", "amount paid")
	fs.String("method", "", "payment method")
	fs.Bool("no-input", false, "never prompt; fail on missing fields")

	receiptCmd.Flags().StringP("output", "o", "", "output file (default receipt-<id>.pdf)")

	fs = recommendCmd.Flags()
	fs.String("email", "", "contact email")
	fs.String("event-type", "", "kind of event, e.g. wedding")
	fs.String("event-guests", "", "number of guests")
	fs.String("budget", "", "total budget")
	fs.String("date", "", "event date, YYYY-MM-DD")
	fs.String("preferences", "", "free-form preferences")
	fs.Bool("no-input", false, "never prompt; fail on missing fields")
	addListFlags(fs)

	addListFlags(exportCmd.Flags())
}
