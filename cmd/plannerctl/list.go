package main

import (
	"context"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Shivanand-hulikatti/event-planner/internal/client"
	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

var packagesCmd = newListCmd("packages", "List catalog packages", model.KindPackage, nil)

var bookingsCmd = newListCmd("bookings", "List bookings", model.KindBooking, func(fs *pflag.FlagSet) {
	fs.String("email", "", "only bookings made with this email")
})

var paymentsCmd = newListCmd("payments", "List payment history", model.KindPayment, func(fs *pflag.FlagSet) {
	fs.String("booking", "", "only payments for this booking ID or reference")
})

var reviewsCmd = newListCmd("reviews <package-id>", "List reviews of a package", model.KindReview, nil)

// newListCmd builds a list command. By default the server runs the pipeline;
// --local fetches the whole collection and filters, sorts and pages it here.
func newListCmd(use, short string, kind model.Kind, extra func(*pflag.FlagSet)) *cobra.Command {
	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		GroupID: "lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := ""
			if len(args) > 0 {
				scope = args[0]
			}
			path, err := client.Path(kind, scope)
			if err != nil {
				return err
			}
			q := queryFromFlags(cmd.Flags(), kind)
			scoped := scopeFromFlags(cmd.Flags())

			local, _ := cmd.Flags().GetBool("local")
			var page listing.Page[model.Record]
			if local {
				page, err = listLocal(cmd.Context(), kind, path, scoped, q)
			} else {
				params := q.Values()
				for k, vs := range scoped {
					params[k] = vs
				}
				page, err = api.List(cmd.Context(), kind, path, params)
			}
			if err != nil {
				return err
			}
			return printPage(cmd.OutOrStdout(), kind, page, q.Sort)
		},
	}
	cmd.Args = cobra.NoArgs
	if kind == model.KindReview {
		cmd.Args = cobra.ExactArgs(1)
	}
	addListFlags(cmd.Flags())
	cmd.Flags().Bool("local", false, "fetch everything and run the pipeline client-side")
	if extra != nil {
		extra(cmd.Flags())
	}
	return cmd
}

func listLocal(ctx context.Context, kind model.Kind, path string, scope url.Values, q listing.Query) (listing.Page[model.Record], error) {
	recs, err := api.FetchAll(ctx, kind, path, scope)
	if err != nil {
		return listing.Page[model.Record]{}, err
	}
	return listing.Run(recs, q, cfg.Listing.MissingPolicy()), nil
}

func addListFlags(fs *pflag.FlagSet) {
	fs.String("status", "", "filter by status")
	fs.String("payment-status", "", "filter by payment status (unpaid, partial, paid)")
	fs.StringP("search", "q", "", "case-insensitive text search")
	fs.String("min-price", "", "minimum price, inclusive")
	fs.String("max-price", "", "maximum price, inclusive")
	fs.Int("guests", 0, "minimum capacity or guest count")
	fs.StringP("sort", "s", "", "price-asc, price-desc, recency-desc or match-score-desc")
	fs.IntP("page", "p", 1, "page number")
	fs.Int("page-size", 0, "results per page")
}

// queryFromFlags maps flags onto the same parameters the server parses, so
// both sides share defaults and fallbacks.
func queryFromFlags(fs *pflag.FlagSet, kind model.Kind) listing.Query {
	v := url.Values{}
	set := func(param, flag string) {
		if s, _ := fs.GetString(flag); s != "" {
			v.Set(param, s)
		}
	}
	set("status", "status")
	set("payment_status", "payment-status")
	set("q", "search")
	set("min_price", "min-price")
	set("max_price", "max-price")
	set("sort", "sort")
	if n, _ := fs.GetInt("guests"); n > 0 {
		v.Set("min_capacity", strconv.Itoa(n))
	}
	if n, _ := fs.GetInt("page"); n > 0 {
		v.Set("page", strconv.Itoa(n))
	}
	if n, _ := fs.GetInt("page-size"); n > 0 {
		v.Set("page_size", strconv.Itoa(n))
	}
	return listing.ParseQuery(v, cfg.Listing.Defaults(listing.DefaultSort(kind)))
}

func scopeFromFlags(fs *pflag.FlagSet) url.Values {
	v := url.Values{}
	if fs.Lookup("email") != nil {
		if s, _ := fs.GetString("email"); s != "" {
			v.Set("email", s)
		}
	}
	if fs.Lookup("booking") != nil {
		if s, _ := fs.GetString("booking"); s != "" {
			v.Set("booking", s)
		}
	}
	return v
}
