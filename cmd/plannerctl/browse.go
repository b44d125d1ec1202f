package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Shivanand-hulikatti/event-planner/internal/client"
	"github.com/Shivanand-hulikatti/event-planner/internal/loader"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
	"github.com/Shivanand-hulikatti/event-planner/internal/ui"
)

var collections = map[string]model.Kind{
	"packages": model.KindPackage,
	"bookings": model.KindBooking,
	"payments": model.KindPayment,
	"reviews":  model.KindReview,
}

var titles = map[model.Kind]string{
	model.KindPackage: "Packages",
	model.KindBooking: "Bookings",
	model.KindPayment: "Payments",
	model.KindReview:  "Reviews",
}

var browseCmd = &cobra.Command{
	Use:     "browse <packages|bookings|payments|reviews> [package-id]",
	Short:   "Browse a collection interactively",
	GroupID: "lists",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := collections[args[0]]
		if !ok {
			return fmt.Errorf("unknown collection %q", args[0])
		}
		scope := ""
		if len(args) == 2 {
			scope = args[1]
		}
		path, err := client.Path(kind, scope)
		if err != nil {
			return err
		}
		if !ui.IsTerminal() {
			return errors.New("browse needs an interactive terminal; use the list commands instead")
		}

		scoped := scopeFromFlags(cmd.Flags())
		// Fetch errors are shown in the browser's status line.
		coll := loader.New[model.Record](args[0],
			func(ctx context.Context) ([]model.Record, error) {
				return api.FetchAll(ctx, kind, path, scoped)
			},
			loader.WithErrorHandler[model.Record](func(string, error) {}),
		)
		defer coll.Close()

		b := ui.NewBrowser(cmd.Context(), titles[kind], kind, coll,
			queryFromFlags(cmd.Flags(), kind), cfg.Listing.MissingPolicy(), ui.ShouldUseColor())
		_, err = tea.NewProgram(b, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	},
}

func init() {
	addListFlags(browseCmd.Flags())
	browseCmd.Flags().String("email", "", "bookings only: scope to this email")
	browseCmd.Flags().String("booking", "", "payments only: scope to this booking")
}
