package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/Shivanand-hulikatti/event-planner/internal/database"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
	"github.com/Shivanand-hulikatti/event-planner/internal/service"
)

// catalogFile is the TOML layout accepted by seed:
//
//	[[packages]]
//	name = "Garden Wedding"
//	category = "wedding"
//	price = 2500
//	capacity = 120
type catalogFile struct {
	Packages []model.CreatePackageRequest `toml:"packages"`
}

var seedCmd = &cobra.Command{
	Use:   "seed <catalog.toml>",
	Short: "Load catalog packages from a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		pkgs, err := loadCatalog(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "%d packages parsed\n", len(pkgs))
			return nil
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := context.Background()
		pool, err := database.NewPool(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		svc := service.New(newDeps(pool, cfg))
		defer svc.Close()
		created, err := seedCatalog(ctx, svc, pkgs)
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d packages created\n", created, len(pkgs))
		return err
	},
}

func init() {
	seedCmd.Flags().Bool("dry-run", false, "parse the file without writing")
}

// loadCatalog decodes a catalog file. Unknown keys are rejected so typos do
// not silently drop fields.
func loadCatalog(r io.Reader) ([]model.CreatePackageRequest, error) {
	var f catalogFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return f.Packages, nil
}

type packageCreator interface {
	CreatePackage(ctx context.Context, req model.CreatePackageRequest) (*model.Package, error)
}

// seedCatalog creates every package it can and joins the failures.
func seedCatalog(ctx context.Context, svc packageCreator, pkgs []model.CreatePackageRequest) (int, error) {
	var (
		created int
		errs    []error
	)
	for i, req := range pkgs {
		p, err := svc.CreatePackage(ctx, req)
		if err != nil {
			errs = append(errs, fmt.Errorf("package %d (%q): %w", i+1, req.Name, err))
			continue
		}
		created++
		slog.Info("package created", "id", p.ID, "name", p.Name)
	}
	return created, errors.Join(errs...)
}
