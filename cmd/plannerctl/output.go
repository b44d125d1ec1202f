package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
	"github.com/Shivanand-hulikatti/event-planner/internal/ui"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printPage(w io.Writer, kind model.Kind, p listing.Page[model.Record], sort listing.SortKey) error {
	if jsonOutput {
		return printJSON(w, p)
	}
	return ui.PrintPage(w, kind, p, sort, ui.Width(), ui.ShouldUseColor())
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
