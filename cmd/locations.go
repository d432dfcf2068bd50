package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pugetsound-wardrive/wiglectl/internal/locations"
)

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List the predefined survey locations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		locs, err := locations.All()
		if err != nil {
			return err
		}
		formatLocations(os.Stdout, locs)
		return nil
	},
}

func formatLocations(out io.Writer, locs []locations.Location) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tLAT_LOW\tLAT_HIGH\tLONG_LOW\tLONG_HIGH")
	for _, l := range locs {
		_, _ = fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\n", l.Name, l.LatLow, l.LatHigh, l.LonLow, l.LonHigh)
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(locationsCmd)
}
