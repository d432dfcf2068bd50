package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pugetsound-wardrive/wiglectl/internal/locations"
	"github.com/pugetsound-wardrive/wiglectl/internal/model"
	"github.com/pugetsound-wardrive/wiglectl/internal/output"
	"github.com/pugetsound-wardrive/wiglectl/internal/retrieve"
	"github.com/pugetsound-wardrive/wiglectl/pkg/wigle"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search a bounding box and save the results",
	Long: `Searches the selected WiGLE catalog for observations inside a bounding box
given either as a predefined --location or as explicit --lat1/--lat2/--long1/--long2
coordinates. Results are paged until exhaustion and written to one timestamped
tabular file. Ctrl-C stops the session early and keeps everything fetched so far.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		token, _ := cmd.Flags().GetString("api-token")
		if token == "" {
			token = cfg.APIToken
		}

		bounds, err := resolveBounds(cmd, token)
		if err != nil {
			return err
		}

		kindFlag, _ := cmd.Flags().GetString("kind")
		if kindFlag == "" {
			kindFlag = cfg.Search.Kind
		}
		kind, err := wigle.ParseKind(kindFlag)
		if err != nil {
			return err
		}

		formatFlag, _ := cmd.Flags().GetString("format")
		if formatFlag == "" {
			formatFlag = cfg.Output.Format
		}
		format, err := output.ParseFormat(formatFlag)
		if err != nil {
			return err
		}

		outDir, _ := cmd.Flags().GetString("out-dir")
		if outDir == "" {
			outDir = cfg.Output.Dir
		}

		onlyMine, _ := cmd.Flags().GetBool("onlymine")
		lastUpdated, _ := cmd.Flags().GetString("lastupdt")
		quiet, _ := cmd.Flags().GetBool("quiet")

		client := wigle.New(bounds.APIToken,
			wigle.WithBaseURL(cfg.BaseURL),
			wigle.WithTimeout(cfg.Search.Timeout),
			wigle.WithRequestInterval(cfg.Search.RequestInterval),
		)
		driver := retrieve.NewDriver(client, retrieve.Options{
			MaxAttempts: cfg.Search.MaxAttempts,
			Backoff:     cfg.Search.Backoff,
			MaxCooldown: cfg.Search.MaxCooldown,
			PageSize:    cfg.Search.PageSize,
		})

		sess := driver.Run(ctx, retrieve.Query{
			Bounds:      bounds,
			Kind:        kind,
			OnlyMine:    onlyMine,
			LastUpdated: lastUpdated,
		})

		sink := output.Sink{Dir: outDir, Format: format}
		path, err := sink.Commit(sess)
		if err != nil {
			return eris.Wrap(err, "search: persist results")
		}

		reportOutcome(sess, path)

		if !quiet && len(sess.Records) > 0 {
			formatRecords(os.Stdout, sess.Records)
		}
		return nil
	},
}

// resolveBounds builds QueryBounds from either a predefined location or the
// explicit coordinate flags. Validation happens here, before any network use.
func resolveBounds(cmd *cobra.Command, token string) (model.QueryBounds, error) {
	location, _ := cmd.Flags().GetString("location")
	if location != "" {
		loc, err := locations.Lookup(location)
		if err != nil {
			return model.QueryBounds{}, err
		}
		b := loc.Bounds(token)
		if err := b.Validate(); err != nil {
			return model.QueryBounds{}, err
		}
		return b, nil
	}

	lat1, _ := cmd.Flags().GetString("lat1")
	lat2, _ := cmd.Flags().GetString("lat2")
	long1, _ := cmd.Flags().GetString("long1")
	long2, _ := cmd.Flags().GetString("long2")

	if lat1 == "" || lat2 == "" || long1 == "" || long2 == "" {
		return model.QueryBounds{}, eris.New("search: provide --location or all of --lat1, --lat2, --long1, --long2")
	}

	return model.ParseBounds(lat1, lat2, long1, long2, token, "")
}

// reportOutcome prints the user-facing result line. All three outcomes exit
// normally once persistence has finished; only the wording differs.
func reportOutcome(sess *retrieve.Session, path string) {
	switch sess.Outcome {
	case retrieve.OutcomeCompleted:
		if path == "" {
			fmt.Println("No results were retrieved.")
			return
		}
		fmt.Printf("Retrieved %d results across %d pages, saved to %s\n", len(sess.Records), sess.Pages, path)
	case retrieve.OutcomeFailed:
		fmt.Fprintf(os.Stderr, "Session ended early: %v\n", sess.Err)
		if path != "" {
			fmt.Printf("Saved %d results retrieved before the failure to %s\n", len(sess.Records), path)
		} else {
			fmt.Println("No results had been retrieved before the failure.")
		}
	case retrieve.OutcomeInterrupted:
		fmt.Println("Stopped at your request.")
		if path != "" {
			fmt.Printf("Saved %d results retrieved before the stop to %s\n", len(sess.Records), path)
		} else {
			fmt.Println("No results had been retrieved before the stop.")
		}
	}
}

// formatRecords writes the retrieved records as a console table.
func formatRecords(out io.Writer, records []model.NetworkRecord) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NETID\tSSID\tSIGNAL\tLAT\tLONG\tLAST_SEEN\tTYPE")
	for _, r := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%g\t%s\t%s\n",
			r.MACAddress, r.SSID, r.Signal, r.Latitude, r.Longitude, r.LastSeen, r.Type)
	}
	_ = w.Flush()
}

func init() {
	searchCmd.Flags().String("location", "", "predefined location name (see 'wiglectl locations')")
	searchCmd.Flags().String("lat1", "", "lower latitude bound")
	searchCmd.Flags().String("lat2", "", "upper latitude bound")
	searchCmd.Flags().String("long1", "", "lower longitude bound")
	searchCmd.Flags().String("long2", "", "upper longitude bound")
	searchCmd.Flags().String("api-token", "", "WiGLE API token (overrides WIGLE_API_TOKEN)")
	searchCmd.Flags().String("kind", "", "catalog to search: network, bluetooth, or cell")
	searchCmd.Flags().Bool("onlymine", false, "only observations first discovered by this account")
	searchCmd.Flags().String("lastupdt", "", "only observations updated after yyyyMMdd[hhmm[ss]]")
	searchCmd.Flags().String("out-dir", "", "directory for the result file")
	searchCmd.Flags().String("format", "", "result file format: csv or xlsx")
	searchCmd.Flags().Bool("quiet", false, "skip the console table of results")
	rootCmd.AddCommand(searchCmd)
}
