package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pugetsound-wardrive/wiglectl/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert saved session files into other formats",
}

var exportKMLCmd = &cobra.Command{
	Use:   "kml [file.csv ...]",
	Short: "Convert session CSV files to KML placemark files",
	Long: `Converts saved session CSV files into KML, one placemark per observation.
With file arguments, each file is converted to a sibling .kml; with --dir,
every CSV in the directory is converted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")

		if dir != "" {
			if len(args) > 0 {
				return eris.New("export kml: --dir and file arguments are mutually exclusive")
			}
			written, err := export.ConvertDir(dir)
			if err != nil {
				return err
			}
			for _, p := range written {
				fmt.Println(p)
			}
			return nil
		}

		if len(args) == 0 {
			return eris.New("export kml: provide CSV files or --dir")
		}

		for _, csvPath := range args {
			if !strings.HasSuffix(csvPath, ".csv") {
				return eris.Errorf("export kml: %s is not a .csv file", csvPath)
			}
			kmlPath := strings.TrimSuffix(csvPath, ".csv") + ".kml"
			n, err := export.CSVToKML(csvPath, kmlPath)
			if err != nil {
				return err
			}
			fmt.Printf("%s (%d placemarks)\n", kmlPath, n)
		}
		return nil
	},
}

func init() {
	exportKMLCmd.Flags().String("dir", "", "convert every CSV file in this directory")
	exportCmd.AddCommand(exportKMLCmd)
	rootCmd.AddCommand(exportCmd)
}
