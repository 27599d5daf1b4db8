package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agniro/database"
	"agniro/entities"
	"agniro/pkg/climate"
	"agniro/pkg/crop/seed"
	"agniro/pkg/logger"
	"agniro/pkg/months"
	"agniro/pkg/session"
	kvRepoImp "agniro/pkg/storage/repositoryImp"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "cropctl",
		Short:         "Crop calendar tools for the agniro farm planner",
		SilenceUsage:  true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log storage activity")
	logFor := func() *zap.Logger {
		if !verbose {
			return zap.NewNop()
		}
		return logger.Must("dev", "debug")
	}
	root.AddCommand(newMonthsCmd(), newSeedCmd(), newCalendarCmd(logFor))
	return root
}

func newMonthsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "months [text]",
		Short: "Parse free-text month ranges such as \"Mar-Apr, Sep\"",
		Example: `  cropctl months "Jun-Jul (1st season), Nov-Dec (2nd season)"
  cropctl months --json "Nov–Jan"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms := months.Parse(strings.Join(args, " "))
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(ms)
			}
			if len(ms) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no months)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), months.Format(ms))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON array")
	return cmd
}

func newSeedCmd() *cobra.Command {
	var region string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "List the built-in crop collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			crops, err := byRegion(seed.Crops(), region)
			if err != nil {
				return err
			}
			return printCrops(cmd.OutOrStdout(), crops)
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "only crops for this region")
	return cmd
}

func newCalendarCmd(logFor func() *zap.Logger) *cobra.Command {
	var out, client, dbPath, region string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Export a crop calendar workbook (.xlsx)",
		Long: `Writes one row per crop with planting (P) and harvest (H) marks for each
month, plus the regional rainfall table. Without --client the built-in crop
collection is exported; with it, that client's stored crops are read from --db.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			crops := seed.Crops()
			if client != "" {
				log := logFor()
				db, err := database.OpenSQLite(dbPath, log)
				if err != nil {
					return err
				}
				sessions := session.NewRegistry(kvRepoImp.New(db), log, nil)
				crops = sessions.For(client).Crops.List()
			}
			crops, err := byRegion(crops, region)
			if err != nil {
				return err
			}
			buf, err := climate.CalendarWorkbook(crops)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d crops to %s\n", len(crops), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "crop-calendar.xlsx", "output file")
	cmd.Flags().StringVar(&client, "client", "", "client id whose stored crops to export")
	cmd.Flags().StringVar(&dbPath, "db", "agniro.db", "SQLite database used by the server")
	cmd.Flags().StringVar(&region, "region", "", "only crops for this region")
	return cmd
}

func byRegion(crops []entities.Crop, region string) ([]entities.Crop, error) {
	if region == "" {
		return crops, nil
	}
	r := entities.RegionName(region)
	if !r.Valid() {
		return nil, fmt.Errorf("unknown region %q (want one of %v)", region, entities.Regions)
	}
	var out []entities.Crop
	for _, c := range crops {
		if c.Region == r {
			out = append(out, c)
		}
	}
	return out, nil
}

func printCrops(w io.Writer, crops []entities.Crop) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tREGION\tTYPE\tPLANTING\tHARVEST")
	for _, c := range crops {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Region, c.Type,
			orDash(months.Format(c.PlantingMonths)), orDash(months.Format(c.HarvestMonths)))
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
