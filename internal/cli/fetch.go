package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ablens/ablens/internal/config"
	"github.com/ablens/ablens/internal/variant"
	"github.com/spf13/cobra"
)

var flagFetchJSON bool

// fetchCmd resolves variant sources and prints what would be analyzed,
// without calling any model provider.
var fetchCmd = &cobra.Command{
	Use:   "fetch [url...]",
	Short: "Resolve variant sources without analyzing",
	Long:  "Assemble variants from --image, --folder, and --github sources (or bare GitHub URL arguments) and list them, so fetch problems and grouping can be inspected before spending a model call.",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		flagGitHub = append(flagGitHub, args...)
		if len(flagImages)+len(flagFolders)+len(flagGitHub) == 0 {
			fmt.Fprintln(os.Stderr, "Error: no variant sources; pass --image, --folder, or --github")
			exitCode = ExitUsageError
			return nil
		}

		var coll variant.Collection
		failures := collectVariants(context.Background(), cfg, &coll)

		variants := coll.All()
		if flagFetchJSON {
			data, err := json.MarshalIndent(variants, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(data))
		} else {
			printVariantSummary(variants)
		}

		if failures > 0 && exitCode == ExitSuccess {
			exitCode = ExitRuntimeError
		}
		return nil
	},
}

func printVariantSummary(variants []variant.Variant) {
	fmt.Fprintf(os.Stdout, "%d variant(s) resolved\n", len(variants))
	for _, v := range variants {
		switch v.Kind {
		case variant.KindImage:
			fmt.Fprintf(os.Stdout, "\n%s — screenshot (%s)\n", v.DisplayName, v.MediaType)
		default:
			fmt.Fprintf(os.Stdout, "\n%s — code, %d file(s)", v.DisplayName, len(v.Files))
			if v.Meta.Owner != "" {
				fmt.Fprintf(os.Stdout, " from %s/%s@%s", v.Meta.Owner, v.Meta.Repo, v.Meta.Branch)
			}
			if v.Meta.PRNumber > 0 {
				fmt.Fprintf(os.Stdout, " (PR #%d, %s)", v.Meta.PRNumber, v.Origin)
			}
			if v.Meta.FolderName != "" {
				fmt.Fprintf(os.Stdout, " [%s]", v.Meta.FolderName)
			}
			fmt.Fprintln(os.Stdout)
			for _, f := range v.Files {
				fmt.Fprintf(os.Stdout, "  %s\n", f.RelativePath)
			}
		}
	}
}

func init() {
	addSourceFlags(fetchCmd)
	fetchCmd.Flags().BoolVar(&flagFetchJSON, "json", false, "Print resolved variants as JSON")
}
