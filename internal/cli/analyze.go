package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ablens/ablens/internal/analyze"
	"github.com/ablens/ablens/internal/config"
	"github.com/ablens/ablens/internal/github"
	"github.com/ablens/ablens/internal/output"
	"github.com/ablens/ablens/internal/providers"
	"github.com/ablens/ablens/internal/source"
	"github.com/ablens/ablens/internal/variant"
	"github.com/spf13/cobra"
)

// Shared variant-source and analysis flags
var (
	flagImages             []string
	flagFolders            []string
	flagGitHub             []string
	flagProvider           string
	flagModel              string
	flagFormat             string
	flagOut                string
	flagCriteria           string
	flagNoRedact           bool
	flagNoCache            bool
	flagMaxFilesPerVariant int
	flagMaxTotalFiles      int
	flagFetchConcurrency   int
)

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&flagImages, "image", nil, "Screenshot file to add as a variant (repeatable)")
	cmd.Flags().StringArrayVar(&flagFolders, "folder", nil, "Local folder to add as a code variant (repeatable)")
	cmd.Flags().StringArrayVar(&flagGitHub, "github", nil, "GitHub repo, branch, tree, or PR URL (repeatable)")
	cmd.Flags().IntVar(&flagMaxFilesPerVariant, "max-files-per-variant", 0, "Maximum files fetched per variant")
	cmd.Flags().IntVar(&flagMaxTotalFiles, "max-total-files", 0, "Maximum files fetched across all variants of one URL")
	cmd.Flags().IntVar(&flagFetchConcurrency, "fetch-concurrency", 0, "Concurrent file fetches per variant")
}

func addAnalyzeFlags(cmd *cobra.Command) {
	addSourceFlags(cmd)
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (anthropic, openai, gemini, ollama)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name (must support vision for image variants)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flagCriteria, "criteria", "", "Criteria file steering the comparison")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Skip the response cache")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagCriteria != "" {
		m["criteriaFile"] = flagCriteria
	}
	if flagMaxFilesPerVariant > 0 {
		m["maxFilesPerVariant"] = fmt.Sprintf("%d", flagMaxFilesPerVariant)
	}
	if flagMaxTotalFiles > 0 {
		m["maxTotalFiles"] = fmt.Sprintf("%d", flagMaxTotalFiles)
	}
	if flagFetchConcurrency > 0 {
		m["fetchConcurrency"] = fmt.Sprintf("%d", flagFetchConcurrency)
	}
	if flagNoCache {
		m["noCache"] = "true"
	}
	if flagNoRedact {
		m["noRedact"] = "true"
	}
	return m
}

func capsFromConfig(cfg config.Config) source.Caps {
	return source.Caps{
		MaxFilesPerVariant: cfg.MaxFilesPerVariant,
		MaxTotalFiles:      cfg.MaxTotalFiles,
		FetchConcurrency:   cfg.FetchConcurrency,
	}
}

// collectVariants resolves every --image, --folder, and --github flag into
// the collection, in that flag-group order. Per-source failures are
// reported and counted; a bad URL is a usage error, everything else
// degrades to a warning so surviving sources still get analyzed.
func collectVariants(ctx context.Context, cfg config.Config, coll *variant.Collection) (failures int) {
	caps := capsFromConfig(cfg)

	for _, path := range flagImages {
		v, err := variant.FromImageFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			failures++
			continue
		}
		coll.Add(v)
	}

	for _, dir := range flagFolders {
		v, err := source.FromLocalFolder(dir, caps)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			failures++
			continue
		}
		coll.Add(v)
	}

	var ghClient *github.Client
	for _, raw := range flagGitHub {
		ref, err := github.ParseSourceURL(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			failures++
			continue
		}
		if ghClient == nil {
			ghClient = github.NewClient()
		}

		if ref.PullRequest != nil {
			variants, err := source.ExpandPullRequest(ctx, ghClient, *ref.PullRequest, "", caps)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
				failures++
			}
			for _, v := range variants {
				coll.Add(v)
			}
			continue
		}

		files, err := source.FetchTree(ctx, ghClient, *ref.Repo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			failures++
			continue
		}
		for _, v := range source.GroupVariants(ctx, ghClient, *ref.Repo, files, caps) {
			coll.Add(v)
		}
	}

	return failures
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compare UI variants with an LLM",
	Long:  "Assemble variants from --image, --folder, and --github sources, send them to the configured provider, and print the comparative verdict.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		if len(flagImages)+len(flagFolders)+len(flagGitHub) == 0 {
			fmt.Fprintln(os.Stderr, "Error: no variant sources; pass --image, --folder, or --github")
			exitCode = ExitUsageError
			return nil
		}

		if !cfg.Privacy.RedactSecrets {
			fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
		}

		ctx := context.Background()

		var coll variant.Collection
		collectVariants(ctx, cfg, &coll)

		criteria, err := analyze.LoadCriteria(cfg.CriteriaFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}

		result, err := analyze.Run(ctx, coll.All(), cfg, analyze.Options{
			RedactSecrets: cfg.Privacy.RedactSecrets,
			Criteria:      criteria,
		})
		if err != nil {
			var ive *analyze.InsufficientVariantsError
			switch {
			case errors.As(err, &ive):
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitUsageError
			case providers.IsAuthError(err):
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitAuthError
			default:
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitRuntimeError
			}
			return nil
		}

		if err := output.WriteReport(result, cfg.Format, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		return nil
	},
}

func init() {
	addAnalyzeFlags(analyzeCmd)
}
