package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/addonscope/addonscope/pkg/pipeline"
	"github.com/addonscope/addonscope/pkg/report"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	url     string // catalog source URL or local file path
	cache   string // destination path for the downloaded XML
	format  string // output format: "text" or "json"
	output  string // output file path (stdout if empty)
	timeout int    // fetch timeout in seconds
}

// analyzeCommand creates the analyze command: fetch the catalog, parse it,
// and print the summary report.
func (c *CLI) analyzeCommand() *cobra.Command {
	opts := analyzeOpts{format: "text"}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Download and analyze the add-on catalog",
		Long: `Download the add-on catalog XML, parse it, and print a summary report.

The catalog is cached as a flat XML file (overwritten on each run) so the
raw document can be inspected afterwards. The report lists totals, distinct
platforms, OS types and architectures, and the latest version of every
add-on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "text" && opts.format != "json" {
				return fmt.Errorf("invalid format: %q (must be text or json)", opts.format)
			}
			return c.runAnalyze(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "", "catalog XML URL or local file (default: vendor catalog)")
	cmd.Flags().StringVar(&opts.cache, "cache", "", "destination path for the downloaded XML")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text (default), json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().IntVar(&opts.timeout, "timeout", 0, "fetch timeout in seconds")

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, opts *analyzeOpts) error {
	cfg, err := loadUserConfig()
	if err != nil {
		return err
	}

	pipeOpts := pipeline.Options{
		URL:       firstNonEmpty(opts.url, cfg.URL),
		CachePath: firstNonEmpty(opts.cache, cfg.Cache),
	}
	if opts.timeout > 0 {
		pipeOpts.Timeout = time.Duration(opts.timeout) * time.Second
	} else if cfg.TimeoutSeconds > 0 {
		pipeOpts.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if err := pipeOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Fetching catalog "+pipeOpts.URL)
	spinner.Start()
	result, err := newRunner(ctx).Execute(ctx, pipeOpts)
	if err != nil {
		spinner.StopWithError("Catalog analysis failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Analyzed %d add-ons", result.Summary.Total))
	prog.done("Pipeline finished")
	if result.Summary.Total == 0 {
		printWarning("Catalog contains no add-ons")
	}

	var body []byte
	switch opts.format {
	case "json":
		body, err = report.JSON(result.Summary,
			report.WithCatalogPath(result.CatalogPath),
			report.WithSourceURL(pipeOpts.URL))
		if err != nil {
			return err
		}
		body = append(body, '\n')
	default:
		body = []byte(report.Text(result.Summary, result.CatalogPath))
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, body, 0644); err != nil {
			return err
		}
		printSuccess("Report written")
		printDetail("File: %s", opts.output)
		return nil
	}

	if opts.format == "text" {
		printSummaryHeader(result)
	}
	fmt.Print(string(body))
	return nil
}

// printSummaryHeader prints the styled stats line above the text report.
func printSummaryHeader(result *pipeline.Result) {
	fmt.Println(StyleTitle.Render("Add-on catalog summary"))
	printKeyValue("Add-ons", StyleNumber.Render(strconv.Itoa(result.Summary.Total)))
	printKeyValue("Latest versions", StyleNumber.Render(strconv.Itoa(len(result.Summary.Latest))))
	fmt.Println()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
