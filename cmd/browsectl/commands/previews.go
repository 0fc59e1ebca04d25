package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"plugin-browser/cmd/browsectl/internal/output"
	"plugin-browser/domain"
	"plugin-browser/driver/image_probe"
	"plugin-browser/widget/preview"
)

var previewsCmd = &cobra.Command{
	Use:   "previews <slug>",
	Short: "Walk the candidate screenshots of a plugin",
	Long: `List the guessed screenshot URLs for a plugin in viewer order.

Screenshot URLs are guessed from the slug, so some may not exist. With
--probe every candidate is fetched and reported as loadable or not.

Examples:
  browsectl previews contact-form-7
  browsectl previews akismet --start 3 --probe`,
	Args: cobra.ExactArgs(1),
	RunE: runPreviews,
}

func init() {
	rootCmd.AddCommand(previewsCmd)

	previewsCmd.Flags().Int("start", 1, "1-based screenshot to start from")
	previewsCmd.Flags().Bool("probe", false, "check whether each screenshot loads")
	previewsCmd.Flags().Bool("reverse", false, "walk backwards from the start screenshot")
}

func runPreviews(cmd *cobra.Command, args []string) error {
	slug := args[0]
	start, _ := cmd.Flags().GetInt("start")
	probe, _ := cmd.Flags().GetBool("probe")
	reverse, _ := cmd.Flags().GetBool("reverse")
	printer := newPrinter(cmd)

	var viewer preview.Viewer
	item := domain.CatalogItem{Slug: slug, PreviewImages: preview.CandidateURLs(slug)}
	if err := viewer.Open(item, start-1); err != nil {
		return fmt.Errorf("open previews for %q: %w", slug, err)
	}
	defer viewer.Close()

	var prober *image_probe.Prober
	if probe {
		prober = image_probe.NewProber(&http.Client{}, cfg.Preview.UserAgent)
	}

	printer.Header(fmt.Sprintf("Screenshots for %s", viewer.Slug()))

	headers := []string{"Position", "URL"}
	if probe {
		headers = append(headers, "Loads")
	}
	table := output.NewTable(printer.Out(), headers)

	_, total := viewer.Position()
	loadable := 0
	url := viewer.Current()
	for range total {
		pos, _ := viewer.Position()
		row := []string{fmt.Sprintf("%d/%d", pos, total), url}
		if probe {
			ok := probeOne(cmd.Context(), prober, url)
			if ok {
				loadable++
			}
			row = append(row, printer.Availability(ok, true))
		}
		table.AddRow(row)
		if reverse {
			url = viewer.Prev()
		} else {
			url = viewer.Next()
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if probe {
		printer.Print("%d of %d candidates load", loadable, total)
	}
	if !viewer.HasNavigation() {
		printer.Print("%s", printer.Dim("Single screenshot, no navigation"))
	}
	return nil
}

func probeOne(ctx context.Context, prober *image_probe.Prober, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, cfg.Preview.ProbeTimeout)
	defer cancel()

	if err := prober.Probe(ctx, url); err != nil {
		cliLog.Debug("screenshot probe failed", "url", url, "error", err)
		return false
	}
	return true
}
