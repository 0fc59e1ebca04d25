package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"plugin-browser/cmd/browsectl/internal/output"
	"plugin-browser/domain"
	"plugin-browser/driver/image_probe"
	"plugin-browser/widget"
	"plugin-browser/widget/preview"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Page through the plugin catalog",
	Long: `Fetch one or more pages of plugins through the proxy.

Each sort mode given to --sort runs as an independent browser widget with
its own paging and error state. With --preview-only, only plugins whose
first screenshot loads are kept.

Examples:
  browsectl browse
  browsectl browse --sort popular,new --per-page 6
  browsectl browse --search seo --pages 3
  browsectl browse --preview-only --json`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().String("search", "", "search term")
	browseCmd.Flags().String("sort", "", "comma-separated sort modes: popular, new, updated")
	browseCmd.Flags().Int("per-page", 0, "plugins per page (default from config)")
	browseCmd.Flags().Int("pages", 1, "number of pages to load")
	browseCmd.Flags().Bool("preview-only", false, "keep only plugins with a loadable screenshot")
	browseCmd.Flags().Int("retries", 0, "retries per failed page")
	browseCmd.Flags().Bool("json", false, "output in JSON format")
}

type browseView struct {
	ID           string               `json:"id"`
	Sort         string               `json:"sort"`
	Search       string               `json:"search,omitempty"`
	Page         int                  `json:"page"`
	TotalMatches int                  `json:"total_matches"`
	HasMorePages bool                 `json:"has_more_pages"`
	Plugins      []domain.CatalogItem `json:"plugins"`
	Error        string               `json:"error,omitempty"`
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	printer := newPrinter(cmd)

	search, _ := cmd.Flags().GetString("search")
	sortFlag, _ := cmd.Flags().GetString("sort")
	perPage, _ := cmd.Flags().GetInt("per-page")
	pages, _ := cmd.Flags().GetInt("pages")
	previewOnly, _ := cmd.Flags().GetBool("preview-only")
	retries, _ := cmd.Flags().GetInt("retries")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if perPage <= 0 {
		perPage = cfg.Browse.PerPage
	}
	if pages < 1 {
		pages = 1
	}
	if sortFlag == "" {
		sortFlag = cfg.Browse.Sort
	}
	modes, err := parseSortModes(sortFlag)
	if err != nil {
		return err
	}

	client := newBrowseClient()
	probe := image_probe.NewProber(&http.Client{}, cfg.Preview.UserAgent)

	registry := widget.NewRegistry()
	defer registry.CloseAll()

	for _, mode := range modes {
		ctrl := widget.NewController(client, probe,
			widget.WithPageSize(perPage),
			widget.WithSortMode(mode),
			widget.WithSearch(search),
			widget.WithPreviewOnly(previewOnly),
			widget.WithLogger(cliLog),
			widget.WithFilterOptions(
				preview.WithProbeTimeout(cfg.Preview.ProbeTimeout),
				preview.WithBatchSize(cfg.Preview.BatchSize),
				preview.WithBatchPause(cfg.Preview.BatchPause),
			),
		)
		if err := registry.Register(mode.String(), ctrl); err != nil {
			return err
		}
	}

	// widgets are independent; one failing never stops the others
	var g errgroup.Group
	for _, id := range registry.IDs() {
		ctrl, _ := registry.Get(id)
		g.Go(func() error {
			loadPages(ctx, ctrl, pages, retries)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	views := make([]browseView, 0, len(modes))
	failed := 0
	for _, id := range registry.IDs() {
		ctrl, _ := registry.Get(id)
		st := ctrl.State()
		view := browseView{
			ID:           id,
			Sort:         st.SortMode.String(),
			Search:       st.Search,
			Page:         st.CurrentPage,
			TotalMatches: st.TotalMatches,
			HasMorePages: st.HasMorePages,
			Plugins:      st.Items,
		}
		if view.Plugins == nil {
			view.Plugins = []domain.CatalogItem{}
		}
		if st.Err != nil {
			view.Error = st.Err.Message
			failed++
		}
		views = append(views, view)

		if !jsonOutput {
			if err := renderState(printer, id, st); err != nil {
				return err
			}
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(views); err != nil {
			return err
		}
	}

	if failed == len(views) {
		return errors.New("every browse request failed")
	}
	return nil
}

// loadPages fetches the first page and then up to pages-1 more, retrying
// each failed request up to retries times.
func loadPages(ctx context.Context, ctrl *widget.Controller, pages, retries int) {
	err := withRetries(ctx, ctrl, retries, ctrl.FetchPage(ctx, false))
	for i := 1; i < pages && err == nil; i++ {
		if !ctrl.State().HasMorePages {
			return
		}
		err = withRetries(ctx, ctrl, retries, ctrl.LoadMore(ctx))
	}
}

func withRetries(ctx context.Context, ctrl *widget.Controller, retries int, err error) error {
	var browseErr *widget.BrowseError
	for attempt := 0; attempt < retries && errors.As(err, &browseErr); attempt++ {
		cliLog.Debug("retrying browse request", "attempt", attempt+1, "kind", browseErr.Kind)
		err = ctrl.Retry(ctx)
	}
	return err
}

func renderState(printer *output.Printer, id string, st widget.State) error {
	title := fmt.Sprintf("%s plugins", strings.ToUpper(id[:1])+id[1:])
	if st.Search != "" {
		title += fmt.Sprintf(" matching %q", st.Search)
	}
	printer.Header(title)

	if st.Err != nil {
		printer.Error("%s", st.Err.Message)
		if len(st.Items) > 0 {
			printer.Info("Showing the %d plugins loaded before the failure", len(st.Items))
		}
	}
	if len(st.Items) == 0 {
		if st.Err == nil {
			printer.Info("No plugins found")
		}
		return nil
	}

	headers := []string{"#", "Slug", "Name", "Rating", "Installs", "Updated"}
	if st.PreviewOnly {
		headers = append(headers, "Preview")
	}
	table := output.NewTable(printer.Out(), headers)
	for i, item := range st.Items {
		row := []string{
			strconv.Itoa(i + 1),
			item.Slug,
			item.Name,
			formatRating(item.Rating, item.NumRatings),
			formatInstalls(item.ActiveInstalls),
			item.LastUpdated,
		}
		if st.PreviewOnly {
			available, known := st.PreviewAvailability[item.Slug]
			row = append(row, printer.Availability(available, known))
		}
		table.AddRow(row)
	}
	if err := table.Render(); err != nil {
		return err
	}

	printer.Print("Showing %d of %d plugins (page %d)", len(st.Items), st.TotalMatches, st.CurrentPage)
	if st.HasMorePages {
		printer.Print("%s", printer.Dim("More pages available: use --pages to load them"))
	}
	return nil
}

func parseSortModes(s string) ([]domain.BrowseMode, error) {
	var modes []domain.BrowseMode
	seen := make(map[domain.BrowseMode]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		mode := domain.BrowseMode(part)
		switch mode {
		case domain.BrowsePopular, domain.BrowseNew, domain.BrowseUpdated:
		default:
			return nil, fmt.Errorf("unknown sort mode %q (valid: popular, new, updated)", part)
		}
		if !seen[mode] {
			seen[mode] = true
			modes = append(modes, mode)
		}
	}
	if len(modes) == 0 {
		modes = append(modes, domain.BrowsePopular)
	}
	return modes, nil
}

// formatRating converts the 0-100 rating into stars out of five.
func formatRating(rating, numRatings int) string {
	if numRatings == 0 && rating == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f/5 (%d)", float64(rating)/20, numRatings)
}

func formatInstalls(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%dM+", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%dK+", n/1_000)
	default:
		return strconv.Itoa(n)
	}
}
