package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/scrollkit/internal/config"
	"github.com/rshade/scrollkit/internal/demo"
	"github.com/rshade/scrollkit/internal/logging"
	"github.com/rshade/scrollkit/internal/virtual"
)

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// ErrUnsupportedOutput is returned for an unknown --output value.
var ErrUnsupportedOutput = errors.New("unsupported output format")

// windowReport is the JSON form of one computed window.
type windowReport struct {
	Mode  string `json:"mode"`
	Items int    `json:"items"`
	virtual.Frame
}

// newWindowCmd creates the window command, which computes a single frame
// over a generated dataset.
func newWindowCmd(a *app) *cobra.Command {
	var (
		offset int
		extent int
		output string
	)

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Compute the visible and rendered range for one viewport",
		Long: `Generates a dataset, places a viewport over it and prints the window:
the visible range, the rendered range including the overscan buffer, and the
slot bound to every rendered item. In dynamic mode every row is sized by its
line count.`,
		Example: `  # 10,000 rows of 20 cells, viewport of 100 cells at offset 500
  scrollkit window --mode fixed --item-size 20 --items 10000 --extent 100 --offset 500

  # Same as JSON
  scrollkit window --mode fixed --item-size 20 --items 10000 --extent 100 --offset 500 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != outputTable && output != outputJSON {
				return fmt.Errorf("%w: %s", ErrUnsupportedOutput, output)
			}
			frame, err := computeWindow(a.cfg, virtual.Viewport{Offset: offset, Extent: extent})
			if err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Debug().
				Stringer("visible", frame.Window.Visible).
				Stringer("rendered", frame.Window.Rendered).
				Msg("window computed")

			report := windowReport{Mode: a.cfg.List.Mode, Items: a.cfg.Demo.Items, Frame: frame}
			if output == outputJSON {
				return renderWindowJSON(cmd.OutOrStdout(), report)
			}
			return renderWindowTable(cmd.OutOrStdout(), report)
		},
	}

	addListFlags(cmd.Flags())
	addDatasetFlags(cmd.Flags())
	cmd.Flags().IntVar(&offset, "offset", 0, "scroll offset in cells")
	cmd.Flags().IntVar(&extent, "extent", 24, "viewport size in cells")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table or json")

	return cmd
}

// computeWindow builds the configured list over generated rows and renders
// one frame at vp, with the offset clamped to the content.
func computeWindow(cfg *config.Config, vp virtual.Viewport) (virtual.Frame, error) {
	listCfg, err := cfg.List.ToVirtual()
	if err != nil {
		return virtual.Frame{}, fmt.Errorf("invalid list configuration: %w", err)
	}

	rows := demo.Generate(demo.Options{Count: cfg.Demo.Items, Seed: cfg.Demo.Seed, MaxLines: cfg.Demo.MaxLines})
	list, err := virtual.NewList(listCfg, demo.MeasuredItems(rows))
	if err != nil {
		return virtual.Frame{}, err
	}

	vp.Offset = virtual.ClampOffset(list.Sizes(), vp.Offset, vp.Extent)
	return list.Render(vp), nil
}

func renderWindowJSON(w io.Writer, report windowReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encoding window: %w", err)
	}
	return nil
}

func renderWindowTable(w io.Writer, report windowReport) error {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "Mode:      %s\n", report.Mode)
	p.Fprintf(w, "Items:     %d (content size %d)\n", report.Items, report.Total)
	p.Fprintf(w, "Viewport:  offset %d, extent %d\n", report.Viewport.Offset, report.Viewport.Extent)
	p.Fprintf(w, "Visible:   %s\n", report.Window.Visible)
	p.Fprintf(w, "Rendered:  %s\n", report.Window.Rendered)
	p.Fprintf(w, "Slots:     %d\n", report.Recycler.Pool)

	if len(report.Cells) == 0 {
		return nil
	}

	p.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tINDEX\tOFFSET\tSIZE\tID")
	for _, c := range report.Cells {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\n", c.Slot, c.Index, c.Offset, c.Size, c.Item.ID)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing window table: %w", err)
	}
	return nil
}
