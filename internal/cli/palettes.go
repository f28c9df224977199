package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pixelize/internal/colour"
)

type palettesOptions struct {
	format   reportFormat
	preview  bool
	noColour bool
}

func newPalettesCmd() *cobra.Command {
	opts := palettesOptions{format: reportTable}

	cmd := &cobra.Command{
		Use:   "palettes [name|file]",
		Short: "List built-in palettes or show the colours of one",
		Long: `List the built-in palettes, or show the colours of a single palette.

The argument is a built-in palette name or a path to a palette file. Palette
files hold one hex colour per line ("#rrggbb" or "colourN=#rrggbb"; blank lines,
"//" lines and "#" lines that are not colours are comments) or the JSON written by
"pixelize palettes <name> --format json".`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return colour.BuiltinPaletteNames(), cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runPalettesList(cmd, opts)
			}
			return runPalettesShow(cmd, args[0], opts)
		},
	}

	enumVar(cmd, &opts.format, []reportFormat{reportTable, reportHex, reportJSON}, "format", "output format")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "always show colour swatches")
	cmd.Flags().BoolVar(&opts.noColour, "no-colour", false, "never show colour swatches")
	cmd.MarkFlagsMutuallyExclusive("preview", "no-colour")

	return cmd
}

func (o palettesOptions) showPreview(cmd *cobra.Command) bool {
	return o.preview || (!o.noColour && colour.SupportsANSIColours(cmd.OutOrStdout()))
}

func runPalettesList(cmd *cobra.Command, opts palettesOptions) error {
	out := cmd.OutOrStdout()
	names := colour.BuiltinPaletteNames()

	switch opts.format {
	case reportJSON:
		parts := make([]string, 0, len(names))
		for _, name := range names {
			p, err := colour.BuiltinPalette(name)
			if err != nil {
				return err
			}
			data, err := p.ToJSON()
			if err != nil {
				return fmt.Errorf("failed to convert to JSON: %w", err)
			}
			parts = append(parts, indent(string(data), "  "))
		}
		fmt.Fprintf(out, "[\n%s\n]\n", strings.Join(parts, ",\n"))
		return nil
	case reportHex:
		for _, name := range names {
			p, err := colour.BuiltinPalette(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n", name, strings.Join(p.ToHex(), " "))
		}
		return nil
	}

	preview := opts.showPreview(cmd)
	table := NewTable([]string{"Name", "Colours", "Preview"})
	table.AlignRight(1)
	for _, name := range names {
		p, err := colour.BuiltinPalette(name)
		if err != nil {
			return err
		}
		table.AddRow([]string{name, strconv.Itoa(p.Len()), strip(p, preview)})
	}
	fmt.Fprint(out, table.Render())
	return nil
}

func runPalettesShow(cmd *cobra.Command, arg string, opts palettesOptions) error {
	p, err := loadPalette(arg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case reportJSON:
		data, err := p.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	case reportHex:
		preview := opts.showPreview(cmd)
		for _, c := range p.All() {
			if preview {
				fmt.Fprintln(out, colour.FormatColourWithPreview(c, 4))
				continue
			}
			fmt.Fprintln(out, c.Hex())
		}
		return nil
	}

	preview := opts.showPreview(cmd)
	headers := []string{"#", "Hex", "RGB"}
	if preview {
		headers = append([]string{"Swatch"}, headers...)
	}
	table := NewTable(headers)
	table.AlignRight(len(headers) - 3)
	for i, c := range p.All() {
		row := []string{strconv.Itoa(i + 1), c.Hex(), fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)}
		if preview {
			row = append([]string{colour.ColourPreview(c, 6)}, row...)
		}
		table.AddRow(row)
	}
	fmt.Fprintf(out, "%s (%d colours)\n\n", p.Name, p.Len())
	fmt.Fprint(out, table.Render())
	return nil
}

// loadPalette resolves a built-in palette name, falling back to a file path.
func loadPalette(arg string) (*colour.Palette, error) {
	p, err := colour.BuiltinPalette(arg)
	if err == nil {
		return p, nil
	}
	if _, statErr := os.Stat(arg); statErr != nil {
		return nil, err
	}
	return colour.LoadPaletteFile(arg)
}

// strip renders a palette as a row of swatches, or hex codes without preview.
func strip(p *colour.Palette, preview bool) string {
	if !preview {
		hex := p.ToHex()
		if len(hex) > 4 {
			hex = append(hex[:4], "...")
		}
		return strings.Join(hex, " ")
	}
	var b strings.Builder
	for _, c := range p.All() {
		b.WriteString(colour.ColourPreview(c, 2))
	}
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
