package cli

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pixelize/internal/colour"
	"github.com/jmylchreest/pixelize/internal/compression"
	"github.com/jmylchreest/pixelize/internal/image"
	"github.com/jmylchreest/pixelize/internal/pipeline"
	"github.com/jmylchreest/pixelize/internal/surface"
	"github.com/jmylchreest/pixelize/internal/util/imagecache"
)

// renderOptions holds the render command flags that are not pipeline settings.
type renderOptions struct {
	output   string
	tilesOut string
	format   reportFormat
	top      int
	preview  bool
	noColour bool
	cacheDir string
}

func newRenderCmd() *cobra.Command {
	cfg := pipeline.DefaultConfig().WithEnv()
	opts := renderOptions{format: reportTable}

	cmd := &cobra.Command{
		Use:   "render <image>",
		Short: "Render an image as pixel art",
		Long: `Render an image as pixel art.

The image is fitted onto the drawing surface (its natural size unless --width
or --height is given) and split into --rows rows of tiles. Columns follow the
surface aspect ratio. Each tile is coloured from five sample points and then
reduced with the selected strategy:

  palette   snap to the nearest colour of a fixed palette (default: retro)
  quantize  reduce every channel to a coarser bit depth (--level, --light-boost)
  none      keep the averaged tile colour

Mostly transparent tiles are painted white. A grid is drawn over the tiles,
either dashed ("stitch") or solid.

The input may be a local file, a directory (a random image is picked), an
HTTPS URL, a compressed image (.gz, .zst, .xz, .bz2) or a zip/tar archive.

Environment:
  PIXELIZE_PALETTE       default palette name
  PIXELIZE_GRID_COLOUR   default grid colour
  PIXELIZE_GRID_STYLE    default grid style

Examples:
  # Render with the defaults (80 rows, retro palette, darkgray stitch grid)
  pixelize render photo.jpg -o photo-pixel.png

  # Coarser grid with a Game Boy palette and solid black lines
  pixelize render --rows 32 --palette gameboy --grid-colour black --grid-style solid photo.jpg

  # Bit-depth quantization with a light boost, clamped to valid colours
  pixelize render --strategy quantize --level 3 --light-boost 8 --clamp photo.jpg

  # Export one pixel per tile and print the colour report as JSON
  pixelize render --tiles-out tiles.png --format json photo.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&cfg.Rows, "rows", "r", cfg.Rows, "number of tile rows")
	enumVar(cmd, &cfg.Strategy, colour.ValidStrategies(), "strategy", "colour reduction strategy")
	flags.StringVarP(&cfg.Palette, "palette", "p", cfg.Palette, fmt.Sprintf("built-in palette (%s)", strings.Join(colour.BuiltinPaletteNames(), ", ")))
	flags.StringVar(&cfg.PaletteFile, "palette-file", "", "load the palette from a text or JSON file")
	enumVar(cmd, &cfg.Metric, colour.ValidMetrics(), "metric", "palette matching distance")
	flags.IntVarP(&cfg.Quantize.Level, "level", "l", cfg.Quantize.Level, "quantization level (0-8, higher keeps more colours)")
	flags.IntVar(&cfg.Quantize.LightBoost, "light-boost", 0, "brighten quantized colours")
	flags.BoolVar(&cfg.Quantize.Clamp, "clamp", false, "clamp quantized channels to 0-255")
	flags.StringVar(&cfg.GridColour, "grid-colour", cfg.GridColour, "grid line colour (CSS name or hex)")
	enumVar(cmd, &cfg.GridStyle, surface.ValidLineStyles(), "grid-style", "grid line style")
	flags.IntVar(&cfg.Width, "width", 0, "surface width in pixels (0: natural size)")
	flags.IntVar(&cfg.Height, "height", 0, "surface height in pixels (0: natural size)")

	flags.StringVarP(&opts.output, "output", "o", "", "output image (default: <name>-pixel.png)")
	flags.StringVar(&opts.tilesOut, "tiles-out", "", "also write one pixel per tile to this image")
	enumVar(cmd, &opts.format, validReportFormats(), "format", "colour report format")
	flags.IntVar(&opts.top, "top", 0, "limit the colour report to the N most frequent colours (0: all)")
	flags.BoolVar(&opts.preview, "preview", false, "always show colour swatches in the report")
	flags.BoolVar(&opts.noColour, "no-colour", false, "never show colour swatches in the report")
	flags.StringVar(&opts.cacheDir, "cache-dir", "", "directory for downloaded images (default: user cache)")

	_ = cmd.RegisterFlagCompletionFunc("palette", cobra.FixedCompletions(colour.BuiltinPaletteNames(), cobra.ShellCompDirectiveNoFileComp))
	cmd.MarkFlagsMutuallyExclusive("preview", "no-colour")

	return cmd
}

// runRender executes the render command.
func runRender(cmd *cobra.Command, input string, cfg pipeline.Config, opts renderOptions) error {
	logger := newLogger(cmd)
	ctx := cmd.Context()

	if err := image.ValidateImagePath(input); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	// Fail on bad parameters before loading anything.
	if err := cfg.Validate(); err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = defaultOutputPath(input)
	}
	if _, err := image.FormatFromPath(output); err != nil {
		return err
	}

	logger.Debug("loading image", "path", input)
	loader := image.NewSmartLoader(logger.Named("loader"), imagecache.CacheOptions{CacheDir: opts.cacheDir})
	img, err := loader.Load(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	orchestrator := pipeline.New(cfg, pipeline.WithLogger(logger.Named("pipeline")))
	orchestrator.SetImage(img)
	st, err := orchestrator.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to render image: %w", err)
	}

	if err := image.Save(output, orchestrator.Surface()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("wrote image", "path", output)

	if opts.tilesOut != "" {
		if err := image.Save(opts.tilesOut, st.Grid.Image()); err != nil {
			return fmt.Errorf("failed to write tile image: %w", err)
		}
		logger.Info("wrote tile image", "path", opts.tilesOut)
	}

	out := cmd.OutOrStdout()
	preview := opts.preview || (!opts.noColour && colour.SupportsANSIColours(out))
	report, err := formatFrequency(st.Frequency, opts.format, opts.top, preview)
	if err != nil {
		return err
	}
	fmt.Fprint(out, report)

	return nil
}

// defaultOutputPath derives "<name>-pixel.png" in the working directory from
// a file path or URL. Image, compression and archive extensions are dropped.
func defaultOutputPath(input string) string {
	base := filepath.Base(input)
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		base = path.Base(strings.SplitN(input, "?", 2)[0])
	}

	for strippable(base) {
		ext := filepath.Ext(base)
		if ext == "" || ext == base {
			break
		}
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." || base == "/" {
		base = "image"
	}
	return base + "-pixel.png"
}

func strippable(name string) bool {
	if f, _ := compression.DetectFormat(name); f != compression.FormatNone {
		return true
	}
	return image.IsImageFile(name) || compression.IsArchive(name)
}
