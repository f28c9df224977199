package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/pixelize/internal/colour"
)

// reportFormat selects how the colour frequency report is printed.
type reportFormat string

const (
	reportTable reportFormat = "table"
	reportHex   reportFormat = "hex"
	reportJSON  reportFormat = "json"
	reportNone  reportFormat = "none"
)

func validReportFormats() []reportFormat {
	return []reportFormat{reportTable, reportHex, reportJSON, reportNone}
}

// formatFrequency renders the frequency index. top limits the number of
// entries for table and hex output; zero prints all of them.
func formatFrequency(fi *colour.FrequencyIndex, format reportFormat, top int, preview bool) (string, error) {
	switch format {
	case reportTable:
		return formatFrequencyTable(fi, top, preview), nil
	case reportHex:
		return formatFrequencyHex(fi, top, preview), nil
	case reportJSON:
		data, err := fi.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case reportNone:
		return "", nil
	default:
		return "", fmt.Errorf("unknown report format: %s", format)
	}
}

func entries(fi *colour.FrequencyIndex, top int) []colour.FrequencyEntry {
	if top > 0 {
		return fi.Top(top)
	}
	return fi.Entries()
}

func formatFrequencyTable(fi *colour.FrequencyIndex, top int, preview bool) string {
	headers := []string{"#", "Hex", "RGB", "Tiles", "Share"}
	if preview {
		headers = append([]string{"Swatch"}, headers...)
	}

	table := NewTable(headers)
	offset := len(headers) - 5
	table.AlignRight(offset)
	table.AlignRight(offset + 3)
	table.AlignRight(offset + 4)

	total := max(fi.Total(), 1)
	for i, e := range entries(fi, top) {
		row := []string{
			strconv.Itoa(i + 1),
			e.Colour.Hex(),
			fmt.Sprintf("%d,%d,%d", e.Colour.R, e.Colour.G, e.Colour.B),
			strconv.Itoa(e.Count),
			fmt.Sprintf("%.1f%%", 100*float64(e.Count)/float64(total)),
		}
		if preview {
			row = append([]string{colour.ColourPreview(e.Colour, 6)}, row...)
		}
		table.AddRow(row)
	}

	var b strings.Builder
	b.WriteString(table.Render())
	fmt.Fprintf(&b, "\n%d tiles, %d colours, entropy %.2f bits\n", fi.Total(), fi.Len(), fi.Entropy())
	return b.String()
}

func formatFrequencyHex(fi *colour.FrequencyIndex, top int, preview bool) string {
	var b strings.Builder
	for _, e := range entries(fi, top) {
		if preview {
			fmt.Fprintf(&b, "%s %d\n", colour.ColourPreviewWithText(e.Colour, e.Colour.Hex(), 9), e.Count)
			continue
		}
		fmt.Fprintf(&b, "%s %d\n", e.Colour.Hex(), e.Count)
	}
	return b.String()
}
