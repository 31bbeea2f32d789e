package internal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"
	"unsafe"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Durations render as "30s" rather than integer nanoseconds.
func init() {
	jsoniter.RegisterTypeEncoderFunc("time.Duration",
		func(ptr unsafe.Pointer, stream *jsoniter.Stream) {
			stream.WriteString((*(*time.Duration)(ptr)).String())
		},
		func(ptr unsafe.Pointer) bool {
			return *(*time.Duration)(ptr) == 0
		})
}

// OutputFormat represents the output format type
type OutputFormat string

const (
	// FormatText is human-readable text output
	FormatText OutputFormat = "text"
	// FormatJSON is structured JSON output
	FormatJSON OutputFormat = "json"
)

// Formatter defines methods for formatting command output
type Formatter interface {
	// PrintSuccess prints a success message
	PrintSuccess(message string) error
	// PrintError prints an error message
	PrintError(message string) error
	// PrintLines prints each value on its own line
	PrintLines(lines []string) error
	// PrintTable prints a table with headers and rows
	PrintTable(headers []string, rows [][]string) error
	// PrintJSON prints arbitrary data as JSON
	PrintJSON(data any) error
}

// TextFormatter implements Formatter for human-readable text output
type TextFormatter struct {
	writer io.Writer
	ok     *color.Color
	fail   *color.Color
}

// NewTextFormatter creates a new TextFormatter writing to the given writer.
// Colors follow fatih/color's terminal detection and NO_COLOR.
func NewTextFormatter(w io.Writer) *TextFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &TextFormatter{
		writer: w,
		ok:     color.New(color.FgGreen),
		fail:   color.New(color.FgRed),
	}
}

// PrintSuccess prints a success message with a checkmark prefix
func (f *TextFormatter) PrintSuccess(message string) error {
	_, err := fmt.Fprintf(f.writer, "%s %s\n", f.ok.Sprint("✓"), message)
	return err
}

// PrintError prints an error message with an X prefix
func (f *TextFormatter) PrintError(message string) error {
	_, err := fmt.Fprintf(f.writer, "%s %s\n", f.fail.Sprint("✗"), message)
	return err
}

// PrintLines prints one value per line with no decoration.
func (f *TextFormatter) PrintLines(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(f.writer, line); err != nil {
			return err
		}
	}
	return nil
}

// PrintTable prints a table using text/tabwriter for aligned columns
func (f *TextFormatter) PrintTable(headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)

	headerLine := make([]string, len(headers))
	separator := make([]string, len(headers))
	for i, h := range headers {
		headerLine[i] = strings.ToUpper(h)
		separator[i] = strings.Repeat("-", len(h))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(headerLine, "\t")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(tw, strings.Join(separator, "\t")); err != nil {
		return err
	}

	for _, row := range rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// PrintJSON prints data as indented JSON
func (f *TextFormatter) PrintJSON(data any) error {
	return encodeJSON(f.writer, data)
}

// JSONFormatter implements Formatter for structured JSON output
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSONFormatter writing to the given writer
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONFormatter{writer: w}
}

// PrintSuccess prints a success message as JSON
func (f *JSONFormatter) PrintSuccess(message string) error {
	return f.PrintJSON(map[string]any{
		"status":  "success",
		"message": message,
	})
}

// PrintError prints an error message as JSON
func (f *JSONFormatter) PrintError(message string) error {
	return f.PrintJSON(map[string]any{
		"status":  "error",
		"message": message,
	})
}

// PrintLines prints the values as a JSON array
func (f *JSONFormatter) PrintLines(lines []string) error {
	if lines == nil {
		lines = []string{}
	}
	return f.PrintJSON(lines)
}

// PrintTable prints a table as JSON, one object per row keyed by header
func (f *JSONFormatter) PrintTable(headers []string, rows [][]string) error {
	data := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		rowMap := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				rowMap[header] = row[i]
			} else {
				rowMap[header] = ""
			}
		}
		data = append(data, rowMap)
	}

	return f.PrintJSON(map[string]any{
		"headers": headers,
		"data":    data,
	})
}

// PrintJSON prints arbitrary data as formatted JSON
func (f *JSONFormatter) PrintJSON(data any) error {
	return encodeJSON(f.writer, data)
}

func encodeJSON(w io.Writer, data any) error {
	encoder := jsonAPI.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// NewFormatter creates a new Formatter based on the output format
func NewFormatter(format OutputFormat, w io.Writer) Formatter {
	if w == nil {
		w = os.Stdout
	}

	switch format {
	case FormatJSON:
		return NewJSONFormatter(w)
	default:
		return NewTextFormatter(w)
	}
}
