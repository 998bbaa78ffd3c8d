package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/qiwi-client/internal/constants"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"
	Masked       = "***"

	// JSON formatting.
	defaultJSONIndent = 2

	// dateLayout is used for dates in table output.
	dateLayout = "2006-01-02 15:04:05"
)

// outputFormat returns the requested output format.
func outputFormat() (string, error) {
	output := strings.ToLower(viper.GetString("output"))
	switch output {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return output, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnknownOutput, output)
	}
}

// renderStructured writes data as JSON or YAML. It reports false for the
// table format, which every command renders on its own.
func renderStructured(w io.Writer, data interface{}) (bool, error) {
	output, err := outputFormat()
	if err != nil {
		return true, err
	}

	switch output {
	case constants.FormatJSON:
		return true, StandardJSONRenderer(w, data)
	case constants.FormatYAML:
		return true, StandardYAMLRenderer(w, data)
	default:
		return false, nil
	}
}

// StandardJSONRenderer writes data as indented JSON.
func StandardJSONRenderer[T any](w io.Writer, data T) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data as YAML.
func StandardYAMLRenderer[T any](w io.Writer, data T) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(defaultJSONIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

// renderKeyValueTable renders a two column property table.
func renderKeyValueTable(w io.Writer, rows [][2]string) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, row := range rows {
		_ = table.Append(row[0], row[1])
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// valueOrNA dereferences s, or returns NotAvailable.
func valueOrNA(s *string) string {
	if s == nil || *s == "" {
		return NotAvailable
	}

	return *s
}

// maskToken hides all but the last four characters of a token.
func maskToken(token string) string {
	const visible = 4

	if len(token) <= visible {
		return Masked
	}

	return Masked + token[len(token)-visible:]
}
