// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatValue].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode prints bare values only.
	Quiet bool
	// Verbose shows full values, sizes and timing.
	Verbose bool
	// Grouped prints values in word-grouped form.
	Grouped bool
}

func (c OutputConfig) presentation() orchestration.PresentationOptions {
	return orchestration.PresentationOptions{Quiet: c.Quiet, Verbose: c.Verbose, Grouped: c.Grouped}
}

// WriteResultToFile writes an evaluated result to config.OutputFile. Values
// are always written in full.
//
// Parameters:
//   - result: The evaluated operation.
//   - operands: The operands as given on the command line.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result orchestration.Result, operands []string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	fmt.Fprintf(file, "# bigcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Operation: %s %s\n", result.Op, strings.Join(operands, " "))
	fmt.Fprintf(file, "# Duration: %s\n", result.Duration)
	for i, v := range result.Values {
		mag := v.Magnitude()
		fmt.Fprintf(file, "# %s: %d bits, %d words\n", valueLabel(result, i), mag.BitLen(), mag.Len())
	}
	fmt.Fprintf(file, "\n")
	for i, v := range result.Values {
		fmt.Fprintf(file, "%s =\n%s\n", valueLabel(result, i), v.Text())
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func valueLabel(result orchestration.Result, i int) string {
	if i < len(result.Labels) {
		return result.Labels[i]
	}
	return result.Op
}

// FormatQuietResult formats a result for quiet mode output: one value per
// line, suitable for scripting.
func FormatQuietResult(result orchestration.Result) string {
	lines := make([]string, len(result.Values))
	for i, v := range result.Values {
		lines[i] = v.Text()
	}
	return strings.Join(lines, "\n")
}

// DisplayQuietResult outputs a result in quiet mode.
func DisplayQuietResult(out io.Writer, result orchestration.Result) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResultWithConfig displays a result with the given output
// configuration and saves it when an output file is configured.
//
// Parameters:
//   - out: The output writer.
//   - result: The evaluated operation.
//   - operands: The operands as given on the command line.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, result orchestration.Result, operands []string, config OutputConfig) error {
	if config.Quiet && !config.Grouped {
		DisplayQuietResult(out, result)
	} else {
		DisplayResult(result, config.presentation(), out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(result, operands, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
