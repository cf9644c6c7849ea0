package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/vk/figkit/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("figkit", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
figkit - Render declarative figure files.

Usage:
  figkit [options] [FIGURE_PATH]

Arguments:
  FIGURE_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	figuresFlag := flagSet.String("figures", "", "Path to the figure file or directory.")
	fFlag := flagSet.String("f", "", "Path to the figure file or directory (shorthand).")
	outFlag := flagSet.String("out", "", "Directory figures are saved to. Empty disables saving.")
	formatFlag := flagSet.String("format", "png", "Export format: "+strings.Join(app.Formats, ", ")+".")
	dpiFlag := flagSet.Int("dpi", 0, "Raster resolution of saved figures. 0 uses the style's figure.dpi.")
	showFlag := flagSet.Bool("show", false, "Show every figure after it is built.")
	displayFlag := flagSet.String("display", "file", "Display mode used by -show: file, socketio, inline.")
	viewerFlag := flagSet.String("viewer", "", "socket.io viewer URL for the socketio display mode.")
	styleLibFlag := flagSet.String("stylelib", "stylelib", "Directory containing style files.")
	styleFlag := flagSet.String("style", "", "Extra styles applied to every figure, as a shell-quoted list.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *figuresFlag != "" {
		path = *figuresFlag
	} else if *fFlag != "" {
		path = *fFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Figure path determined.", "path", path)

	if path == "" {
		slog.Debug("No figure path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	styles, err := shellquote.Split(*styleFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid style list: %v", err)}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		FigurePath:   path,
		OutputDir:    *outFlag,
		Format:       *formatFlag,
		DPI:          *dpiFlag,
		DisplayMode:  *displayFlag,
		ViewerURL:    *viewerFlag,
		Show:         *showFlag,
		StyleLibPath: *styleLibFlag,
		Styles:       styles,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
