package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/winshot/winshot/internal/api"
	"github.com/winshot/winshot/internal/capture"
	"github.com/winshot/winshot/internal/config"
	"github.com/winshot/winshot/internal/logger"
	"github.com/winshot/winshot/internal/output"
	"github.com/winshot/winshot/internal/window"
)

var windowCmd = &cobra.Command{
	Use:   "window <title>",
	Short: "Capture a single window",
	Long: `Capture the pixels of one window, addressed by its exact title or, with
--regex, by the first title matching a regular expression.

The window does not need to be in the foreground. The default printwindow
method asks the window to render itself and works for covered or off-screen
windows; bitblt copies from the screen surface instead and requires
--area client.`,
	Example: `  # Capture a window by exact title
  winshot window "Untitled - Notepad"

  # First window whose title matches a pattern
  winshot window --regex "Notepad$"

  # Client area only, via the screen copy path
  winshot window "Calculator" --method bitblt --area client

  # Crop to a region and write a JPEG
  winshot window "Calculator" --crop 0,0,200,150 --out calc.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runWindow,
}

var (
	windowRegex  bool
	windowMethod string
	windowArea   string
	windowCrop   string
	windowDepth  int
	windowFormat string
	windowOut    string
)

func init() {
	rootCmd.AddCommand(windowCmd)

	windowCmd.Flags().BoolVarP(&windowRegex, "regex", "r", false, "treat the title argument as a regular expression")
	windowCmd.Flags().StringVarP(&windowMethod, "method", "m", "", "capture method (printwindow or bitblt)")
	windowCmd.Flags().StringVarP(&windowArea, "area", "a", "", "capture area (full or client)")
	windowCmd.Flags().StringVarP(&windowCrop, "crop", "c", "", "crop region as x,y,width,height")
	windowCmd.Flags().IntVarP(&windowDepth, "depth", "d", 0, "bytes per pixel (3 or 4)")
	windowCmd.Flags().StringVarP(&windowFormat, "format", "f", "", "output format (png, jpeg, bmp, pdf)")
	windowCmd.Flags().StringVarP(&windowOut, "out", "o", "", "output file (default is a timestamped name in the output dir)")
}

func runWindow(cmd *cobra.Command, args []string) error {
	configMgr, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := configMgr.Get()

	windowMgr, err := window.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize window manager: %w", err)
	}

	hwnd, err := resolveWindow(windowMgr, args[0], windowRegex)
	if err != nil {
		return err
	}

	opts, err := buildOptions(cfg)
	if err != nil {
		return err
	}

	capturer, err := newCapturer()
	if err != nil {
		return err
	}

	buf, err := capturer.CaptureWindow(capture.WindowHandle(hwnd), opts)
	if err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}

	return saveBuffer(cfg, buf, windowFormat, windowOut)
}

func resolveWindow(mgr *window.Manager, target string, regex bool) (window.Handle, error) {
	if regex {
		info, err := mgr.Match(target)
		if err != nil {
			return 0, err
		}
		logger.Get().Debug().
			Str("title", info.Title).
			Uint64("handle", uint64(info.Handle)).
			Msg("pattern resolved")
		return info.Handle, nil
	}
	return mgr.Find(target)
}

func buildOptions(cfg *config.Config) (capture.Options, error) {
	var opts capture.Options
	var err error

	method := windowMethod
	if method == "" {
		method = cfg.Method
	}
	if opts.Method, err = capture.ParseMethod(method); err != nil {
		return opts, err
	}

	area := windowArea
	if area == "" {
		area = cfg.Area
	}
	if opts.Area, err = capture.ParseArea(area); err != nil {
		return opts, err
	}

	opts.Depth = cfg.Depth
	if windowDepth != 0 {
		opts.Depth = windowDepth
	}

	if windowCrop != "" {
		crop, err := api.ParseCrop(windowCrop)
		if err != nil {
			return opts, err
		}
		opts.Crop = &crop
	}

	return opts, nil
}

func newCapturer() (*capture.Capturer, error) {
	adapter, err := capture.NewPlatformAdapter()
	if err != nil {
		return nil, err
	}
	return capture.New(adapter), nil
}

// saveBuffer encodes buf and writes it to the requested path, or to a
// timestamped file in the configured output directory.
func saveBuffer(cfg *config.Config, buf *capture.PixelBuffer, format, out string) error {
	var enc output.Encoder
	if out != "" && format == "" {
		enc = output.ForPath(out)
	} else {
		name := format
		if name == "" {
			name = cfg.Format
		}
		var err error
		if enc, err = output.ForFormat(name); err != nil {
			return err
		}
	}
	if j, ok := enc.(output.JPEGEncoder); ok && cfg.JPEGQuality > 0 {
		j.Quality = cfg.JPEGQuality
		enc = j
	}

	if out == "" {
		ext := enc.Name()
		if ext == "jpeg" {
			ext = "jpg"
		}
		name := fmt.Sprintf("winshot-%s.%s", time.Now().Format("20060102-150405"), ext)
		out = filepath.Join(cfg.OutputDir, name)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()

	if err := enc.Encode(f, buf); err != nil {
		return fmt.Errorf("failed to encode %s: %w", out, err)
	}

	fmt.Printf("Saved %dx%d capture to %s\n", buf.Width, buf.Height, out)
	return nil
}
