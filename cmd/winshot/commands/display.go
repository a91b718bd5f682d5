package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Capture the full virtual screen",
	Long: `Capture the whole virtual screen, spanning all monitors. The virtual
screen origin may be negative when a secondary monitor sits left of or
above the primary one; the capture always covers the full extent.`,
	Example: `  # Capture all monitors to a timestamped PNG
  winshot display

  # Capture to a specific file
  winshot display --out screen.bmp`,
	RunE: runDisplay,
}

var (
	displayFormat string
	displayOut    string
)

func init() {
	rootCmd.AddCommand(displayCmd)

	displayCmd.Flags().StringVarP(&displayFormat, "format", "f", "", "output format (png, jpeg, bmp, pdf)")
	displayCmd.Flags().StringVarP(&displayOut, "out", "o", "", "output file (default is a timestamped name in the output dir)")
}

func runDisplay(cmd *cobra.Command, args []string) error {
	configMgr, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := configMgr.Get()

	capturer, err := newCapturer()
	if err != nil {
		return err
	}

	buf, err := capturer.CaptureDisplay()
	if err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}

	return saveBuffer(cfg, buf, displayFormat, displayOut)
}
