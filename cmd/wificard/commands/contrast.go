package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keyxmakerx/wificard/internal/contrast"
)

func contrastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contrast <hex>",
		Short: "Evaluate a background color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !contrast.IsValidHex(args[0]) {
				return fmt.Errorf("%w: %q", contrast.ErrInvalidColorFormat, args[0])
			}
			state, ratio := service.Contrast(args[0])

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Background: %s\n", state.Background)
			fmt.Fprintf(w, "Text:       %s\n", state.Text)
			fmt.Fprintf(w, "Ratio:      %.2f:1 against %s\n", ratio, contrast.QRReference)
			if state.QRSafe {
				fmt.Fprintln(w, "QR:         safe")
			} else {
				fmt.Fprintf(w, "QR:         low contrast (needs %.1f:1)\n", contrast.MinSafeRatio)
			}
			return nil
		},
	}
}
