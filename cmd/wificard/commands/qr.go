package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keyxmakerx/wificard/internal/wifi"
)

func qrCmd() *cobra.Command {
	var ssid, password, out string
	var size int
	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Write the network's QR code as a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := service.QR(cmd.Context(), ssid, password, size)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, img.PNG, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d)\n", out, img.Size, img.Size)
			return nil
		},
	}
	cmd.Flags().StringVar(&ssid, "ssid", "", "network name")
	cmd.Flags().StringVar(&password, "password", "", "network password")
	cmd.Flags().IntVar(&size, "size", wifi.DefaultQRSize, "image size in pixels")
	cmd.Flags().StringVarP(&out, "output", "o", "wifi-qr.png", "output file")
	_ = cmd.MarkFlagRequired("ssid")
	return cmd
}
