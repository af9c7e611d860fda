package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func payloadCmd() *cobra.Command {
	var ssid, password string
	cmd := &cobra.Command{
		Use:   "payload",
		Short: "Print the WiFi QR payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := service.Payload(ssid, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), payload)
			return nil
		},
	}
	cmd.Flags().StringVar(&ssid, "ssid", "", "network name")
	cmd.Flags().StringVar(&password, "password", "", "network password")
	_ = cmd.MarkFlagRequired("ssid")
	return cmd
}
