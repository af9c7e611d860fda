package commands

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keyxmakerx/wificard/internal/apperror"
	"github.com/keyxmakerx/wificard/internal/plugins/cards"
)

func cardCmd() *cobra.Command {
	form := cards.DefaultForm()
	var format, out string
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Render a printable WiFi card",
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Format = cards.Format(strings.ToLower(format))

			export, err := service.Export(cmd.Context(), form)
			if err != nil {
				return describeFieldErrors(err)
			}
			if out == "" {
				out = export.Filename
			}
			if err := os.WriteFile(out, export.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, %d bytes)\n", out, export.ContentType, len(export.Data))
			return nil
		},
	}
	cmd.Flags().StringVar(&form.BrandName, "brand", form.BrandName, "brand name printed on the card")
	cmd.Flags().StringVar(&form.SSID, "ssid", "", "network name")
	cmd.Flags().StringVar(&form.Password, "password", "", "network password")
	cmd.Flags().StringVar(&form.BackgroundColor, "bg", form.BackgroundColor, "background color (#RRGGBB)")
	cmd.Flags().StringVar(&format, "format", string(form.Format), "image format: png or jpg")
	cmd.Flags().IntVar(&form.Scale, "scale", form.Scale, "export scale")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default <brand>.<format>)")
	_ = cmd.MarkFlagRequired("ssid")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// describeFieldErrors flattens validation messages into one error line.
func describeFieldErrors(err error) error {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || len(appErr.Fields) == 0 {
		return err
	}
	fields := make([]string, 0, len(appErr.Fields))
	for field := range appErr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, len(fields))
	for i, field := range fields {
		msgs[i] = field + ": " + appErr.Fields[field]
	}
	return fmt.Errorf("invalid card: %s", strings.Join(msgs, "; "))
}
