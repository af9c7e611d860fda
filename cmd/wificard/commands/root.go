package commands

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/keyxmakerx/wificard/internal/config"
	"github.com/keyxmakerx/wificard/internal/contrast"
	"github.com/keyxmakerx/wificard/internal/database"
	"github.com/keyxmakerx/wificard/internal/plugins/cards"
	"github.com/keyxmakerx/wificard/internal/qr"
)

// maxCLIScale is the largest export scale the CLI accepts.
const maxCLIScale = 4

var (
	redisURL   string
	background string

	rdb     *redis.Client
	service cards.CardService
)

// Execute runs the wificard CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "wificard",
		Short:        "Design printable WiFi QR cards",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			rdb, err = database.NewRedis(config.RedisConfig{URL: redisURL})
			if err != nil {
				return err
			}

			cache := cards.NewNoopQRCache()
			if rdb != nil {
				cache = cards.NewRedisQRCache(rdb, 24*time.Hour)
			}
			service = cards.NewCardService(qr.NewRenderer(), cards.NewComposer(), cache, background, maxCLIScale)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if rdb != nil {
				return rdb.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&redisURL, "redis", "", "redis URL for the shared QR cache (e.g. redis://localhost:6379)")
	root.PersistentFlags().StringVar(&background, "fallback-bg", contrast.DefaultBackground, "background used when a color is invalid")

	root.AddCommand(payloadCmd(), qrCmd(), cardCmd(), contrastCmd())
	return root
}
