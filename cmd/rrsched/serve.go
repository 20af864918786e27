package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TigerCipher/rrsched/internal/api"
	"github.com/TigerCipher/rrsched/internal/tracing"
)

func serveCmd(v *viper.Viper, load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scheduler over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if cfg.Trace != "" {
				if err := tracing.Init("rrsched", version, cfg.Trace); err != nil {
					return err
				}
				defer func() { _ = tracing.Shutdown(context.Background()) }()
			}

			app := api.NewApp(cfg)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				if err := app.Shutdown(); err != nil {
					log.Printf("shutdown: %v", err)
				}
			}()

			log.Printf("rrsched %s listening on %s", version, cfg.Listen)
			return app.Listen(cfg.Listen)
		},
	}
	cmd.Flags().String("listen", ":9095", "HTTP listen address")
	cobra.CheckErr(bindFlags(v, cmd, map[string]string{
		"listen": "listen",
	}))
	return cmd
}
