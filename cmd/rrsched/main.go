package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TigerCipher/rrsched/internal/config"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type loader func() (*config.Config, error)

func newRootCmd() *cobra.Command {
	v := config.New()
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "rrsched",
		Short: "Simulate Round Robin CPU scheduling",
		Long: `rrsched runs a Round Robin schedule over a list of processes with arrival and
burst times, then reports exit, turnaround and wait times with a Gantt chart.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (YAML)")

	load := func() (*config.Config, error) {
		return config.Load(v, configPath)
	}
	rootCmd.AddCommand(runCmd(v, load))
	rootCmd.AddCommand(serveCmd(v, load))
	return rootCmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}
