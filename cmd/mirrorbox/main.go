package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/openmirror/mirrorbox/internal/client"
	"github.com/openmirror/mirrorbox/internal/client/config"
	"github.com/openmirror/mirrorbox/internal/utils"
	"github.com/openmirror/mirrorbox/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	home, _        = os.UserHomeDir()
	configFileName = "config"
)

var rootCmd = &cobra.Command{
	Use:     "mirrorbox",
	Short:   "Watch a local folder and mirror it to remote storage",
	Version: version.Detailed(),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := &config.Config{
			Path:      viper.ConfigFileUsed(),
			WatchDir:  viper.GetString("watch_dir"),
			StateDir:  viper.GetString("state_dir"),
			ServerURL: viper.GetString("server_url"),
			APIToken:  viper.GetString("api_token"),
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// all good now
		cmd.SilenceUsage = true
		color.New(color.FgHiCyan, color.Bold).Printf("%s %s\n", version.AppName, version.Short())

		// persist the effective config so the next run can omit flags
		configPath := cfg.Path
		if configPath == "" {
			configPath = config.DefaultConfigPath
		}
		if err := cfg.Save(configPath); err != nil {
			slog.Warn("could not save config", "path", configPath, "error", err)
		}

		c, err := client.New(cfg)
		if err != nil {
			return err
		}

		defer slog.Info("Bye!")
		return c.Start(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().StringP("watch", "w", "", "Local folder to mirror")
	rootCmd.Flags().StringP("server", "s", config.DefaultServerURL, "MirrorBox server URL")
	rootCmd.Flags().StringP("token", "t", "", "API token for the MirrorBox server")
	rootCmd.Flags().String("state-dir", config.DefaultStateDir, "Directory for mapping and cache documents")
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigPath, "MirrorBox config file")
}

func main() {
	_ = godotenv.Load()

	if err := setupLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func setupLogging() error {
	logFile := config.DefaultLogFile
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	stdoutHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
	})
	fileHandler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	slog.SetDefault(slog.New(utils.NewLogRouter(stdoutHandler, fileHandler)))
	return nil
}

func loadConfig(cmd *cobra.Command) error {
	if cmd.Flag("config").Changed {
		configFilePath, _ := cmd.Flags().GetString("config")
		viper.SetConfigFile(configFilePath)
	} else {
		viper.AddConfigPath(filepath.Join(home, ".mirrorbox"))
		viper.AddConfigPath(filepath.Join(home, ".config/mirrorbox"))
		viper.SetConfigName(configFileName)
		viper.SetConfigType("json")
	}

	if err := viper.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !enoent && !notFound {
			return fmt.Errorf("config read '%s': %w", viper.ConfigFileUsed(), err)
		}
	}

	viper.BindPFlag("watch_dir", cmd.Flags().Lookup("watch"))
	viper.BindPFlag("server_url", cmd.Flags().Lookup("server"))
	viper.BindPFlag("api_token", cmd.Flags().Lookup("token"))
	viper.BindPFlag("state_dir", cmd.Flags().Lookup("state-dir"))

	viper.SetEnvPrefix("MIRRORBOX")
	viper.AutomaticEnv()

	return nil
}
