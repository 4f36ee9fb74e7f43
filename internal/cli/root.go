package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"hws_news/internal/config"
	"hws_news/internal/logger"
	"hws_news/internal/ui/tui"
)

const logFileName = "hwsnews.log"

type rootOptions struct {
	configPath string
	locale     string
	debug      bool
}

func Execute() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "hwsnews",
		Short:        "HWS News — latest stories from hws.dev in your terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := logger.OpenFile(logFileName)
			if err != nil {
				return err
			}
			defer f.Close()
			logger.Init(logger.Options{Output: f, Debug: opts.debug})

			a, err := opts.load()
			if err != nil {
				logger.Log.WithError(err).Error("Config load error")
				return err
			}

			// запуск браузера пишет в stdout, который занят TUI
			browser.Stdout, browser.Stderr = io.Discard, f

			return tui.Run(cmd.Context(), tui.Deps{
				Title:     a.cfg.Title,
				Loader:    a.aggregator(nil),
				Images:    a.client,
				Formatter: a.formatter,
				OpenURL:   browser.OpenURL,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a JSON config file (or "+config.EnvConfigPath+")")
	cmd.PersistentFlags().StringVar(&opts.locale, "locale", "", "language for relative times, e.g. en or ru")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newListCmd(opts), newServeCmd(opts))
	return cmd
}

// load читает конфигурацию. Флаг --locale важнее файла и окружения.
func (o *rootOptions) load() (*app, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.locale != "" {
		cfg.Locale = o.locale
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return newApp(cfg)
}
