package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"hws_news/internal/logger"
	"hws_news/internal/models"
	"hws_news/internal/reltime"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Fetch all pages once and print the merged list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger.Init(logger.Options{Output: cmd.ErrOrStderr(), Debug: opts.debug})

			a, err := opts.load()
			if err != nil {
				return err
			}

			// ошибки логирует агрегатор, печатаем то, что успели объединить
			items, _ := a.aggregator(nil).Run(cmd.Context(), nil)
			printList(cmd.OutOrStdout(), a.cfg.Title, items, a.formatter, time.Now())
			return nil
		},
	}
}

func printList(w io.Writer, title string, items []models.NewsItem, f *reltime.Formatter, now time.Time) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w)
	for _, it := range items {
		fmt.Fprintln(w, it.Title)
		if it.Strap != "" {
			fmt.Fprintf(w, "  %s\n", it.Strap)
		}
		fmt.Fprintf(w, "  %s · %s\n\n", f.Format(it.PublishedDate, now), it.URL.String())
	}
}
