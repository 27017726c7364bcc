package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/citelens/citelens/internal/observability"
	"github.com/citelens/citelens/internal/output"
	"github.com/citelens/citelens/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <title...>",
	Short: "Search OpenAlex works by title",
	Long: `Search OpenAlex works by title using the same rules as POST /api/search.

When the full title finds nothing and contains a colon, the text before the
first colon is searched once.`,
	Example: `  citelens search "Attention Is All You Need"
  citelens search Deep Residual Learning: for image recognition -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("output", "o", "table", "output format: table, json, yaml, markdown")
	searchCmd.Flags().String("upstream-url", "", "OpenAlex API base URL (overrides upstream.base_url)")
	searchCmd.Flags().Duration("timeout", 0, "upstream request timeout (overrides upstream.timeout)")
	searchCmd.Flags().String("mailto", "", "contact email for the OpenAlex polite pool (overrides upstream.mailto)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(mustGetString(cmd, "output"))
	if err != nil {
		return err
	}

	overrideString(cmd, "upstream-url", "upstream.base_url")
	overrideString(cmd, "mailto", "upstream.mailto")
	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		viper.Set("upstream.timeout", timeout)
	}

	cfg := loadConfig()
	logger := observability.CLILogger

	client, err := search.NewClient(search.ClientOptions{
		BaseURL:   cfg.Upstream.BaseURL,
		Timeout:   cfg.Upstream.Timeout,
		Mailto:    cfg.Upstream.Mailto,
		UserAgent: cfg.Upstream.UserAgent,
		Logger:    logger,
	})
	if err != nil {
		ExitWithCode(logger, foundry.ExitConfigInvalid, "Invalid upstream configuration", err)
		return nil
	}

	title := strings.Join(args, " ")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, searchDeadline(client))
	defer cancel()

	results, err := search.NewResolver(client, logger).Resolve(ctx, search.TitleRequest(title))
	if err != nil {
		if search.IsKind(err, search.KindInvalidRequest) {
			return err
		}
		ExitWithCode(logger, foundry.ExitExternalServiceUnavailable, "Search failed", err)
		return nil
	}

	if logger != nil {
		logger.Debug("Search completed", zap.String("title", title), zap.Int("results", len(results)))
	}

	rendered, err := output.FormatResults(format, title, results)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), ensureTrailingNewline(rendered))
	return err
}

func mustGetString(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	return value
}

// overrideString copies a flag into viper only when the user set it, so
// config files and environment keep precedence over flag defaults.
func overrideString(cmd *cobra.Command, flag, key string) {
	if !cmd.Flags().Changed(flag) {
		return
	}
	viper.Set(key, mustGetString(cmd, flag))
}

func ensureTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// searchDeadline bounds a whole resolution: a primary and a fallback call at
// the client's effective per-call timeout, plus slack.
func searchDeadline(client *search.Client) time.Duration {
	return 2*client.HTTPClient.Timeout + time.Second
}
