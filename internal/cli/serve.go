package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/addonscope/addonscope/internal/web"
)

const defaultAddr = "127.0.0.1:8000"

// serveCommand creates the serve command for running the web dashboard.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		url   string
		cache string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog dashboard",
		Long: `Serve a local web dashboard showing catalog metrics, charts, and the
latest version of every add-on. Each page load fetches and re-analyzes the
catalog; pass ?url= in the browser to analyze an alternate source.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadUserConfig()
			if err != nil {
				return err
			}

			var timeout time.Duration
			if cfg.TimeoutSeconds > 0 {
				timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
			}

			server := web.NewServer(
				newRunner(cmd.Context()),
				c.Logger,
				firstNonEmpty(url, cfg.URL),
				firstNonEmpty(cache, cfg.Cache),
				timeout,
			)

			listen := firstNonEmpty(addr, cfg.Addr, defaultAddr)
			printInfo("Dashboard listening on http://%s", listen)
			return server.ListenAndServe(cmd.Context(), listen)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default 127.0.0.1:8000)")
	cmd.Flags().StringVar(&url, "url", "", "default catalog XML URL")
	cmd.Flags().StringVar(&cache, "cache", "", "destination path for the downloaded XML")

	return cmd
}
