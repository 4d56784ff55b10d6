package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/rulefile"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/server"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/style"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rule validation over HTTP",
	Long: `Start an HTTP server that validates JSON rows against rules.

Rule files passed with --rules are preloaded and served by name; callers may
also submit rules inline per request.

Examples:
  xlrv serve --port 8080
  xlrv serve --rules motors.yaml --rules cables.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

var (
	serveHost    string
	servePort    int
	serveRules   []string
	serveWorkers int
	noMetrics    bool
	noCORS       bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "address to bind")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on")
	serveCmd.Flags().StringArrayVar(&serveRules, "rules", nil, "rule files to preload and serve by name (repeatable)")
	serveCmd.Flags().IntVar(&serveWorkers, "workers", 0, "rows evaluated concurrently per request (default: GOMAXPROCS)")
	serveCmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")
	serveCmd.Flags().BoolVar(&noCORS, "no-cors", false, "disable CORS headers")
}

func runServe(cmd *cobra.Command) error {
	config := server.DefaultConfig()
	config.Host = serveHost
	config.Port = servePort
	config.Workers = serveWorkers
	config.EnableMetrics = !noMetrics
	config.EnableCORS = !noCORS
	config.RuleFiles = serveRules

	registry := server.NewRuleSetRegistry()
	for _, path := range serveRules {
		set, err := rulefile.Load(path)
		if err != nil {
			return fmt.Errorf("loading rules from %s: %w", path, err)
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		registry.Register(name, set)
		style.Info(cmd.ErrOrStderr(), fmt.Sprintf("loaded rule set %q (%d rules)", name, set.Len()))
	}

	srv := server.New(config, registry)
	return srv.Start(cmd.Context())
}
