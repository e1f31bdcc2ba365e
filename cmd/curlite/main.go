package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	httpAdapter "github.com/bft-labs/curlite/internal/adapters/http"
	"github.com/bft-labs/curlite/internal/app"
	"github.com/bft-labs/curlite/internal/cliconfig"
	"github.com/bft-labs/curlite/internal/domain"
	"github.com/bft-labs/curlite/internal/render"
	"github.com/bft-labs/curlite/pkg/log"
)

const longHelp = `curlite sends a single GET or POST request and prints the response body.

URLs are checked before anything is sent: malformed IPv4/IPv6 literals, ports
above 65535 and schemes other than http/https are rejected. JSON responses are
pretty-printed with keys sorted; anything else is printed as received.

Configuration is read from $HOME/.curlite/config.toml, then CURLITE_*
environment variables, then flags (flags win).`

var exampleUsage = strings.TrimSpace(`
  curlite https://example.com/index.html
  curlite -d "userId=1&title=Hello World" https://jsonplaceholder.typicode.com/posts
  curlite --json '{"title": "World", "userId": 5}' https://dummyjson.com/posts/add
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		reportError(stderr, err)
		return 1
	}
	return 0
}

// reportError prints err on stderr. HTTP errors are followed by the start of
// the response body.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", err)
	var de *domain.Error
	if errors.As(err, &de) && de.Kind == domain.KindHTTP && de.Snippet != "" {
		fmt.Fprintln(w, de.Snippet)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var (
		cfgPath  string
		envFile  string
		verbose  bool
		method   string
		formData string
		jsonData string
	)

	root := &cobra.Command{
		Use:           "curlite [flags] <url>",
		Short:         "A minimal HTTP client",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := cliconfig.LoadEnvFile(envFile); err != nil {
					return fmt.Errorf("load env file: %w", err)
				}
			}

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			} else if cfgPath != "" {
				return fmt.Errorf("load config: %s does not exist", cfgPath)
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}
			if verbose {
				cfg.LogLevel = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, closer, err := log.New(log.Options{
				Level:      cfg.LogLevel,
				Console:    stderr,
				NoColor:    cfg.NoColor,
				File:       cfg.LogFile,
				MaxSizeMB:  cfg.LogMaxSizeMB,
				MaxBackups: cfg.LogMaxBackups,
			})
			if err != nil {
				return err
			}
			defer closer.Close()

			logger.Debug("configuration",
				log.Duration("timeout", cfg.Timeout),
				log.String("log_level", cfg.LogLevel),
				log.Int("headers", len(cfg.Headers)),
			)

			userAgent := cfg.UserAgent
			if userAgent == "" {
				userAgent = "curlite/" + getVersion()
			}

			sender := httpAdapter.NewSender(httpAdapter.NewHTTPClient(cfg.Timeout), logger)
			renderer := render.New(!cfg.NoColor && log.IsTerminal(stdout))
			client := app.NewClient(sender, renderer, logger, userAgent)

			inv := app.Invocation{
				URL:     args[0],
				Method:  method,
				Headers: cfg.Headers,
			}
			if cmd.Flags().Changed("data") {
				inv.Form = &formData
			}
			if cmd.Flags().Changed("json") {
				inv.JSON = &jsonData
			}

			if err := client.Do(cmd.Context(), inv, stdout); err != nil {
				logger.Debug("request failed", log.String("kind", domain.KindOf(err).String()), log.Err(err))
				return err
			}
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	// Request flags
	root.Flags().StringVarP(&method, "request", "X", "GET", "HTTP method (GET or POST)")
	root.Flags().StringVarP(&formData, "data", "d", "", "form data for a POST request (key1=value1&key2=value2)")
	root.Flags().StringVar(&jsonData, "json", "", "JSON body for a POST request (forces POST)")
	root.Flags().StringArrayVarP(&cfg.Headers, "header", "H", cfg.Headers, "extra request header \"Name: Value\" (repeatable)")

	// Client flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.curlite/config.toml)")
	root.Flags().StringVar(&envFile, "env-file", "", "dotenv file with CURLITE_* variables")
	root.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout (0 disables)")
	root.Flags().StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "User-Agent header (default curlite/<version>)")
	root.Flags().BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")

	// Logging flags
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error, disabled)")
	root.Flags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "also write JSON logs to this file (rotated)")
	root.Flags().IntVar(&cfg.LogMaxSizeMB, "log-max-size", cfg.LogMaxSizeMB, "log file size in MB before rotation")
	root.Flags().IntVar(&cfg.LogMaxBackups, "log-max-backups", cfg.LogMaxBackups, "rotated log files to keep (0 keeps all)")

	return root
}
