// Command qualitube prints snippet and statistics for YouTube videos as a
// text, CSV or JSON table.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/ytget/qualitube"
	"github.com/ytget/qualitube/filter"
	"github.com/ytget/qualitube/internal/logger"
	"github.com/ytget/qualitube/types"
)

const (
	formatText = "text"
	formatCSV  = "csv"
	formatJSON = "json"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	configPath string
	key        string
	idsFile    string
	format     string
	output     string
	where      string
	js         string
	jsEngine   string
	timeout    time.Duration
	ua         string
	proxy      string
	baseURL    string
	logLevel   string
}

// newFlagSet registers the command line flags into opts.
func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("qualitube", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.StringVar(&opts.key, "key", "", "YouTube Data API key (default $"+EnvAPIKey+")")
	fs.StringVar(&opts.idsFile, "ids-file", "", "Read video ids from file, one per line ('-' for stdin)")
	fs.StringVar(&opts.format, "format", "", "Output format: text, csv or json")
	fs.StringVar(&opts.output, "output", "", "Write the table to this file instead of stdout")
	fs.StringVar(&opts.where, "where", "", "Keep rows matching comma-separated clauses (e.g. 'view_count>=1000,tags~music')")
	fs.StringVar(&opts.js, "js", "", "Keep rows for which this JavaScript expression over `video` is truthy")
	fs.StringVar(&opts.jsEngine, "js-engine", string(filter.EngineGoja), "JavaScript engine: goja or otto")
	fs.DurationVar(&opts.timeout, "http-timeout", 0, "HTTP timeout (e.g., 30s, 1m)")
	fs.StringVar(&opts.ua, "ua", "", "Override User-Agent header")
	fs.StringVar(&opts.proxy, "proxy", "", "Proxy URL (http/https/socks)")
	fs.StringVar(&opts.baseURL, "base-url", "", "Data API root URL")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: qualitube [flags] <video_id>...\n")
		fmt.Fprintln(stderr, "\nFlags:")
		fs.PrintDefaults()
	}
	return fs
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	fs := newFlagSet(&opts, stderr)

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := resolveConfig(fs, &opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	log, err := logger.CreateLoggerFromConfig(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	logger.SetGlobalLogger(log)

	ids, err := collectIDs(fs.Args(), opts.idsFile, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if len(ids) == 0 {
		fs.Usage()
		return exitUsage
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		fmt.Fprintf(stderr, "Error: no API key (use -key or $%s)\n", EnvAPIKey)
		return exitUsage
	}

	pred, err := buildPredicate(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	c := qualitube.New(cfg.APIKey).WithConfig(cfg.clientConfig())
	if cfg.BaseURL != "" {
		c = c.WithBaseURL(cfg.BaseURL)
	}

	appLog := logger.WithComponent(logger.ComponentApp)
	appLog.Debug("Starting", map[string]interface{}{"ids": len(ids), "format": cfg.Format})

	resp, err := c.GetVideos(ctx, ids)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitRuntime
	}
	if resp, err = filter.Apply(resp, pred); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitRuntime
	}

	if err := writeOutput(resp, cfg.Format, opts.output, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitRuntime
	}
	appLog.Info("Done", map[string]interface{}{"requested": len(ids), "written": resp.Len()})
	return exitOK
}

// resolveConfig layers the config file, environment and explicitly set flags.
func resolveConfig(fs *flag.FlagSet, opts *options) (*Config, error) {
	cfg, err := loadConfigFile(opts.configPath)
	if err != nil {
		return nil, err
	}
	cfg.applyEnvironment()

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "key":
			cfg.APIKey = opts.key
		case "format":
			cfg.Format = opts.format
		case "http-timeout":
			cfg.HTTPTimeout = opts.timeout
		case "ua":
			cfg.UserAgent = opts.ua
		case "proxy":
			cfg.Proxy = opts.proxy
		case "base-url":
			cfg.BaseURL = opts.baseURL
		case "log-level":
			cfg.Log.Level = opts.logLevel
		}
	})
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildPredicate(opts options) (filter.Predicate, error) {
	var preds filter.All
	if opts.where != "" {
		p, err := filter.Parse(opts.where)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	if opts.js != "" {
		engine, err := filter.ParseEngine(opts.jsEngine)
		if err != nil {
			return nil, err
		}
		p, err := filter.NewJS(opts.js, engine)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	if len(preds) == 0 {
		return nil, nil
	}
	return preds, nil
}

func writeOutput(resp *types.VideosResponse, format, path string, stdout io.Writer) (err error) {
	w := stdout
	if path != "" {
		f, ferr := os.Create(path)
		if ferr != nil {
			return fmt.Errorf("create output: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close output: %w", cerr)
			}
		}()
		w = f
	}

	table := resp.Table()
	switch format {
	case formatCSV:
		return table.WriteCSV(w)
	case formatJSON:
		return table.WriteJSON(w)
	default:
		return table.WriteText(w)
	}
}
