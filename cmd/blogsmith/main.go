package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogsmith/internal/admin"
	"git.home.luguber.info/inful/blogsmith/internal/config"
	"git.home.luguber.info/inful/blogsmith/internal/daemon"
	"git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/generator"
	"git.home.luguber.info/inful/blogsmith/internal/history"
	"git.home.luguber.info/inful/blogsmith/internal/lint"
	"git.home.luguber.info/inful/blogsmith/internal/metrics"
	"git.home.luguber.info/inful/blogsmith/internal/publish"
	"git.home.luguber.info/inful/blogsmith/internal/server"
	"git.home.luguber.info/inful/blogsmith/internal/storage"
	"git.home.luguber.info/inful/blogsmith/internal/version"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"blogsmith.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Generate struct {
		Src string `help:"Seed directory (overrides config)"`
		Out string `short:"o" help:"Output directory for snapshot documents (overrides config)"`
	} `cmd:"" help:"Generate the snapshot documents from seed files"`

	Publish struct {
		Title string `arg:"" help:"Release title for the publish commit"`
	} `cmd:"" help:"Regenerate the snapshot, then commit and push it"`

	Lint struct{} `cmd:"" help:"Check seed post content for broken links and slug collisions"`

	Serve struct {
		Watch bool `short:"w" help:"Regenerate when seed files change"`
	} `cmd:"" help:"Run the admin HTTP server"`

	Version struct{} `cmd:"" help:"Print version information"`

	Post struct {
		Add struct {
			Title       string   `required:"" help:"Post title"`
			Summary     string   `help:"Post summary"`
			Content     string   `help:"Post body (Markdown)"`
			ContentFile string   `type:"existingfile" help:"Read the post body from a file"`
			Slug        string   `help:"URL slug (defaults to a slugified title)"`
			Cover       string   `help:"Cover image URL"`
			Category    []string `help:"Category ids"`
			Tag         []string `help:"Tag ids"`
			Status      string   `help:"draft or published (anything else becomes draft)"`
			Pinned      bool     `help:"Pin the post (evicts the stalest pin when full)"`
			Created     string   `help:"Creation date (YYYY-MM-DD, defaults to today)"`
		} `cmd:"" help:"Create a post"`
		Update struct {
			ID          string   `arg:"" help:"Post id or slug"`
			Title       *string  `help:"New title"`
			Summary     *string  `help:"New summary"`
			Content     *string  `help:"New body (Markdown)"`
			ContentFile string   `type:"existingfile" help:"Read the new body from a file"`
			Slug        *string  `help:"New slug"`
			Cover       *string  `help:"New cover image URL (empty clears it)"`
			Category    []string `help:"Replacement category ids"`
			Tag         []string `help:"Replacement tag ids"`
			Status      *string  `help:"draft or published"`
			Pinned      *bool    `help:"Pin or unpin the post"`
			AutoUnpin   bool     `help:"When pinning against a full pin set, evict the stalest pin"`
			Created     *string  `help:"New creation date (YYYY-MM-DD)"`
		} `cmd:"" help:"Update a post"`
		Delete struct {
			ID string `arg:"" help:"Post id or slug"`
		} `cmd:"" help:"Delete a post"`
		List struct{} `cmd:"" help:"List posts"`
	} `cmd:"" help:"Manage posts"`

	Category struct {
		Add struct {
			Name        string `required:"" help:"Category name"`
			Slug        string `help:"URL slug (defaults to a slugified name)"`
			Description string `help:"Category description"`
			Color       string `help:"Display color"`
			Parent      string `help:"Parent category id"`
		} `cmd:"" help:"Create a category"`
		Update struct {
			ID          string  `arg:"" help:"Category id or slug"`
			Name        *string `help:"New name"`
			Slug        *string `help:"New slug"`
			Description *string `help:"New description (empty clears it)"`
			Color       *string `help:"New color (empty clears it)"`
			Parent      *string `help:"New parent id (empty clears it)"`
		} `cmd:"" help:"Update a category"`
		Delete struct {
			ID string `arg:"" help:"Category id or slug"`
		} `cmd:"" help:"Delete a category"`
		List struct{} `cmd:"" help:"List categories"`
	} `cmd:"" help:"Manage categories"`

	Tag struct {
		Add struct {
			Name string `required:"" help:"Tag name"`
			Slug string `help:"URL slug (defaults to a slugified name)"`
		} `cmd:"" help:"Create a tag"`
		Update struct {
			ID   string  `arg:"" help:"Tag id or slug"`
			Name *string `help:"New name"`
			Slug *string `help:"New slug"`
		} `cmd:"" help:"Update a tag"`
		Delete struct {
			ID string `arg:"" help:"Tag id or slug"`
		} `cmd:"" help:"Delete a tag"`
		List struct{} `cmd:"" help:"List tags"`
	} `cmd:"" help:"Manage tags"`

	Nav struct {
		Add struct {
			Label   string `required:"" help:"Menu label"`
			Href    string `required:"" help:"Link target"`
			Order   *int   `help:"Sort position (defaults to the end)"`
			Visible *bool  `help:"Show the item (defaults to true)"`
		} `cmd:"" help:"Create a navigation item"`
		Update struct {
			ID      string  `arg:"" help:"Nav item id"`
			Label   *string `help:"New label"`
			Href    *string `help:"New link target"`
			Order   *int    `help:"New sort position"`
			Visible *bool   `help:"Show or hide the item"`
		} `cmd:"" help:"Update a navigation item"`
		Delete struct {
			ID string `arg:"" help:"Nav item id"`
		} `cmd:"" help:"Delete a navigation item"`
		List struct{} `cmd:"" help:"List navigation items"`
	} `cmd:"" help:"Manage the navigation menu"`

	Settings struct {
		Show struct{} `cmd:"" help:"Print the effective site settings"`
		Set  struct {
			Theme *string  `help:"Markdown theme (default, mk-cute, smart-blue, cyanosis)"`
			Pairs []string `arg:"" optional:"" name:"key=value" help:"Additional settings keys"`
		} `cmd:"" help:"Update site settings"`
	} `cmd:"" help:"Manage site settings"`
}

func main() {
	ctx := kong.Parse(&CLI)
	adapter := setupLogging()

	if ctx.Command() == "version" {
		fmt.Printf("blogsmith %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
		return
	}
	if ctx.Command() == "init" {
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			adapter.HandleError(err)
		}
		fmt.Printf("Wrote %s\n", CLI.Config)
		return
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		adapter.HandleError(err)
	}
	applyLoggingConfig(cfg)

	if err := run(ctx.Command(), cfg); err != nil {
		adapter.HandleError(err)
	}
}

func run(command string, cfg *config.Config) error {
	store := storage.NewFileStore(cfg.Seed.Dir)

	switch command {
	case "generate":
		seedDir, outDir := cfg.Seed.Dir, cfg.Output.Dir
		if CLI.Generate.Src != "" {
			seedDir = CLI.Generate.Src
		}
		if CLI.Generate.Out != "" {
			outDir = CLI.Generate.Out
		}
		if _, err := generator.New(storage.NewFileStore(seedDir)).Generate(outDir); err != nil {
			return err
		}
		fmt.Printf("Snapshot written to %s\n", outDir)
		return nil

	case "publish <title>":
		runtime := daemon.NewRuntime(generator.New(store), cfg.Output.Dir, publish.New(cfg.Publish))
		sigCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		if err := runtime.Publish(sigCtx, CLI.Publish.Title); err != nil {
			return err
		}
		fmt.Printf("Published %q\n", CLI.Publish.Title)
		return nil

	case "lint":
		return runLint(store)

	case "serve":
		return runServe(cfg, store)
	}

	svc, _, cleanup := buildService(cfg, store)
	defer cleanup()
	return runAdmin(command, svc)
}

// buildService wires the mutation service with the audit log. The audit log
// is best-effort; mutations still work without it.
func buildService(cfg *config.Config, store storage.Store) (*admin.Service, *history.Log, func()) {
	svc := admin.NewService(store)
	log, err := history.Open(cfg.History.Path)
	if err != nil {
		slog.Warn("History database unavailable", slog.String("error", err.Error()))
		return svc, nil, func() {}
	}
	return svc.WithHistory(log), log, func() { _ = log.Close() }
}

func runLint(store storage.Store) error {
	result, err := lint.NewLinter(store).Run()
	if err != nil {
		return err
	}
	for _, issue := range result.Issues {
		name := issue.Slug
		if name == "" {
			name = issue.PostID
		}
		fmt.Printf("%-7s %s [%s] %s\n", issue.Severity, name, issue.Rule, issue.Message)
	}
	fmt.Printf("%d posts checked: %d errors, %d warnings\n", result.PostsTotal, result.ErrorCount(), result.WarningCount())
	if result.HasErrors() {
		return errors.ValidationMsg("lint found errors")
	}
	return nil
}

func runServe(cfg *config.Config, store storage.Store) error {
	recorder := metrics.NewPrometheusRecorder(nil)
	runtime := daemon.NewRuntime(generator.New(store), cfg.Output.Dir, publish.New(cfg.Publish)).
		WithMetrics(recorder)

	svc, log, cleanup := buildService(cfg, store)
	defer cleanup()

	srv := server.New(svc, runtime).WithMetrics(recorder, recorder.Handler())
	if log != nil {
		srv = srv.WithHistory(log)
	}

	d := daemon.New(cfg, runtime, srv.Handler())
	if CLI.Serve.Watch {
		d = d.WithWatch()
	}

	sigCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return d.Run(sigCtx)
}

func setupLogging() *errors.CLIAdapter {
	level := slog.LevelInfo
	if CLI.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return errors.NewCLIAdapter(CLI.Verbose, logger)
}

// applyLoggingConfig re-applies the handler once the config file is known.
// The --verbose flag still wins over the configured level.
func applyLoggingConfig(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if CLI.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
