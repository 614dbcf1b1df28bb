package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vellum-ui/vellum/internal/config"
	"github.com/vellum-ui/vellum/pkg/component"
	"github.com/vellum-ui/vellum/pkg/rcache"
	"github.com/vellum-ui/vellum/pkg/render"
	"github.com/vellum-ui/vellum/pkg/server"
	"github.com/vellum-ui/vellum/pkg/vellum"
)

func serveCmd() *cobra.Command {
	var (
		port      int
		host      string
		configDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo application",
		Long: `Start an HTTP server rendering the built-in demo page.

Configuration is read from vellum.json in the config directory;
flags override the file.

Examples:
  vellum serve
  vellum serve --port=8080
  vellum serve --config=./deploy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host, configDir)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from vellum.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from vellum.json)")
	cmd.Flags().StringVarP(&configDir, "config", "c", ".", "Directory containing vellum.json")

	return cmd
}

func runServe(port int, host string, configDir string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	appCfg := vellum.Config{
		Render: render.RendererConfig{
			DisableEscaping: cfg.Render.DisableEscaping,
			InternCapacity:  cfg.Render.InternCapacity,
		},
		Cache: rcache.Config{
			MaxEntries:      cfg.Cache.MaxEntries,
			MaxMemory:       cfg.Cache.MaxMemory,
			TTL:             cfg.CacheTTL(),
			CleanupInterval: cfg.CacheCleanupInterval(),
		},
		Logger: logger,
	}
	if cfg.Metrics.Enabled {
		appCfg.CacheMetrics = rcache.NewMetrics(rcache.WithNamespace(cfg.Metrics.Namespace))
		appCfg.Metrics = vellum.NewMetrics(cfg.Metrics.Namespace, nil)
	}

	app := vellum.New(appCfg)
	defer app.Close()

	root := demoRoot()
	app.Attach(root)
	root.Mount()
	defer root.Unmount()

	srvCfg := server.DefaultConfig()
	srvCfg.Host = cfg.Server.Host
	srvCfg.Port = cfg.Server.Port
	srvCfg.ShutdownTimeout = cfg.ServerShutdownTimeout()
	srvCfg.MetricsEnabled = cfg.Metrics.Enabled
	srvCfg.Page.Title = pageTitle(cfg)

	srv := server.New(app, root, srvCfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	return srv.ListenAndServe(ctx)
}

func pageTitle(cfg *config.Config) string {
	if cfg.Name != "" {
		return cfg.Name
	}
	return "Vellum"
}

// demoRoot builds the welcome page: a heading and a click counter.
func demoRoot() *component.Component {
	root, _ := component.NewTag("Demo", "main")
	root.SetProp("class", "demo")

	heading, _ := component.NewTag("Heading", "h1")
	heading.SetProp("text", "Vellum is running")

	counter, _ := component.NewTag("Counter", "button")
	counter.SetState("count", 0)
	counter.SetProp("text", "Clicked 0 times")
	counter.SetProp("onclick", func() {
		if v, ok := counter.State("count"); ok {
			if n, ok := v.(int); ok {
				counter.SetState("count", n+1)
			}
		}
	})
	counter.Updated.Add(func(c *component.Component) {
		if v, ok := c.State("count"); ok {
			if n, ok := v.(int); ok {
				c.SetProp("text", fmt.Sprintf("Clicked %d times", n))
			}
		}
	})

	root.AddChild(heading)
	root.AddChild(counter)
	return root
}
