package vellum

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vellum-ui/vellum/pkg/component"
	"github.com/vellum-ui/vellum/pkg/rcache"
	"github.com/vellum-ui/vellum/pkg/render"
	"github.com/vellum-ui/vellum/pkg/vdom"
)

// App is the Vellum application runtime. It owns the renderer and the render
// cache, tracks the last rendered tree per component so updates produce
// patches instead of full re-renders, and broadcasts patch batches to
// subscribers.
//
// All shared state lives on the App; there are no package-level singletons.
// Two Apps in one process are fully independent.
type App struct {
	renderer *render.Renderer
	cache    *rcache.Cache
	logger   *slog.Logger
	tracer   tracer
	metrics  *Metrics

	// The renderer is single-threaded; renderMu serializes passes so
	// concurrent HTTP requests cannot interleave in the handler registry
	// or the intern pool.
	renderMu sync.Mutex

	mu sync.Mutex

	// Last rendered tree per component id.
	trees map[uint64]*vdom.VNode

	// Last cache key written per component id, so invalidation can drop
	// the stale entry.
	cacheKeys map[uint64]string

	subscribers map[chan []vdom.Patch]struct{}
}

// Config configures an App.
type Config struct {
	// Render configures the HTML renderer.
	Render render.RendererConfig

	// Cache configures the render cache.
	Cache rcache.Config

	// CacheMetrics, when set, receives the cache counters.
	CacheMetrics *rcache.Metrics

	// Metrics, when set, receives render and update durations.
	Metrics *Metrics

	// Logger is the application logger. Default: slog.Default().
	Logger *slog.Logger
}

// New creates an application runtime.
func New(cfg Config) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cacheOpts := []rcache.Option{}
	if cfg.CacheMetrics != nil {
		cacheOpts = append(cacheOpts, rcache.WithMetrics(cfg.CacheMetrics))
	}

	return &App{
		renderer:    render.NewRenderer(cfg.Render),
		cache:       rcache.New(cfg.Cache, logger, cacheOpts...),
		logger:      logger.With("component", "app"),
		tracer:      newTracer(),
		metrics:     cfg.Metrics,
		trees:       make(map[uint64]*vdom.VNode),
		cacheKeys:   make(map[uint64]string),
		subscribers: make(map[chan []vdom.Patch]struct{}),
	}
}

// Renderer returns the app's HTML renderer.
func (a *App) Renderer() *render.Renderer { return a.renderer }

// RenderNode serializes a single tree through the app's renderer.
func (a *App) RenderNode(ctx context.Context, node *vdom.VNode) (string, error) {
	return a.renderAny(ctx, node)
}

func (a *App) renderAny(ctx context.Context, value any) (string, error) {
	a.renderMu.Lock()
	defer a.renderMu.Unlock()
	return a.renderer.RenderAny(ctx, value)
}

// Handler looks up a registered event handler by its registry key.
func (a *App) Handler(key string) (any, bool) {
	a.renderMu.Lock()
	defer a.renderMu.Unlock()
	h, ok := a.renderer.Handlers()[key]
	return h, ok
}

// Cache returns the app's render cache.
func (a *App) Cache() *rcache.Cache { return a.cache }

// Close releases the app's background resources.
func (a *App) Close() {
	a.cache.Close()

	a.mu.Lock()
	defer a.mu.Unlock()
	for ch := range a.subscribers {
		close(ch)
	}
	a.subscribers = make(map[chan []vdom.Patch]struct{})
}

// Attach wires a component (and its children) into the app: mutations drop
// the component's stale cache entry. Call before Mount.
func (a *App) Attach(c *component.Component) {
	c.SetLogger(a.logger)
	c.OnInvalidate(a.invalidate)
	for _, child := range c.Children() {
		a.Attach(child)
	}
}

func (a *App) invalidate(c *component.Component) {
	a.mu.Lock()
	key := a.cacheKeys[c.ID()]
	delete(a.cacheKeys, c.ID())
	a.mu.Unlock()

	if key != "" {
		a.cache.Delete(key)
	}
}

// RenderHTML renders a component to HTML, serving from the cache when the
// component's fingerprint has not changed since the last render.
func (a *App) RenderHTML(ctx context.Context, c *component.Component) (string, error) {
	ctx, span := a.tracer.startRender(ctx, c)
	defer span.end()
	defer a.metrics.observeRender(time.Now())

	key := c.Fingerprint()
	if html, ok := a.cache.Get(key); ok {
		span.cacheHit(true)
		return html, nil
	}
	span.cacheHit(false)

	node := c.Render()
	html, err := a.renderAny(ctx, node)
	if err != nil {
		span.fail(err)
		a.logger.Error("render failed",
			"component", c.TypeName(),
			"id", c.ID(),
			"error", err)
		return "", err
	}

	a.cache.Set(key, html)
	a.mu.Lock()
	a.trees[c.ID()] = node
	a.cacheKeys[c.ID()] = key
	a.mu.Unlock()

	return html, nil
}

// Update re-renders a component and returns the patches against its previous
// tree. The first update of a component yields a single create patch.
// Non-empty batches are broadcast to subscribers.
func (a *App) Update(ctx context.Context, c *component.Component) ([]vdom.Patch, error) {
	ctx, span := a.tracer.startUpdate(ctx, c)
	defer span.end()
	defer a.metrics.observeUpdate(time.Now())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	next := c.Render()

	a.mu.Lock()
	prev := a.trees[c.ID()]
	a.trees[c.ID()] = next
	a.mu.Unlock()

	patches := vdom.Diff(prev, next)
	span.patches(len(patches))
	if len(patches) > 0 {
		a.broadcast(patches)
	}
	return patches, nil
}

// Subscribe returns a channel that receives every non-empty patch batch. The
// channel is closed on Close; slow subscribers drop batches rather than
// blocking renders.
func (a *App) Subscribe() chan []vdom.Patch {
	ch := make(chan []vdom.Patch, 16)
	a.mu.Lock()
	a.subscribers[ch] = struct{}{}
	a.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (a *App) Unsubscribe(ch chan []vdom.Patch) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.subscribers[ch]; ok {
		delete(a.subscribers, ch)
		close(ch)
	}
}

func (a *App) broadcast(patches []vdom.Patch) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for ch := range a.subscribers {
		select {
		case ch <- patches:
		default:
			a.logger.Warn("subscriber too slow, dropping patch batch",
				"patches", len(patches))
		}
	}
}
