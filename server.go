package main

import (
	"context"
	"net"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/mager/tracklens/config"
	"github.com/mager/tracklens/database"
	"github.com/mager/tracklens/dataset"
	"github.com/mager/tracklens/explorer"
	"github.com/mager/tracklens/handler/artists"
	"github.com/mager/tracklens/handler/facts"
	"github.com/mager/tracklens/handler/figures"
	"github.com/mager/tracklens/handler/health"
	"github.com/mager/tracklens/handler/live"
	"github.com/mager/tracklens/logger"
	"github.com/mager/tracklens/metrics"
)

// Route is an http.Handler that knows the mux pattern
// under which it will be registered.
type Route interface {
	http.Handler

	// Pattern reports the path at which this is registered.
	Pattern() string
}

// RequestIDHeader carries the request id set by the server.
const RequestIDHeader = "X-Request-ID"

// ServerParams are the dependencies of the HTTP server.
type ServerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Log       *zap.SugaredLogger
	Metrics   *metrics.Metrics
	Store     *dataset.Store
	Mirror    *database.Mirror
	Routes    []Route `group:"routes"`
}

func newApp(dataDir string) *fx.App {
	return fx.New(
		fx.Decorate(func(cfg config.Config) config.Config {
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			return cfg
		}),
		fx.Provide(NewHTTPServer,
			config.Options,
			logger.Options,
			metrics.Options,
			database.Options,
			database.NewMirror,
			NewStore,
			explorer.NewExplorer,

			AsRoute(health.NewHealthHandler),
			AsRoute(facts.NewFactsHandler),
			AsRoute(artists.NewArtistsHandler),
			AsRoute(figures.NewFiguresHandler),
			AsRoute(live.NewLiveHandler),
		),
		fx.Invoke(func(*http.Server) {}),
	)
}

// NewStore provides the dataset store for the configured data directory.
func NewStore(cfg config.Config, log *zap.SugaredLogger) *dataset.Store {
	l := dataset.NewLoader(cfg.DataDir, log)
	l.PrimaryPattern = cfg.PrimaryPattern
	return dataset.NewStore(l.Load, log)
}

// NewHTTPServer loads the dataset on start, so a missing or malformed file
// fails startup, then serves the routes. The Postgres mirror runs in the
// background once the listener is up and is cancelled on stop.
func NewHTTPServer(p ServerParams) *http.Server {
	srv := &http.Server{Addr: p.Config.Addr, Handler: NewRouter(p.Log, p.Metrics, p.Routes)}
	mirrorCtx, cancelMirror := context.WithCancel(context.Background())
	var mirrorDone <-chan struct{}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			t, err := p.Store.Get()
			if err != nil {
				p.Log.Errorw("Failed to load dataset", "error", err)
				return err
			}
			p.Metrics.SetDatasetRows(t.Len())

			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			p.Log.Infow("Starting HTTP server", "addr", srv.Addr, "rows", t.Len())
			go srv.Serve(ln)

			if p.Mirror != nil {
				mirrorDone = mirrorInBackground(mirrorCtx, p.Mirror, t, p.Log)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancelMirror()
			if mirrorDone != nil {
				select {
				case <-mirrorDone:
				case <-ctx.Done():
				}
			}
			return srv.Shutdown(ctx)
		},
	})
	return srv
}

type tableWriter interface {
	Write(ctx context.Context, t *dataset.Table) error
}

// mirrorInBackground writes t with w in its own goroutine. The returned
// channel is closed when the write ends.
func mirrorInBackground(ctx context.Context, w tableWriter, t *dataset.Table, log *zap.SugaredLogger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := w.Write(ctx, t); err != nil {
			log.Warnw("Failed to mirror dataset", "error", err)
		}
	}()
	return done
}

// NewRouter registers every route for GET along with /metrics.
func NewRouter(log *zap.SugaredLogger, m *metrics.Metrics, routes []Route) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware(log), m.Middleware)

	for _, route := range routes {
		r.Handle(route.Pattern(), jsonMiddleware(route)).Methods(http.MethodGet)
	}
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	return r
}

// AsRoute annotates the given constructor to state that
// it provides a route to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func requestIDMiddleware(log *zap.SugaredLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			log.Debugw("request", "id", id, "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
			next.ServeHTTP(w, r)
		})
	}
}
