package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/gogpu/scatter"
)

// maxServeSide caps query-selected snapshot dimensions.
const maxServeSide = 4096

func newServeCmd() *cobra.Command {
	var f plotFlags
	var addr string

	cmd := newPlotCmd("serve", "Serve PNG snapshots of the points over HTTP", &f)
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		build, err := f.plots(cmd)
		if err != nil {
			return err
		}
		log := loggerFromContext(cmd.Context())

		srv := &http.Server{
			Addr:              addr,
			Handler:           newRouter(build, log),
			ReadHeaderTimeout: 5 * time.Second,
		}
		return serve(cmd.Context(), srv, log)
	}
	return cmd
}

func serve(ctx context.Context, srv *http.Server, log *log.Logger) error {
	errc := make(chan error, 1)
	go func() {
		log.Info("serving", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// plotBuilder returns the served plot, restyled by extra options.
type plotBuilder func(extra ...scatter.Option) (*scatter.ScatterPlot, error)

// plots loads the input once, so input errors surface before listening,
// and returns a builder that restyles the loaded columns per request.
func (f *plotFlags) plots(cmd *cobra.Command) (plotBuilder, error) {
	cols, err := f.input.load()
	if err != nil {
		return nil, err
	}
	opts, err := f.options(cmd)
	if err != nil {
		return nil, err
	}
	p, err := scatter.Scatter(cols.X, cols.Y, opts...)
	if err != nil {
		return nil, err
	}
	return func(extra ...scatter.Option) (*scatter.ScatterPlot, error) {
		if len(extra) == 0 {
			return p, nil
		}
		return scatter.Scatter(cols.X, cols.Y, slices.Concat(opts, extra)...)
	}, nil
}

func newRouter(build plotBuilder, log *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<!doctype html><title>scatterview</title><img src="/plot.png" alt="scatter plot">`)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/plot.png", func(w http.ResponseWriter, req *http.Request) {
		opts, err := queryOptions(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p, err := build(opts...)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := p.WritePNG(w); err != nil {
			log.Error("snapshot failed", "err", err)
		}
	})
	return r
}

// queryOptions maps w, h, size and color query parameters onto options.
func queryOptions(req *http.Request) ([]scatter.Option, error) {
	q := req.URL.Query()
	var opts []scatter.Option

	dim := func(key string, set func(float64) scatter.Option) error {
		s := q.Get(key)
		if s == "" {
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 || v > maxServeSide {
			return fmt.Errorf("%s must be an integer in [1, %d]", key, maxServeSide)
		}
		opts = append(opts, set(float64(v)))
		return nil
	}
	if err := dim("w", scatter.WithWidth); err != nil {
		return nil, err
	}
	if err := dim("h", scatter.WithHeight); err != nil {
		return nil, err
	}
	if s := q.Get("size"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("size: %w", err)
		}
		opts = append(opts, scatter.WithSize(v))
	}
	if s := q.Get("color"); s != "" {
		opts = append(opts, scatter.WithColor("#"+s))
	}
	return opts, nil
}

func requestLogger(log *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"elapsed", time.Since(start).Round(time.Microsecond),
				"id", middleware.GetReqID(r.Context()))
		})
	}
}
