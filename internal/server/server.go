// Package server exposes the GraphQL schema over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/buker/go-graphql/internal/config"
	"github.com/cockroachdb/errors"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/penglongli/gin-metrics/ginmetrics"
	log "github.com/sirupsen/logrus"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 5 * time.Second

// Server serves the GraphQL endpoint and, optionally, a metrics endpoint.
type Server struct {
	cfg     config.Config
	schema  graphql.Schema
	app     *gin.Engine
	metrics *gin.Engine
}

// Option configures a Server.
type Option func(*options)

type options struct {
	middleware []gin.HandlerFunc
}

// WithMiddleware runs handlers on every request after the built-in
// middleware and before the routes.
func WithMiddleware(handlers ...gin.HandlerFunc) Option {
	return func(o *options) { o.middleware = append(o.middleware, handlers...) }
}

// New builds the routes for schema. Metrics are only collected when
// cfg.MetricsAddr is set.
func New(cfg config.Config, schema graphql.Schema, opts ...Option) *Server {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{
		cfg:    cfg,
		schema: schema,
		app:    gin.New(),
	}
	// The caller address is the socket peer; forwarding headers are client-controlled.
	s.app.ForwardedByClientIP = false

	s.app.Use(stampStart())
	s.app.Use(gin.Recovery())
	s.app.Use(sentrygin.New(sentrygin.Options{
		Repanic: true,
	}))
	s.app.Use(sessions.Sessions("graphql", cookie.NewStore([]byte(cfg.SessionSecret))))
	s.app.Use(countSessionRequests())
	s.app.Use(logRequests())
	s.app.Use(gzip.Gzip(gzip.DefaultCompression))

	if cfg.MetricsAddr != "" {
		s.metrics = gin.New()
		m := ginmetrics.GetMonitor()
		m.SetMetricPath("/metrics")
		m.SetSlowTime(10)
		m.SetDuration([]float64{0.1, 0.3, 1.2, 5, 10})
		m.UseWithoutExposingEndpoint(s.app)
		m.Expose(s.metrics)
	}
	s.app.Use(o.middleware...)

	s.app.GET("/graphql", s.handleGraphQL)
	s.app.POST("/graphql", s.handleGraphQL)
	s.app.GET("/healthz", handleHealth)
	s.app.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	return s
}

// Handler returns the handler of the GraphQL endpoint.
func (s *Server) Handler() http.Handler {
	return s.app
}

// MetricsHandler returns the handler of the metrics endpoint, or nil when
// metrics are disabled.
func (s *Server) MetricsHandler() http.Handler {
	if s.metrics == nil {
		return nil
	}
	return s.metrics
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	servers := []*http.Server{{Addr: s.cfg.Addr, Handler: s.app}}
	if s.metrics != nil {
		servers = append(servers, &http.Server{Addr: s.cfg.MetricsAddr, Handler: s.metrics})
	}

	errc := make(chan error, len(servers))
	for _, srv := range servers {
		srv := srv
		log.Infof("Starting server on %s", srv.Addr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- errors.Wrapf(err, "serving %s", srv.Addr)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errc:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Shutdown of ", srv.Addr, " failed: ", err)
		}
	}
	return runErr
}
