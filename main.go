package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buker/go-graphql/docs"
	"github.com/buker/go-graphql/internal/config"
	"github.com/buker/go-graphql/internal/random"
	"github.com/buker/go-graphql/internal/records"
	"github.com/buker/go-graphql/internal/resolver"
	"github.com/buker/go-graphql/internal/schema"
	"github.com/buker/go-graphql/internal/server"
	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /

func main() {
	cfg := config.FromEnv()
	root := &cobra.Command{
		Use:          "graphql-server",
		Short:        "GraphQL API server over an in-memory message store",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
	cfg.BindFlags(root.Flags())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	if err := cfg.EnsureSessionSecret(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.ConfigureLogging(); err != nil {
		return err
	}
	if log.IsLevelEnabled(log.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	/////////////////////////////////////////////////////////////////////////////////////////////////
	//////////////////////////////////////////Sentry////////////////////////////////////////////
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			AttachStacktrace: true,
		}); err != nil {
			return errors.Wrap(err, "sentry initialization failed")
		}
		defer sentry.Flush(2 * time.Second)
	}

	/////////////////////////////////////////////////////////////////////////////////////////////////
	///////////////////////Swagger//////////////////////////////////////
	docs.SwaggerInfo.Title = "GraphQL message API"
	docs.SwaggerInfo.Description = "GraphQL endpoint over an in-memory message store"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = cfg.Addr
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	store := records.NewStore()
	rootResolver := resolver.NewRoot(store,
		resolver.WithGenerator(random.NewFromTime()),
		resolver.WithMetrics(resolver.NewMetrics(prometheus.DefaultRegisterer, store)))
	s, err := schema.New(rootResolver)
	if err != nil {
		return err
	}

	log.Infof("Running a GraphQL API server at %s/graphql", cfg.Addr)
	return server.New(cfg, s).Run(ctx)
}
