package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/VitaminP8/blogql/graph"
	"github.com/VitaminP8/blogql/internal/app"
	"github.com/VitaminP8/blogql/internal/config"
	"github.com/VitaminP8/blogql/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2/formatter"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	// загружаем .env до чтения переменных окружения
	config.LoadEnv()
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:           "blogql",
		Short:         "GraphQL API for a basic blog: users, profiles, posts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			a, err := app.New(cfg, log, reg)
			if err != nil {
				log.Error("failed to start", zap.Error(err))
				return err
			}

			// Ожидание SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return a.Run(ctx)
		},
	}

	flags := cmd.Flags()
	flags.String("storage", config.StorageMemory, "storage type: memory, postgres or sqlite")
	flags.String("addr", ":8080", "HTTP listen address")
	flags.String("log-level", "info", "log level: debug, info, warn, error")

	_ = v.BindPFlag("storage", flags.Lookup("storage"))
	_ = v.BindPFlag("addr", flags.Lookup("addr"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))

	cmd.AddCommand(newSchemaCmd())
	return cmd
}

// newSchemaCmd печатает GraphQL-схему (для клиентов и генераторов кода)
func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the GraphQL schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := graph.LoadSchema()
			if err != nil {
				return err
			}
			formatter.NewFormatter(cmd.OutOrStdout()).FormatSchema(s)
			return nil
		},
	}
}
