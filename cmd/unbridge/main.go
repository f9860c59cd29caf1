// unbridge exposes an Unraid server's GraphQL API as MCP tools over stdio
// or as a plain HTTP REST surface.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/termfx/unbridge/config"
	"github.com/termfx/unbridge/graphql"
	"github.com/termfx/unbridge/mcp"
	"github.com/termfx/unbridge/rest"
	"github.com/termfx/unbridge/unraid"
)

func main() {
	root := &cobra.Command{
		Use:           "unbridge",
		Short:         "Unraid GraphQL gateway",
		Long:          "unbridge translates read-only Unraid management operations into GraphQL queries, served as MCP tools over stdio or as HTTP REST endpoints.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(stdioCmd(), httpCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the environment, builds the logger and the shared service
// stack. Called by both subcommands.
func setup(opts unraid.Options) (*config.Config, *unraid.Service, zerolog.Logger, error) {
	// Optional; a missing .env file is not an error.
	godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return nil, nil, zerolog.Nop(), err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	// stdout carries protocol frames in stdio mode, so logs go to stderr.
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	client := graphql.NewClient(graphql.ClientOptions{
		Endpoint:           cfg.APIURL,
		APIKey:             cfg.APIKey,
		Timeout:            cfg.Timeout,
		InsecureSkipVerify: !cfg.VerifySSL,
		Logger:             logger,
	})

	service, err := unraid.NewService(client, opts, logger)
	if err != nil {
		return nil, nil, zerolog.Nop(), err
	}

	return cfg, service, logger, nil
}

func stdioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, service, logger, err := setup(unraid.ToolOptions())
			if err != nil {
				return err
			}

			server := mcp.NewStdioServer(service, os.Stdin, os.Stdout, logger)
			return server.Start()
		},
	}
}

func httpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "http",
		Short: "Serve the HTTP REST surface",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, service, logger, err := setup(unraid.RESTOptions())
			if err != nil {
				return err
			}

			server := rest.NewServer(service, cfg.Addr(), logger)

			errs := make(chan error, 1)
			go func() {
				errs <- server.Start()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errs:
				return err
			case sig := <-stop:
				logger.Info().Str("signal", sig.String()).Msg("shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(ctx)
			}
		},
	}
}
