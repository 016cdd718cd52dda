package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/numen/pkg/api"
	"github.com/hazyhaar/numen/pkg/kit"
)

// app is the state shared by all subcommands once the config is loaded.
type app struct {
	configPath string
	logLevel   string
	jsonOut    bool

	cfg    config
	logger *slog.Logger
}

func rootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "numen",
		Short: "Numerology reduction and word search",
		Long: `numen reduces numbers to a single digit or a master number (11, 22),
computes the expression, soul urge and personality numbers of names and
the life path, attitude, generation and day-of-birth numbers of dates, and
searches generated words of alternating vowels and consonants for given
target numbers.

Every operation is available from the command line, over HTTP and as MCP
tools (stdio, streamable HTTP, or QUIC).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "numen.yaml", "config file (YAML)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		nameCmd(a),
		namesCmd(a),
		dateCmd(a),
		datesCmd(a),
		searchCmd(a),
		reduceCmd(a),
		serveCmd(a),
		mcpCmd(a),
		callCmd(a),
		versionCmd(),
	)
	return cmd
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, found, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), level)
	if !found {
		a.logger.Debug("no config file, using defaults", "path", a.configPath)
	}
	return nil
}

// endpoints returns the endpoint set for local, uninstrumented use.
func (a *app) endpoints() *api.Endpoints {
	return api.NewEndpoints(a.cfg.limits(), a.logger, nil)
}

// call runs ep with the cli transport tag.
func (a *app) call(ctx context.Context, ep kit.Endpoint, req any) (any, error) {
	return ep(kit.WithTransport(ctx, "cli"), req)
}

func (a *app) addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&a.jsonOut, "json", false, "print the result as JSON")
}

// print writes resp as indented JSON with --json, otherwise through text.
func (a *app) print(cmd *cobra.Command, resp any, text func() error) error {
	if !a.jsonOut {
		return text()
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "numen version %s\n", version)
		},
	}
}
