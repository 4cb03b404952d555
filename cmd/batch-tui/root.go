package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/altinukshini/batch-tui/internal/api"
	"github.com/altinukshini/batch-tui/internal/config"
	"github.com/altinukshini/batch-tui/internal/enquiry"
	"github.com/altinukshini/batch-tui/internal/logging"
	"github.com/altinukshini/batch-tui/internal/model"
	"github.com/altinukshini/batch-tui/internal/tui"
)

// options holds the global flags.
type options struct {
	configFile    string
	server        string
	token         string
	verbose       bool
	batchInstance int64
	jobInstance   int64
	status        string
}

// handoff turns the launch flags into criteria for the first search.
func (o options) handoff() (*enquiry.Handoff, error) {
	h := enquiry.NewHandoff()
	var f enquiry.Fields
	if o.status != "" {
		st, err := model.ParseStatus(o.status)
		if err != nil {
			return nil, fmt.Errorf("--status: %w", err)
		}
		f.Status = string(st)
	}
	if o.batchInstance > 0 {
		f.BatchInstanceID = strconv.FormatInt(o.batchInstance, 10)
	}
	if o.jobInstance > 0 {
		f.JobInstanceID = strconv.FormatInt(o.jobInstance, 10)
	}
	if f != (enquiry.Fields{}) {
		h.Put(f)
	}
	return h, nil
}

// session is everything a command needs to talk to the batch server.
type session struct {
	cfg    config.Config
	log    zerolog.Logger
	closer io.Closer
	client *api.Client
	screen *enquiry.Screen
}

func (s *session) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (o options) open() (*session, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.server != "" {
		cfg.Server.URL = o.server
	}
	if o.token != "" {
		cfg.Server.Token = o.token
	}
	if o.verbose {
		cfg.Log.Level = zerolog.LevelDebugValue
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(api.Options{
		BaseURL:  cfg.Server.URL,
		Token:    cfg.Server.Token,
		Timeout:  cfg.Server.Timeout,
		RetryMax: cfg.Server.RetryMax,
		Log:      log.With().Str("component", "api").Logger(),
	})
	if err != nil {
		closer.Close()
		return nil, err
	}

	handoff, err := o.handoff()
	if err != nil {
		closer.Close()
		return nil, err
	}

	log.Info().Str("server", cfg.ServerHost()).Str("version", version).Msg("starting")
	return &session{
		cfg:    cfg,
		log:    log,
		closer: closer,
		client: client,
		screen: enquiry.NewScreen(client, cfg.Enquiry, handoff, log),
	}, nil
}

func newRootCmd() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "batch-tui",
		Short: "Job instance enquiry for the batch server",
		Long: `batch-tui lists job instances on a batch server, shows their detail
and history, and lets an operator rerun, force OK or cancel them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			app := tui.NewApp(s.cfg, s.screen, s.client, s.log).WithContext(cmd.Context())
			p := tea.NewProgram(&app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				s.log.Error().Err(err).Msg("program exited")
				return err
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Configuration file path")
	flags.StringVar(&opts.server, "server", "", "Batch server URL (overrides config)")
	flags.StringVar(&opts.token, "token", "", "Batch server API token (overrides config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")
	flags.Int64Var(&opts.batchInstance, "batch-instance", 0, "Open with the job instances of this batch instance")
	flags.Int64Var(&opts.jobInstance, "job-instance", 0, "Open with this job instance")
	flags.StringVar(&opts.status, "status", "", "Open with job instances in this status")

	rootCmd.Version = version
	rootCmd.AddCommand(newListCmd(&opts), newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "batch-tui", version)
		},
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
