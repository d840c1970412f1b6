package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"cantwait/internal/clock"
	"cantwait/internal/config"
	"cantwait/internal/errors"
	"cantwait/internal/event"
	"cantwait/internal/eventfile"
	"cantwait/internal/logging"
	"cantwait/internal/timeline"
	"cantwait/internal/tui"
	"cantwait/internal/web"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"server.addr":          "addr",
	"server.port":          "port",
	"refresh.interval":     "interval",
	"timeline.allow_equal": "allow-equal",
	"timeline.location":    "location",
	"logging.level":        "log-level",
	"logging.format":       "log-format",
	"logging.file":         "log-file",
	"logging.caller":       "log-caller",
}

// app carries the streams, clock and settings shared by all commands.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	clock  clock.Clock

	cfg *config.Config

	configFile string
	events     []string
	file       string
	title      string
	now        string
	output     string
	watch      bool
	save       string
	port       int
}

// timelineInput is the collected event list with its decorations.
type timelineInput struct {
	title  string
	raws   []string
	labels []string
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cantwait [flags] [event ...]",
		Short: "Countdown and progress across a sequence of dates (CLI, terminal or web)",
		Long: `cantwait shows how far "now" is between the first and the last of a
sequence of dates, with a plain sentence per event ("happened 2 days, ...
ago", "will happen in ...").

Events are dates or date-times such as 2024-06-01, 2024-06-01T09:00,
2024-06-01T09:00:00+02:00, 2024/06/01 or "June 1, 2024". They must be in strictly increasing order.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.port > 0 {
				return a.serve(cmd.Context())
			}
			return a.show(cmd.Context(), args)
		},
	}

	cmd.Version = appVersion
	cmd.SetVersionTemplate("cantwait v{{.Version}}\n")
	cmd.SetIn(a.in)
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Config file (default: search for cantwait.yaml)")
	pf.String("log-level", "", "Log level: trace, debug, info, warn, error, disabled")
	pf.String("log-format", "", "Log format: auto, console, json")
	pf.String("log-file", "", "Also write logs to this file, rotated")
	pf.Bool("log-caller", false, "Add file:line to log entries")
	pf.String("location", "", `Time zone for date-times without offset ("Local", "UTC", IANA name)`)
	pf.Bool("allow-equal", false, "Accept adjacent events with the same timestamp")

	f := cmd.Flags()
	f.BoolP("version", "v", false, "Show version and exit")
	addEventFlags(f, a)
	f.StringVar(&a.now, "now", "", "Reference instant instead of the current time")
	f.StringVarP(&a.output, "output", "o", outputText, "Output format: text or json")
	f.BoolVarP(&a.watch, "watch", "w", false, "Keep the countdown on screen, refreshed every interval")
	f.Duration("interval", 0, "Refresh interval for --watch (e.g. 1s, 500ms)")
	f.StringVar(&a.title, "title", "", "Title shown above the countdown")
	f.StringVar(&a.save, "save", "", "Write the events to this timeline file")
	f.IntVar(&a.port, "port", 0, "Run web UI on this port (e.g. 8484)")

	cmd.AddCommand(newServeCmd(a), newCheckCmd(a))
	return cmd
}

func addEventFlags(f *pflag.FlagSet, a *app) {
	f.StringArrayVarP(&a.events, "event", "e", nil, "Event date (repeatable, kept in order)")
	f.StringVarP(&a.file, "file", "f", "", "Timeline file (YAML) whose events follow the others")
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().Int("port", 0, "Port to listen on (default 8484)")
	cmd.Flags().String("addr", "", "Address to bind (default all interfaces)")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [event ...]",
		Short: "Validate events and report problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(args)
		},
	}
	addEventFlags(cmd.Flags(), a)
	return cmd
}

// setup loads the configuration and initializes logging.
func (a *app) setup(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if a.configFile != "" {
		loader.SetConfigFile(a.configFile)
	}
	if err := loader.BindFlags(cmd.Flags(), flagKeys); err != nil {
		return err
	}
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	log := logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: a.errOut,
		File:   cfg.Logging.File,

		EnableCaller: cfg.Logging.Caller,
	})
	if used := loader.ConfigFileUsed(); used != "" {
		log.Debug().Str("path", used).Msg("loaded config")
	}
	return nil
}

// collect gathers events from flags, then args, then the timeline file.
// The configured events are used when none is given.
func (a *app) collect(args []string) (timelineInput, error) {
	in := timelineInput{title: a.title}
	in.raws = append(in.raws, a.events...)
	in.raws = append(in.raws, args...)
	in.labels = make([]string, len(in.raws))

	if a.file != "" {
		f, err := eventfile.Load(a.file)
		if err != nil {
			return in, err
		}
		in.raws = append(in.raws, f.Raw()...)
		in.labels = append(in.labels, f.Labels()...)
		if in.title == "" {
			in.title = f.Title
		}
	}

	if len(in.raws) == 0 && len(a.cfg.Events) > 0 {
		in.raws = append(in.raws, a.cfg.Events...)
		in.labels = make([]string, len(in.raws))
	}
	return in, nil
}

func (a *app) build(in timelineInput) (timeline.State, error) {
	opts, err := a.cfg.TimelineOptions()
	if err != nil {
		return timeline.State{}, err
	}
	return timeline.Build(in.raws, opts...), nil
}

// reference returns the instant snapshots are taken at.
func (a *app) reference() (clock.Clock, error) {
	if strings.TrimSpace(a.now) == "" {
		return a.clock, nil
	}
	loc, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}
	p := event.Parse(a.now, loc)
	if !p.Valid {
		return nil, errors.Wrapf(errors.ErrInvalidNow, "%q", a.now)
	}
	return clock.FixedClock{At: p.At}, nil
}

func (a *app) show(ctx context.Context, args []string) error {
	if a.output != outputText && a.output != outputJSON {
		return errors.Wrapf(errors.ErrInvalidOutputFormat, "%q (want %s or %s)", a.output, outputText, outputJSON)
	}

	in, err := a.collect(args)
	if err != nil {
		return err
	}
	state, err := a.build(in)
	if err != nil {
		return err
	}
	clk, err := a.reference()
	if err != nil {
		return err
	}

	if a.save != "" {
		if err := eventfile.Save(a.save, fileFrom(in)); err != nil {
			return err
		}
		logging.Component("cli").Info().Str("path", a.save).Int("events", len(in.raws)).Msg("saved timeline")
	}

	if a.watch && state.Live() && a.output == outputText {
		return tui.Watch(ctx, state, a.watchConfig(in, clk), a.in, a.out)
	}

	now := clk.Now()
	if a.output == outputJSON {
		if err := a.printJSON(in, state, now); err != nil {
			return err
		}
	} else {
		a.printText(in, state, now)
	}

	if state.Kind() == timeline.Invalid {
		return errors.Wrap(errors.ErrValidationFailed, state.Validation().Summary())
	}
	return nil
}

func (a *app) watchConfig(in timelineInput, clk clock.Clock) tui.WatchConfig {
	cfg := tui.DefaultWatchConfig()
	if a.cfg.Refresh.Interval > 0 {
		cfg.Interval = a.cfg.Refresh.Interval
	}
	cfg.Clock = clk
	cfg.Title = in.title
	cfg.Labels = in.labels
	cfg.Width = barWidth(a.out)
	return cfg
}

func (a *app) check(args []string) error {
	in, err := a.collect(args)
	if err != nil {
		return err
	}
	state, err := a.build(in)
	if err != nil {
		return err
	}

	switch state.Kind() {
	case timeline.Invalid:
		for _, msg := range state.Validation().Messages() {
			fmt.Fprintln(a.out, msg)
		}
		return errors.Wrap(errors.ErrValidationFailed, state.Validation().Summary())
	case timeline.Insufficient:
		fmt.Fprintf(a.out, "%s: at least two are needed for a countdown\n", english.Plural(len(in.raws), "event", ""))
	default:
		fmt.Fprintf(a.out, "%d events, in order\n", len(in.raws))
	}
	return nil
}

func (a *app) serve(ctx context.Context) error {
	srv, err := web.New(a.cfg, appVersion, a.clock)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Listening on:")
	for _, u := range web.ListenURLs(a.cfg.Server.Addr, a.cfg.Server.Port) {
		fmt.Fprintf(a.out, "  %s\n", u)
	}
	fmt.Fprintln(a.out)

	return srv.ListenAndServe(ctx, a.cfg.ListenAddr())
}

func (a *app) printText(in timelineInput, state timeline.State, now time.Time) {
	rep := tui.Report{Title: in.title, Labels: in.labels, State: state}
	if snap, err := state.Snapshot(now); err == nil {
		rep.Snapshot = snap
	}
	fmt.Fprint(a.out, tui.NewRenderer(barWidth(a.out)).Render(rep))
}

type jsonReport struct {
	Title  string   `json:"title,omitempty"`
	Labels []string `json:"labels,omitempty"`
	timeline.Summary
}

func (a *app) printJSON(in timelineInput, state timeline.State, now time.Time) error {
	rep := jsonReport{Title: in.title, Summary: timeline.Summarize(state, now)}
	for _, l := range in.labels {
		if l != "" {
			rep.Labels = in.labels
			break
		}
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return errors.Wrap(err, "encode json")
	}
	return nil
}

func fileFrom(in timelineInput) *eventfile.File {
	f := eventfile.New(in.title, in.raws)
	for i := range f.Events {
		if i < len(in.labels) {
			f.Events[i].Label = in.labels[i]
		}
	}
	return f
}

// barWidth sizes the progress bar to the terminal, leaving room for the
// percentage.
func barWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return tui.DefaultBarWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 20 {
		return tui.DefaultBarWidth
	}
	return min(width-10, 100)
}
