package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/boxtube/internal/repositories"
	"github.com/desertthunder/boxtube/internal/services"
	"github.com/desertthunder/boxtube/internal/shared"
	"github.com/desertthunder/boxtube/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	catalog    services.Catalog
	kv         repositories.KV
	users      *repositories.UserStore
	playlists  *repositories.PlaylistStore
	searches   *repositories.SearchHistoryStore
	watched    *repositories.WatchHistoryStore
	engine     *tasks.BrowseEngine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Catalog    services.Catalog
	KV         repositories.KV
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration. The
// persisted stores are loaded for the identity recorded in storage.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Catalog == nil {
		opts.Catalog = services.NewCatalogService(opts.Config.Catalog, opts.HTTPClient)
	}

	users := repositories.NewUserStore(opts.KV, opts.Logger)
	scope := users.ScopeID()

	r := &Runner{
		config:     opts.Config,
		catalog:    opts.Catalog,
		kv:         opts.KV,
		users:      users,
		playlists:  repositories.NewPlaylistStore(opts.KV, opts.Logger, scope),
		searches:   repositories.NewSearchHistoryStore(opts.KV, opts.Logger, scope),
		watched:    repositories.NewWatchHistoryStore(opts.KV, opts.Logger, scope),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	r.engine = tasks.NewBrowseEngine(r.catalog, r.watched, r.searches)

	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, subsCommand, searchCommand, feedCommand,
		videoCommand, channelCommand, playlistCommand, historyCommand,
		searchesCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the runner's logger, for the TUI's file-backed logging.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// rescope reloads every identity-partitioned store after a login, logout, or
// signup. Collections are swapped, never merged.
func (r *Runner) rescope() {
	scope := r.users.ScopeID()
	r.playlists.SetScope(scope)
	r.searches.SetScope(scope)
	r.watched.SetScope(scope)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
