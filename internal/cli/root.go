package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/RobertCoop/ontologies-linked-data/config"
	"github.com/RobertCoop/ontologies-linked-data/ontology"
	"github.com/RobertCoop/ontologies-linked-data/store"
)

var version = "dev"

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	version = v
}

// app holds state shared by the commands of one invocation.
type app struct {
	configPath string
	database   string
	verbose    bool
	logOut     io.Writer

	cfg config.Config
}

// Execute runs the ldflex CLI.
func Execute() error {
	return newRootCmd(os.Stderr).ExecuteContext(context.Background())
}

// newRootCmd builds the command tree. Logs go to logOut.
func newRootCmd(logOut io.Writer) *cobra.Command {
	a := &app{logOut: logOut}

	root := &cobra.Command{
		Use:           "ldflex",
		Short:         "ldflex flattens linked-data entities into plain representations",
		Long:          `ldflex loads RDF N-Triples into a local store and prints stored entities as flat key/value representations, with field selection by only/except/methods/all.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "TOML config file")
	pf.StringVar(&a.database, "db", "", "SQLite database (overrides config)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(a.importCommand())
	root.AddCommand(a.listCommand())
	root.AddCommand(a.flattenCommand())
	root.AddCommand(a.nextSubmissionCommand())
	root.AddCommand(a.kindsCommand())
	return root
}

// setup loads the config and attaches the logger to the command context.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.database != "" {
		cfg.Database = a.database
	}
	a.cfg = cfg

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if a.verbose {
		level = log.DebugLevel
	}
	logger := newLogger(a.logOut, level)
	logger.Debug("config loaded", "path", a.configPath, "database", cfg.Database, "format", cfg.Format)

	cmd.SetContext(withLogger(cmd.Context(), logger))
	return nil
}

// openRepository opens the configured store. The caller closes the store.
func (a *app) openRepository(ctx context.Context) (*store.Store, *ontology.Repository, error) {
	s, err := store.Open(ctx, a.cfg.Database, store.WithLogger(loggerFromContext(ctx)))
	if err != nil {
		return nil, nil, err
	}
	return s, ontology.NewRepository(s), nil
}
