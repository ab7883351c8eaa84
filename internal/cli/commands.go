package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RobertCoop/ontologies-linked-data/codec"
	"github.com/RobertCoop/ontologies-linked-data/flex"
	"github.com/RobertCoop/ontologies-linked-data/model"
	"github.com/RobertCoop/ontologies-linked-data/ntriples"
	"github.com/RobertCoop/ontologies-linked-data/ontology"
	"github.com/RobertCoop/ontologies-linked-data/selection"
)

func (a *app) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.nt>...",
		Short: "Load N-Triples files into the store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			s, _, err := a.openRepository(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, path := range args {
				prog := newProgress(logger)
				triples, err := ntriples.ParseFile(path)
				if err != nil {
					return err
				}
				added, err := s.Insert(ctx, triples...)
				if err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
				prog.done("imported", "file", path, "triples", len(triples), "new", added)
			}
			return nil
		},
	}
}

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the stored subjects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, _, err := a.openRepository(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			subjects, err := s.Subjects(ctx)
			if err != nil {
				return err
			}
			for _, subj := range subjects {
				fmt.Fprintln(cmd.OutOrStdout(), subj)
			}
			return nil
		},
	}
}

type flattenFlags struct {
	only      []string
	except    []string
	methods   []string
	all       bool
	selection string
	profile   string
	format    string
}

func (a *app) flattenCommand() *cobra.Command {
	var f flattenFlags

	cmd := &cobra.Command{
		Use:   "flatten <iri>...",
		Short: "Print the flat representation of stored entities",
		Long: `Print the flat representation of stored entities.

Field selection combines, in order, the --profile from the config file, the
--select expression and the --only/--except/--methods/--all flags.`,
		Example: `  ldflex flatten http://data.bioontology.org/ontologies/GO --only acronym,name
  ldflex flatten http://data.bioontology.org/ontologies/GO --select 'all except(submissions)'
  ldflex flatten http://data.bioontology.org/ontologies/GO --profile summary --format cbor`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			opts, err := f.options(a)
			if err != nil {
				return err
			}
			format := a.cfg.Format
			if f.format != "" {
				format = f.format
			}
			c, err := codec.ByName(format)
			if err != nil {
				return err
			}
			logger.Debug("flatten", "selection", selection.Format(opts), "format", c.Name())

			s, repo, err := a.openRepository(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			entities := make([]model.Entity, 0, len(args))
			for _, arg := range args {
				e, err := repo.Load(ctx, model.IRI(arg))
				if err != nil {
					return err
				}
				entities = append(entities, e)
			}

			reps, err := flex.FlattenAll(entities, opts)
			if err != nil {
				return err
			}

			var out any = reps
			if len(reps) == 1 {
				out = reps[0]
			}
			data, err := c.Marshal(out)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if _, err := w.Write(data); err != nil {
				return err
			}
			if c.Name() == "json" {
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringSliceVar(&f.only, "only", nil, "keep only these fields")
	fl.StringSliceVar(&f.except, "except", nil, "drop these fields")
	fl.StringSliceVar(&f.methods, "methods", nil, "add the results of these accessors")
	fl.BoolVar(&f.all, "all", false, "add every serializable method of the entity kind")
	fl.StringVar(&f.selection, "select", "", "selection expression, e.g. 'only(acronym) methods(submissionCount)'")
	fl.StringVar(&f.profile, "profile", "", "named selection from the config file")
	fl.StringVarP(&f.format, "format", "f", "", "output format: "+fmt.Sprint(codec.Names()))
	return cmd
}

// options combines the profile, the selection expression and the flags.
func (f flattenFlags) options(a *app) (flex.Options, error) {
	var opts flex.Options
	if f.profile != "" {
		p, err := a.cfg.Profile(f.profile)
		if err != nil {
			return flex.Options{}, err
		}
		opts = opts.Merge(p)
	}
	if f.selection != "" {
		sel, err := selection.Parse(f.selection)
		if err != nil {
			return flex.Options{}, err
		}
		opts = opts.Merge(sel)
	}
	return opts.Merge(flex.Options{
		All:     f.all,
		Only:    f.only,
		Methods: f.methods,
		Except:  f.except,
	}), nil
}

func (a *app) nextSubmissionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "next-submission <acronym>",
		Short: "Print the number the next submission of an ontology gets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, repo, err := a.openRepository(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			next, err := ontology.NextSubmissionID(ctx, repo, args[0])
			if err != nil {
				return err
			}
			loggerFromContext(ctx).Debug("next submission", "acronym", args[0], "id", next)
			fmt.Fprintln(cmd.OutOrStdout(), strconv.Itoa(next))
			return nil
		},
	}
}

func (a *app) kindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds [name]...",
		Short: "Describe the registered entity kinds",
		Long: `Describe the registered entity kinds: their attribute fields, their
accessors and the accessors added by --all.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := model.RegisteredTypes()
			if len(args) > 0 {
				infos = make([]*model.ModelInfo, 0, len(args))
				for _, name := range args {
					info, ok := model.Lookup(name)
					if !ok {
						return &model.NotRegisteredError{TypeName: name}
					}
					infos = append(infos, info)
				}
			}

			w := cmd.OutOrStdout()
			for _, info := range infos {
				fields := make([]string, len(info.Fields))
				for i, f := range info.Fields {
					fields[i] = f.Name
				}
				fmt.Fprintln(w, info.TypeName)
				fmt.Fprintf(w, "  fields:       %s\n", strings.Join(fields, " "))
				fmt.Fprintf(w, "  accessors:    %s\n", strings.Join(info.AccessorNames(), " "))
				fmt.Fprintf(w, "  serializable: %s\n", strings.Join(info.Serializable, " "))
			}
			return nil
		},
	}
}
