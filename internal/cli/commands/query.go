package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"projmeta/internal/cli/ui"
	"projmeta/metamodel"
)

type resolveView struct {
	Projection string `json:"projection" yaml:"projection"`
	Path       string `json:"path" yaml:"path"`
	Source     string `json:"source" yaml:"source"`
}

func newResolveCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <projection> <path>",
		Short: "Translate a projection path into an entity path",
		Long: `Translate a dot-separated projection path into the entity path that backs it.
Direct fields follow their mapping, nested projections are entered, and a
computed field with a single dependency resolves to that dependency.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.openRegistry()
			if err != nil {
				return err
			}

			t, err := findType(args[0], r.Projections())
			if err != nil {
				return err
			}

			source, err := r.ResolvePath(t, args[1], s.resolveOptions()...)
			if err != nil {
				return err
			}

			view := resolveView{Projection: t.String(), Path: args[1], Source: source}

			return s.emit(cmd, view, func(w io.Writer, _ bool) {
				fmt.Fprintln(w, source)
			})
		},
	}
}

func newRequiredCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "required <type>",
		Short: "List the entity paths a projection reads",
		Long: `List every entity path needed to populate a projection, nested projections
and computed dependencies included. An entity lists its own fields.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.openRegistry()
			if err != nil {
				return err
			}

			t, err := findType(args[0], allTypes(r))
			if err != nil {
				return err
			}

			paths, err := r.RequiredFields(t)
			if err != nil {
				return err
			}

			return s.emit(cmd, paths, printList("PATH", paths))
		},
	}
}

func newComputedCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "computed <projection> [field]",
		Short: "Show the computed fields of a projection",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.openRegistry()
			if err != nil {
				return err
			}

			t, err := findType(args[0], r.Projections())
			if err != nil {
				return err
			}

			var fields []metamodel.ComputedField

			if len(args) == 2 {
				cf, err := r.ComputedField(t, args[1])
				if err != nil {
					return err
				}

				fields = append(fields, cf)
			} else if fields, err = r.ComputedFields(t); err != nil {
				return err
			}

			views := make([]computedView, len(fields))
			for i, cf := range fields {
				views[i] = newComputedView(cf)
			}

			return s.emit(cmd, views, func(w io.Writer, noColor bool) {
				table := ui.NewTable(w, noColor, "FIELD", "DEPENDENCIES", "REDUCERS", "PIPELINE")
				for _, v := range views {
					table.AddRow(v.Field, strings.Join(v.Dependencies, ", "), v.reducerList(), v.Pipeline)
				}

				table.Render()
			})
		},
	}
}

func newIDsCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "ids <entity>",
		Short: "List the id paths of an entity",
		Long:  `List the id paths of an entity. Composite ids expand to one path per id part.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.openRegistry()
			if err != nil {
				return err
			}

			t, err := findType(args[0], managedTypes(r))
			if err != nil {
				return err
			}

			ids, err := r.IDFields(t)
			if err != nil {
				return err
			}

			return s.emit(cmd, ids, printList("ID", ids))
		},
	}
}

func newFieldsCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <entity> [field]",
		Short: "Show the persistent fields of an entity or embeddable",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.openRegistry()
			if err != nil {
				return err
			}

			t, err := findType(args[0], managedTypes(r))
			if err != nil {
				return err
			}

			var fields []metamodel.FieldMetadata

			if len(args) == 2 {
				f, err := r.Field(t, args[1])
				if err != nil {
					return err
				}

				fields = append(fields, f)
			} else if fields, err = r.Fields(t); err != nil {
				return err
			}

			views := make([]fieldView, len(fields))
			for i, f := range fields {
				views[i] = newFieldView(f)
			}

			return s.emit(cmd, views, func(w io.Writer, noColor bool) {
				table := ui.NewTable(w, noColor, "NAME", "TYPE", "COLLECTION", "ELEMENT", "FLAGS")
				for _, v := range views {
					table.AddRow(v.Name, v.Type, v.Collection, v.Element, strings.Join(v.Flags, ","))
				}

				table.Render()
			})
		},
	}
}

type attributeView struct {
	Entity string `json:"entity" yaml:"entity"`
	Path   string `json:"path" yaml:"path"`
	Type   string `json:"type" yaml:"type"`
}

func newTypeCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "type <entity> <path>",
		Short: "Show the declared type of an entity attribute path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.openRegistry()
			if err != nil {
				return err
			}

			t, err := findType(args[0], managedTypes(r))
			if err != nil {
				return err
			}

			attr, err := r.AttributeType(t, args[1])
			if err != nil {
				return err
			}

			view := attributeView{Entity: t.String(), Path: args[1], Type: attr.String()}

			return s.emit(cmd, view, func(w io.Writer, _ bool) {
				fmt.Fprintln(w, view.Type)
			})
		},
	}
}
