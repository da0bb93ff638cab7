package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"projmeta/internal/cli/config"
	"projmeta/internal/cli/ui"
	"projmeta/internal/manifest"
	"projmeta/internal/match"
	"projmeta/metamodel"
	"projmeta/registry"
)

var (
	errUnknownType   = errors.New("unknown type")
	errAmbiguousType = errors.New("ambiguous type")
)

// emit writes data as JSON or YAML, or calls table for the table format.
func (s *state) emit(cmd *cobra.Command, data any, table func(w io.Writer, noColor bool)) error {
	w := cmd.OutOrStdout()

	switch s.cfg.Format {
	case config.FormatJSON:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		_, err = fmt.Fprintln(w, string(out))

		return err
	case config.FormatYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		_, err = w.Write(out)

		return err
	default:
		table(w, s.cfg.NoColor)
		return nil
	}
}

// manifestPath returns the positional manifest argument, or the configured one.
func (s *state) manifestPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}

	return s.cfg.Manifest
}

// loadManifest reads a manifest file.
func (s *state) loadManifest(path string) (*manifest.Document, error) {
	s.logger.Debug("loading manifest", zap.String("path", path))

	return manifest.LoadFile(path)
}

// registry builds and initializes a registry over a manifest.
func (s *state) registry(doc *manifest.Document, strict bool) (*registry.Registry, error) {
	provider, err := manifest.Build(doc)
	if err != nil {
		return nil, err
	}

	opts := append(provider.RegistryOptions(),
		registry.WithLogger(s.logger),
		registry.WithStrict(strict))

	r := registry.New(opts...)
	if err := r.Init(); err != nil {
		return nil, err
	}

	return r, nil
}

// openRegistry loads the configured manifest into a registry.
func (s *state) openRegistry() (*registry.Registry, error) {
	doc, err := s.loadManifest(s.cfg.Manifest)
	if err != nil {
		return nil, err
	}

	return s.registry(doc, s.cfg.Strict)
}

// findType resolves a command-line type name against candidates. Accepted
// forms are the full "pkg/path.Name", a "pkg.Name" suffix, or a bare name
// that is unique among the candidates.
func findType(name string, candidates []metamodel.TypeID) (metamodel.TypeID, error) {
	var matches []metamodel.TypeID

	for _, t := range candidates {
		full := t.String()
		if full == name {
			return t, nil
		}

		if t.Name == name || strings.HasSuffix(full, "/"+name) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		names := make([]string, len(candidates))
		for i, t := range candidates {
			names[i] = t.Name
		}

		if suggestions := match.Suggest(name, names); len(suggestions) > 0 {
			return metamodel.TypeID{}, fmt.Errorf("%w %q (did you mean %s?)",
				errUnknownType, name, strings.Join(suggestions, ", "))
		}

		return metamodel.TypeID{}, fmt.Errorf("%w %q", errUnknownType, name)
	default:
		full := make([]string, len(matches))
		for i, t := range matches {
			full[i] = t.String()
		}

		return metamodel.TypeID{}, fmt.Errorf("%w %q matches %s", errAmbiguousType, name, strings.Join(full, ", "))
	}
}

func managedTypes(r *registry.Registry) []metamodel.TypeID {
	return append(r.Entities(), r.Embeddables()...)
}

func allTypes(r *registry.Registry) []metamodel.TypeID {
	return append(managedTypes(r), r.Projections()...)
}

// resolveOptions returns the path lookup options of the configuration.
func (s *state) resolveOptions() []registry.ResolveOption {
	if s.cfg.IgnoreCase {
		return []registry.ResolveOption{registry.WithIgnoreCase()}
	}

	return nil
}

type fieldView struct {
	Name       string   `json:"name" yaml:"name"`
	Type       string   `json:"type" yaml:"type"`
	Collection string   `json:"collection,omitempty" yaml:"collection,omitempty"`
	Element    string   `json:"element,omitempty" yaml:"element,omitempty"`
	Flags      []string `json:"flags,omitempty" yaml:"flags,omitempty"`
}

func newFieldView(f metamodel.FieldMetadata) fieldView {
	v := fieldView{Name: f.Name, Type: f.Type.String()}

	if f.Collection != metamodel.CollectionScalar {
		v.Collection = f.Collection.String()
		v.Element = f.Element.String()
	}

	for _, flag := range []struct {
		name string
		set  bool
	}{
		{"id", f.ID},
		{"embedded_id", f.EmbeddedID},
		{"embedded", f.Embedded},
		{"relation", f.Relation},
	} {
		if flag.set {
			v.Flags = append(v.Flags, flag.name)
		}
	}

	return v
}

type reducerView struct {
	Index   int    `json:"index" yaml:"index"`
	Reducer string `json:"reducer" yaml:"reducer"`
}

type computedView struct {
	Field        string        `json:"field" yaml:"field"`
	Dependencies []string      `json:"dependencies" yaml:"dependencies"`
	Reducers     []reducerView `json:"reducers,omitempty" yaml:"reducers,omitempty"`
	Pipeline     string        `json:"pipeline,omitempty" yaml:"pipeline,omitempty"`
}

func newComputedView(c metamodel.ComputedField) computedView {
	v := computedView{Field: c.DTOField(), Dependencies: c.Dependencies()}

	for _, rm := range c.Reducers() {
		v.Reducers = append(v.Reducers, reducerView{Index: rm.DependencyIndex, Reducer: string(rm.Reducer)})
	}

	if p := c.Pipeline(); !p.IsEmpty() {
		v.Pipeline = p.String()
	}

	return v
}

// reducerList renders reducers as "index:REDUCER" pairs.
func (v computedView) reducerList() string {
	parts := make([]string, len(v.Reducers))
	for i, rm := range v.Reducers {
		parts[i] = strconv.Itoa(rm.Index) + ":" + rm.Reducer
	}

	return strings.Join(parts, ", ")
}

// printList renders a single-column table.
func printList(header string, items []string) func(w io.Writer, noColor bool) {
	return func(w io.Writer, noColor bool) {
		table := ui.NewTable(w, noColor, header)
		for _, item := range items {
			table.AddRow(item)
		}

		table.Render()
	}
}
