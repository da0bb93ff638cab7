package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"sort"
	"strings"

	"projmeta/internal/common"
	"projmeta/internal/manifest"
	"projmeta/metamodel"
)

// DefaultFilename is the name of the generated file.
const DefaultFilename = "projmeta_gen.go"

// Import paths referenced by generated code.
const (
	metamodelImport = "projmeta/metamodel"
	registryImport  = "projmeta/registry"
)

// ErrProjectionCycle is returned when nested projections reference each other.
var ErrProjectionCycle = errors.New("nested projections form a cycle")

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package. Defaults to the last
	// element of the manifest package path.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// Filename of the generated file. Defaults to DefaultFilename.
	Filename string
	// GenerateComments enables a comment above every metadata entry.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputDir:        ".",
		Filename:         DefaultFilename,
		GenerateComments: true,
	}
}

// Generator generates provider registration code from a manifest.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "projmeta_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// templateData holds all data needed for the provider template.
type templateData struct {
	PackageName string
	Source      string
	Comments    bool
	Imports     []string
	Persistence []metamodel.PersistenceMetadata
	Projections []metamodel.ProjectionMetadata
}

// Generate renders the manifest into one Go file. The manifest must pass
// manifest.Validate.
func (g *Generator) Generate(doc *manifest.Document) (*GeneratedFile, error) {
	provider, err := manifest.Build(doc)
	if err != nil {
		return nil, err
	}

	projections, err := orderProjections(provider.Projections())
	if err != nil {
		return nil, err
	}

	data := &templateData{
		PackageName: g.packageName(doc),
		Source:      doc.Package,
		Comments:    g.config.GenerateComments,
		Imports:     []string{metamodelImport, registryImport},
		Persistence: sortPersistence(provider.Persistence()),
		Projections: projections,
	}

	filename := g.config.Filename
	if filename == "" {
		filename = DefaultFilename
	}

	if data.PackageName == "" {
		return nil, errors.New("package name is required: set it or declare the manifest package")
	}

	var buf bytes.Buffer
	if err := providerTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}

func (g *Generator) packageName(doc *manifest.Document) string {
	if g.config.PackageName != "" {
		return g.config.PackageName
	}

	return common.PkgAlias(doc.Package)
}

// sortPersistence orders managed types by type id.
func sortPersistence(pms []metamodel.PersistenceMetadata) []metamodel.PersistenceMetadata {
	sort.SliceStable(pms, func(i, j int) bool {
		return pms[i].Type.Less(pms[j].Type)
	})

	return pms
}

// orderProjections sorts projections by type id, then moves every nested
// projection ahead of the projections embedding it.
func orderProjections(pms []metamodel.ProjectionMetadata) ([]metamodel.ProjectionMetadata, error) {
	sort.SliceStable(pms, func(i, j int) bool {
		return pms[i].Projection.Less(pms[j].Projection)
	})

	index := make(map[metamodel.TypeID]int, len(pms))
	for i, pm := range pms {
		index[pm.Projection] = i
	}

	order, err := common.TopoSort(len(pms), func(i int) []int {
		var deps []int

		for _, f := range pms[i].Fields {
			if j, ok := index[f.Nested]; ok && f.IsNested() && j != i {
				deps = append(deps, j)
			}
		}

		return deps
	})
	if err != nil {
		var cycle *common.CycleError
		if errors.As(err, &cycle) {
			names := make([]string, len(cycle.Remaining))
			for k, i := range cycle.Remaining {
				names[k] = pms[i].Projection.String()
			}

			return nil, fmt.Errorf("%w: %s", ErrProjectionCycle, strings.Join(names, ", "))
		}

		return nil, err
	}

	out := make([]metamodel.ProjectionMetadata, len(order))
	for k, i := range order {
		out[k] = pms[i]
	}

	return out, nil
}
