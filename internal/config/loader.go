package config

import (
	"context"
	"io"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/flowloom/pipelex/internal/obslog"
	"github.com/flowloom/pipelex/pkg/pipelexerr"
)

var pkgLogger = obslog.Discard()

// SetLogger installs the logger used to observe Load calls. The default
// discards every entry.
func SetLogger(l *obslog.Logger) {
	if l == nil {
		l = obslog.Discard()
	}
	pkgLogger = l
}

// Load reads one or more YAML sources and merges them left to right into a
// single Document. Merging happens on the untyped document tree, not on
// the decoded Document struct: PipelineConfig and EventTypeConfig keep
// their decoded state unexported, which mergo's reflection-based merge
// cannot reach, so later layers are merged as plain maps and the result is
// decoded into a Document exactly once. mergo.WithOverride makes each
// later source win on scalar conflicts; slices are replaced, not
// appended, mergo's documented default.
//
// Load checks ctx before reading each source and returns its error once it
// is cancelled; a read already in progress is not interrupted. The merge
// and decode steps that follow are synchronous and pure.
func Load(ctx context.Context, sources ...io.Reader) (*Document, error) {
	pkgLogger.WithFields(map[string]any{"layers": len(sources)}).Debug("loading configuration")

	if len(sources) == 0 {
		return nil, pipelexerr.New(pipelexerr.CodeParse, "at least one configuration source is required", nil)
	}

	merged := map[string]interface{}{}
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := io.ReadAll(src)
		if err != nil {
			return nil, pipelexerr.Wrap(pipelexerr.CodeParse, "failed to read configuration source", err,
				map[string]interface{}{"source_index": i})
		}

		var layer map[string]interface{}
		if err := yaml.Unmarshal(data, &layer); err != nil {
			return nil, pipelexerr.Wrap(pipelexerr.CodeParse, "failed to decode configuration source", err,
				map[string]interface{}{"source_index": i})
		}

		if err := mergo.Merge(&merged, layer, mergo.WithOverride); err != nil {
			return nil, pipelexerr.Wrap(pipelexerr.CodeParse, "failed to merge configuration layers", err,
				map[string]interface{}{"source_index": i})
		}
	}

	mergedYAML, err := yaml.Marshal(merged)
	if err != nil {
		return nil, pipelexerr.Wrap(pipelexerr.CodeParse, "failed to re-encode merged configuration", err, nil)
	}

	var doc Document
	if err := yaml.Unmarshal(mergedYAML, &doc); err != nil {
		return nil, pipelexerr.Wrap(pipelexerr.CodeParse, "failed to decode merged configuration", err, nil)
	}

	if err := validatorInstance().Struct(&doc); err != nil {
		wrapped := pipelexerr.Wrap(pipelexerr.CodeValidation, "configuration validation failed", err, nil)
		pkgLogger.Error(wrapped, "configuration failed validation")
		return nil, wrapped
	}

	return &doc, nil
}
