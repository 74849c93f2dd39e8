// SPDX-License-Identifier: MIT
//
// Package learner provides FeatureLearner, the façade binding a population
// schema and a set of peripheral tables to both cooperating learners this
// module implements: the relational gradient-boosted ensemble (package
// ensemble) and the mechanical DFS propositionalization engine (package
// propositionalization), emitting one combined Features matrix (spec §2
// row 9 "FeatureLearner façade... binds schema -> columns, handles text
// tokenisation, dispatches to ensemble, emits Features").
package learner

import (
	"context"
	"math"
	"time"

	"github.com/katalvlaran/relboost/aggregation"
	"github.com/katalvlaran/relboost/ensemble"
	"github.com/katalvlaran/relboost/match"
	"github.com/katalvlaran/relboost/propositionalization"
	"github.com/katalvlaran/relboost/splitenum"
	"github.com/katalvlaran/relboost/table"
)

// Peripheral names one table joinable to the population under Match, plus
// the match configuration used to reach it (spec §1 "star-/snowflake-shaped
// set of peripheral tables").
type Peripheral struct {
	Name  string
	Table *table.Table
	Match match.Options
}

// fitted holds everything Fit produces and Transform consumes.
type fitted struct {
	targetColumn string
	primaryName  string
	ens          *ensemble.Ensemble
	schema       *table.Schema
	features     map[string][]propositionalization.AbstractFeature // by peripheral name
	vocabularies map[string]*Vocabulary                            // by "peripheralName.columnName"
}

// FeatureLearner binds a fit schema to both cooperating learners and emits
// a combined Features matrix at transform time.
type FeatureLearner struct {
	cfg     *config
	metrics *metrics
	state   *fitted
}

// New returns an unfitted FeatureLearner configured by opts.
func New(opts ...Option) *FeatureLearner {
	cfg := newConfig()
	for _, o := range opts {
		o(cfg)
	}

	return &FeatureLearner{cfg: cfg, metrics: newMetrics(cfg.registerer)}
}

// Fit binds population (which must carry exactly one RoleTarget column
// named targetColumn) to peripherals, fits the relational ensemble against
// the primary peripheral, and mechanically enumerates DFS features against
// every peripheral (spec §2 rows 8-10). Returns the committed ensemble's
// final SSE.
//
// population must have at least one row (spec §7 EmptyTable); peripherals
// may be empty, in which case the first round's tree is a single zero-weight
// leaf over an empty match buffer, its update rate is 0, and boosting stops
// with no rounds committed.
func (l *FeatureLearner) Fit(population *table.Table, peripherals []Peripheral, targetColumn string) (float64, error) {
	start := time.Now()

	if population == nil || population.NRows() == 0 {
		return 0, table.ErrEmptyTable
	}
	targetCol, err := population.Column(targetColumn)
	if err != nil {
		return 0, &table.MissingColumnError{Name: targetColumn}
	}
	if targetCol.Role != table.RoleTarget {
		return 0, &table.SchemaError{Table: population.Name, Reason: "column " + targetColumn + " is not RoleTarget"}
	}

	primaryName := l.cfg.primary
	if primaryName == "" && len(peripherals) > 0 {
		primaryName = peripherals[0].Name
	}

	var primary *table.Table
	var primaryMatches splitenum.Matches
	for _, p := range peripherals {
		if p.Name == primaryName {
			primary = p.Table
			ms, err := match.MakeMatches(population, p.Table, p.Match)
			if err != nil {
				return 0, err
			}
			primaryMatches = splitenum.Matches(ms)
		}
	}
	if primary == nil {
		primary = table.NewTable("empty", population.Interner)
	}

	target := append([]float64(nil), targetCol.Floats...)
	ens, sse, err := ensemble.Fit(population, primary, primaryMatches, target, l.cfg.kind, l.cfg.minNumSamples, l.cfg.ensembleOpts...)
	if err != nil {
		return 0, err
	}

	features := make(map[string][]propositionalization.AbstractFeature, len(peripherals))
	vocabularies := make(map[string]*Vocabulary)
	for i, p := range peripherals {
		features[p.Name] = propositionalization.Enumerate(p.Table, i)
		for _, c := range p.Table.Columns() {
			if c.Role != table.RoleText {
				continue
			}
			vocabularies[p.Name+"."+c.Name] = BuildVocabulary(c.Strings, 1, 0)
		}
	}

	l.state = &fitted{
		targetColumn: targetColumn,
		primaryName:  primaryName,
		ens:          ens,
		schema:       table.SchemaOf(population),
		features:     features,
		vocabularies: vocabularies,
	}

	l.cfg.logger.Info().
		Float64("sse", sse).
		Int("trees", ens.NumTrees()).
		Int("peripherals", len(peripherals)).
		Msg("learner: fit complete")
	l.metrics.observeFit(time.Since(start).Seconds(), sse, ens.NumTrees())

	return sse, nil
}

// Transform binds population/peripherals under the schema established at
// Fit and emits the combined Features matrix: column 0 is the ensemble's
// learned prediction; the remaining columns are, per peripheral in the
// order given, the mechanical DFS features followed by any text-vocabulary
// token counts (spec §6 "Feature output... NaN and +/-Inf coerced to 0.0").
//
// Returns ErrNotFitted if Fit never completed.
func (l *FeatureLearner) Transform(ctx context.Context, population *table.Table, peripherals []Peripheral) ([][]float64, error) {
	start := time.Now()

	if l.state == nil {
		return nil, ErrNotFitted
	}
	if err := l.state.schema.Validate(population); err != nil {
		return nil, err
	}

	var primary *table.Table
	var primaryMatches splitenum.Matches
	peripheralMatches := make(map[string][]match.Match, len(peripherals))
	for _, p := range peripherals {
		ms, err := match.MakeMatches(population, p.Table, p.Match)
		if err != nil {
			return nil, err
		}
		peripheralMatches[p.Name] = ms
		if p.Name == l.state.primaryName {
			primary = p.Table
			primaryMatches = splitenum.Matches(ms)
		}
	}
	if primary == nil {
		primary = table.NewTable("empty", population.Interner)
	}

	prediction, err := ensemble.Transform(l.state.ens, population, primary, primaryMatches)
	if err != nil {
		return nil, err
	}

	nrows := population.NRows()
	width := 1
	type peripheralBlock struct {
		name     string
		features []propositionalization.AbstractFeature
		rows     [][]float64
		textCols []*table.Column
		textVocs []*Vocabulary
	}
	blocks := make([]peripheralBlock, 0, len(peripherals))

	for _, p := range peripherals {
		feats := l.state.features[p.Name]
		rows, err := propositionalization.BuildRows(ctx, population, p.Table, peripheralMatches[p.Name], feats, l.cfg.numShards)
		if err != nil {
			l.metrics.observeShardError()

			return nil, err
		}

		var textCols []*table.Column
		var textVocs []*Vocabulary
		for _, c := range p.Table.Columns() {
			if c.Role != table.RoleText {
				continue
			}
			voc, ok := l.state.vocabularies[p.Name+"."+c.Name]
			if !ok {
				continue
			}
			textCols = append(textCols, c)
			textVocs = append(textVocs, voc)
			width += voc.Size()
		}

		blocks = append(blocks, peripheralBlock{name: p.Name, features: feats, rows: rows, textCols: textCols, textVocs: textVocs})
		width += len(feats)
	}

	out := make([][]float64, nrows)
	for i := range out {
		out[i] = make([]float64, width)
		out[i][0] = coerce(prediction[i])
	}

	col := 1
	for _, b := range blocks {
		for r := 0; r < nrows; r++ {
			for j := range b.features {
				out[r][col+j] = coerce(b.rows[r][j])
			}
		}
		col += len(b.features)

		for ti, c := range b.textCols {
			voc := b.textVocs[ti]
			counts := accumulateTextCounts(peripheralMatches[b.name], c, voc, nrows)
			for r := 0; r < nrows; r++ {
				for k, v := range counts[r] {
					out[r][col+k] = coerce(v)
				}
			}
			col += voc.Size()
		}
	}

	l.cfg.logger.Debug().Int("rows", nrows).Int("cols", width).Msg("learner: transform complete")
	l.metrics.observeTransform(time.Since(start).Seconds())

	return out, nil
}

// accumulateTextCounts sums, per population row, the token-count vectors of
// every matched peripheral row's text column (spec §6 tokenisation rule;
// multiple matches contribute additively, the same way numerical Sum
// aggregates multiple matched peripheral rows).
func accumulateTextCounts(ms []match.Match, col *table.Column, voc *Vocabulary, nrows int) [][]float64 {
	counts := make([][]float64, nrows)
	for i := range counts {
		counts[i] = make([]float64, voc.Size())
	}
	for _, m := range ms {
		doc := col.Strings[m.IxPeripheral]
		for k, v := range voc.CountVector(doc) {
			counts[m.IxPopulation][k] += v
		}
	}

	return counts
}

// coerce replaces NaN/+-Inf with 0.0 on the emitted Features matrix (spec
// §6 "documented, not a default users can change").
func coerce(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}

// Kind reports the AggregationImpl the fitted ensemble used.
func (l *FeatureLearner) Kind() aggregation.Kind {
	if l.state == nil {
		return l.cfg.kind
	}

	return l.state.ens.Kind()
}

// TargetColumn reports the column name Fit was trained against, or "" if
// Fit never completed.
func (l *FeatureLearner) TargetColumn() string {
	if l.state == nil {
		return ""
	}

	return l.state.targetColumn
}

// Schema reports the fit-time population schema (spec §8 property 8
// round-trip), or nil if Fit never completed.
func (l *FeatureLearner) Schema() *table.Schema {
	if l.state == nil {
		return nil
	}

	return l.state.schema
}
