// SPDX-License-Identifier: MIT
//
// Categorical aggregation classification, split out from the numerical
// enumeration path (spec §4.5 supplement: mirrors DeepFeatureSynthesis.cpp's
// separate numerical/categorical aggregation families).
package propositionalization

// categoricalAggregations is the default set tried against every
// Categorical peripheral column.
var categoricalAggregations = []Aggregation{CountDistinct, CountMinusCountDistinct}
