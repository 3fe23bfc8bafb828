// Package scanner infers the semantic role of each raw column. Given a
// RawTable it proposes ranked candidate columns for the project, date,
// cash-in and cash-out roles, and collects a FormulaFact for every
// formula-bearing cell it encounters.
//
// Classification is driven entirely by the detection configuration (keyword
// lists and thresholds); the scanner itself is stateless and deterministic,
// so re-running it over the same table yields the same mapping.
package scanner

import (
	"sort"
	"strconv"
	"strings"

	"fjacquet/cashflow-insight/internal/config"
	"fjacquet/cashflow-insight/internal/dateutils"
	"fjacquet/cashflow-insight/internal/formula"
	"fjacquet/cashflow-insight/internal/logging"
	"fjacquet/cashflow-insight/internal/models"
)

// Scanner proposes column candidates for the four semantic roles.
type Scanner struct {
	cfg        config.DetectionConfig
	classifier *formula.Classifier
	logger     logging.Logger
}

// New creates a Scanner from detection configuration.
func New(cfg config.DetectionConfig, logger logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Scanner{
		cfg:        cfg,
		classifier: formula.NewClassifier(cfg.TotalKeywords),
		logger:     logger.WithField("component", "scanner"),
	}
}

// columnStats accumulates what was observed in one column's sampled values.
type columnStats struct {
	header   string
	index    int
	sampled  int
	dates    int
	numbers  int
	texts    int
	distinct int
	positive int
	negative int
	hasSum   bool
}

func (cs *columnStats) dateFraction() float64 {
	if cs.sampled == 0 {
		return 0
	}
	return float64(cs.dates) / float64(cs.sampled)
}

func (cs *columnStats) numericMajority() bool {
	return cs.sampled > 0 && cs.numbers*2 > cs.sampled
}

func (cs *columnStats) textualMajority() bool {
	return cs.sampled > 0 && cs.texts*2 > cs.sampled
}

func (cs *columnStats) mixedSign() bool {
	return cs.positive > 0 && cs.negative > 0
}

// AnalyzeStructure classifies every column of the table and returns the
// ranked candidate lists plus all collected formula facts. The table is
// only read, never mutated.
func (s *Scanner) AnalyzeStructure(table models.RawTable) models.ColumnMapping {
	stats, facts := s.collect(table)

	mapping := models.ColumnMapping{
		DateColumns: s.dateCandidates(stats),
		Formulas:    facts,
	}
	mapping.ProjectColumns = s.projectCandidates(stats, mapping.DateColumns, len(table.Rows))
	mapping.CashInColumns, mapping.CashOutColumns = s.cashCandidates(stats)

	s.logger.Debug("structure analysis complete",
		logging.Field{Key: "project_candidates", Value: len(mapping.ProjectColumns)},
		logging.Field{Key: "date_candidates", Value: len(mapping.DateColumns)},
		logging.Field{Key: "cash_in_candidates", Value: len(mapping.CashInColumns)},
		logging.Field{Key: "cash_out_candidates", Value: len(mapping.CashOutColumns)},
		logging.Field{Key: "formulas", Value: len(facts)},
	)

	return mapping
}

// collect samples every column once, typing each sampled value and running
// the formula classifier over every formula-bearing cell.
func (s *Scanner) collect(table models.RawTable) ([]*columnStats, []models.FormulaFact) {
	stats := make([]*columnStats, len(table.Headers))
	distinct := make([]map[string]struct{}, len(table.Headers))
	for i, h := range table.Headers {
		stats[i] = &columnStats{header: h, index: i}
		distinct[i] = make(map[string]struct{})
	}

	var facts []models.FormulaFact
	for rowIdx, row := range table.Rows {
		for colIdx, header := range table.Headers {
			cell := row[header]

			if cell.Formula != "" {
				// Header row occupies row 1 on the sheet.
				ref := columnName(colIdx) + strconv.Itoa(rowIdx+2)
				fact := s.classifier.Classify(ref, cell.Formula, header)
				facts = append(facts, fact)
				if fact.IsSum {
					stats[colIdx].hasSum = true
				}
			}

			value := strings.TrimSpace(cell.Value)
			if value == "" || stats[colIdx].sampled >= s.cfg.SampleSize {
				continue
			}

			cs := stats[colIdx]
			cs.sampled++
			distinct[colIdx][value] = struct{}{}
			cs.distinct = len(distinct[colIdx])

			if amount, err := models.ParseAmount(value); err == nil {
				cs.numbers++
				switch amount.Sign() {
				case 1:
					cs.positive++
				case -1:
					cs.negative++
				}
			} else if dateutils.IsTextualDate(value) {
				cs.dates++
			} else {
				cs.texts++
			}
		}
	}

	return stats, facts
}

// dateCandidates ranks columns for the date role: header keyword match
// first, then fraction of date-parseable values descending.
func (s *Scanner) dateCandidates(stats []*columnStats) []string {
	type candidate struct {
		header  string
		keyword bool
		frac    float64
	}

	var cands []candidate
	for _, cs := range stats {
		keyword := matchesAny(cs.header, s.cfg.DateKeywords)
		frac := cs.dateFraction()
		if keyword || frac > s.cfg.DateThreshold {
			cands = append(cands, candidate{cs.header, keyword, frac})
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].keyword != cands[j].keyword {
			return cands[i].keyword
		}
		return cands[i].frac > cands[j].frac
	})

	headers := make([]string, len(cands))
	for i, c := range cands {
		headers[i] = c.header
	}
	return headers
}

// projectCandidates ranks columns for the project/category role. Date
// candidates are excluded. A column qualifies through a keyword match, or by
// being textual with low-to-moderate cardinality relative to the row count.
func (s *Scanner) projectCandidates(stats []*columnStats, dateColumns []string, rowCount int) []string {
	dates := make(map[string]bool, len(dateColumns))
	for _, h := range dateColumns {
		dates[h] = true
	}

	type candidate struct {
		header  string
		keyword bool
		ratio   float64
	}

	var cands []candidate
	for _, cs := range stats {
		if dates[cs.header] {
			continue
		}
		keyword := matchesAny(cs.header, s.cfg.ProjectKeywords)
		ratio := 1.0
		if rowCount > 0 {
			ratio = float64(cs.distinct) / float64(rowCount)
		}
		repeated := cs.textualMajority() && cs.distinct > 0 && ratio <= s.cfg.ProjectCardinalityRatio
		if keyword || repeated {
			cands = append(cands, candidate{cs.header, keyword, ratio})
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].keyword != cands[j].keyword {
			return cands[i].keyword
		}
		return cands[i].ratio < cands[j].ratio
	})

	headers := make([]string, len(cands))
	for i, c := range cands {
		headers[i] = c.header
	}
	return headers
}

// cashCandidates ranks columns for the cash-in and cash-out roles. A column
// lands in both lists only when its header carries no directional keyword
// and its values are mixed-sign; such columns must be resolved explicitly by
// the mapper/caller. Numeric columns with no directional, formula or sign
// signal are left out entirely for manual mapping.
func (s *Scanner) cashCandidates(stats []*columnStats) (cashIn, cashOut []string) {
	type candidate struct {
		header  string
		keyword bool
		frac    float64
	}

	var ins, outs []candidate
	for _, cs := range stats {
		inKw := matchesAny(cs.header, s.cfg.CashInKeywords)
		outKw := matchesAny(cs.header, s.cfg.CashOutKeywords)
		numFrac := 0.0
		if cs.sampled > 0 {
			numFrac = float64(cs.numbers) / float64(cs.sampled)
		}

		switch {
		case inKw && !outKw:
			ins = append(ins, candidate{cs.header, true, numFrac})
		case outKw && !inKw:
			outs = append(outs, candidate{cs.header, true, numFrac})
		case inKw && outKw:
			// Directionally contradictory header ("in" and "out" both
			// present): ambiguous, surface on both lists for the caller.
			ins = append(ins, candidate{cs.header, false, numFrac})
			outs = append(outs, candidate{cs.header, false, numFrac})
		case cs.numericMajority() && cs.hasSum:
			ins = append(ins, candidate{cs.header, false, numFrac})
		case cs.numericMajority() && cs.mixedSign():
			ins = append(ins, candidate{cs.header, false, numFrac})
			outs = append(outs, candidate{cs.header, false, numFrac})
		}
	}

	rank := func(cands []candidate) []string {
		sort.SliceStable(cands, func(i, j int) bool {
			if cands[i].keyword != cands[j].keyword {
				return cands[i].keyword
			}
			return cands[i].frac > cands[j].frac
		})
		headers := make([]string, len(cands))
		for i, c := range cands {
			headers[i] = c.header
		}
		return headers
	}

	return rank(ins), rank(outs)
}

// matchesAny reports whether the header matches one of the keywords.
// Keywords shorter than four characters must equal a whole header token
// (so "in" matches "Cash In" but not "Client"); longer keywords match as
// substrings of the normalized header.
func matchesAny(header string, keywords []string) bool {
	normalized := normalizeHeader(header)
	tokens := strings.Fields(normalized)

	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if len(kw) < 4 {
			for _, tok := range tokens {
				if tok == kw {
					return true
				}
			}
			continue
		}
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// normalizeHeader lowercases a header and replaces every non-alphanumeric
// run with a single space.
func normalizeHeader(header string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(header) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
		} else if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// columnName converts a zero-based column index to its spreadsheet letters.
func columnName(index int) string {
	name := ""
	for index >= 0 {
		name = string(rune('A'+index%26)) + name
		index = index/26 - 1
	}
	return name
}
