/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package biomarker

import (
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/humaidq/labconsensus/utils"
)

// minSubstringRunes is the shortest term allowed to take part in substring
// matching. Shorter aliases ("k", "p", "hb") only resolve exactly.
const minSubstringRunes = 3

// Catalog is an immutable, indexed set of biomarker definitions.
type Catalog struct {
	defs    []Definition
	byID    map[string]int
	byTerm  map[string]int
	terms   []catalogTerm
	byGroup map[Category][]int
}

type catalogTerm struct {
	term  string
	index int
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
)

// DefaultCatalog returns the catalog built from the built-in definitions.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := NewCatalog(GetDefinitions())
		if err != nil {
			panic(fmt.Sprintf("built-in biomarker definitions are invalid: %v", err))
		}

		defaultCatalog = c
	})

	return defaultCatalog
}

// NewCatalog validates defs and builds the lookup indexes. The slice is
// copied, so later changes by the caller do not leak in.
func NewCatalog(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		defs:    make([]Definition, 0, len(defs)),
		byID:    make(map[string]int, len(defs)),
		byTerm:  make(map[string]int, len(defs)*4),
		byGroup: make(map[Category][]int),
	}

	for _, def := range defs {
		if err := validateDefinition(def); err != nil {
			return nil, err
		}

		id := utils.NormalizeTerm(def.ID)
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("%w: %s", errDuplicateID, def.ID)
		}

		idx := len(c.defs)
		c.defs = append(c.defs, cloneDefinition(def))
		c.byID[id] = idx
		c.byGroup[def.Category] = append(c.byGroup[def.Category], idx)

		terms := append([]string{def.Name}, def.Aliases...)
		for _, raw := range terms {
			term := utils.NormalizeTerm(raw)
			if term == "" {
				continue
			}

			if owner, ok := c.byTerm[term]; ok {
				if owner != idx {
					return nil, fmt.Errorf("%w: %q (%s, %s)", errDuplicateAlias, raw, c.defs[owner].ID, def.ID)
				}

				continue
			}

			c.byTerm[term] = idx
			c.terms = append(c.terms, catalogTerm{term: term, index: idx})
		}
	}

	return c, nil
}

func validateDefinition(def Definition) error {
	if def.ID == "" {
		return errEmptyID
	}

	if !def.Category.Valid() {
		return fmt.Errorf("%w: %s (%s)", errUnknownCategory, def.Category, def.ID)
	}

	if def.LabRange.Min > def.LabRange.Max || def.FunctionalRange.Min > def.FunctionalRange.Max {
		return fmt.Errorf("%w: %s", errInvertedRange, def.ID)
	}

	for sex, adj := range def.Adjustments {
		r := adj.Apply(def.LabRange)
		if r.Min > r.Max {
			return fmt.Errorf("%w: %s (%s adjustment)", errInvertedRange, def.ID, sex)
		}
	}

	if def.CriticalLow != nil && def.CriticalHigh != nil && *def.CriticalLow > *def.CriticalHigh {
		return fmt.Errorf("%w: %s", errInvertedCritical, def.ID)
	}

	return nil
}

func cloneDefinition(def Definition) Definition {
	out := def
	out.Aliases = append([]string(nil), def.Aliases...)

	if def.CriticalLow != nil {
		out.CriticalLow = ptr(*def.CriticalLow)
	}

	if def.CriticalHigh != nil {
		out.CriticalHigh = ptr(*def.CriticalHigh)
	}

	if def.Adjustments != nil {
		out.Adjustments = make(map[Sex]RangeOverride, len(def.Adjustments))
		for sex, adj := range def.Adjustments {
			var cp RangeOverride
			if adj.Min != nil {
				cp.Min = ptr(*adj.Min)
			}

			if adj.Max != nil {
				cp.Max = ptr(*adj.Max)
			}

			out.Adjustments[sex] = cp
		}
	}

	return out
}

// Lookup resolves a name, id or alias. Exact id wins over exact alias or
// display name, which wins over a substring match in either direction.
// Among substring matches the longest overlapping term wins, then catalog
// order.
func (c *Catalog) Lookup(nameOrAlias string) (Definition, bool) {
	idx, ok := c.resolve(nameOrAlias)
	if !ok {
		return Definition{}, false
	}

	return cloneDefinition(c.defs[idx]), true
}

func (c *Catalog) resolve(nameOrAlias string) (int, bool) {
	query := utils.NormalizeTerm(nameOrAlias)
	if query == "" {
		return 0, false
	}

	if idx, ok := c.byID[query]; ok {
		return idx, true
	}

	if idx, ok := c.byTerm[query]; ok {
		return idx, true
	}

	queryLen := utf8.RuneCountInString(query)
	if queryLen < minSubstringRunes {
		return 0, false
	}

	best, bestScore := -1, 0

	for _, t := range c.terms {
		termLen := utf8.RuneCountInString(t.term)
		if termLen < minSubstringRunes {
			continue
		}

		score := 0

		switch {
		case containsTerm(query, t.term):
			score = termLen
		case containsTerm(t.term, query):
			score = queryLen
		default:
			continue
		}

		if score > bestScore || (score == bestScore && t.index < best) {
			best, bestScore = t.index, score
		}
	}

	if best < 0 {
		return 0, false
	}

	return best, true
}

// Get returns the definition with the exact id.
func (c *Catalog) Get(id string) (Definition, bool) {
	idx, ok := c.byID[utils.NormalizeTerm(id)]
	if !ok {
		return Definition{}, false
	}

	return cloneDefinition(c.defs[idx]), true
}

// ByCategory returns the definitions of one category in catalog order.
func (c *Catalog) ByCategory(category Category) []Definition {
	indexes := c.byGroup[category]
	out := make([]Definition, 0, len(indexes))

	for _, idx := range indexes {
		out = append(out, cloneDefinition(c.defs[idx]))
	}

	return out
}

// AllCategories returns the categories that have at least one definition.
func (c *Catalog) AllCategories() []Category {
	out := make([]Category, 0, len(categoryOrder))

	for _, cat := range categoryOrder {
		if len(c.byGroup[cat]) > 0 {
			out = append(out, cat)
		}
	}

	return out
}

// Definitions returns every definition in catalog order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, 0, len(c.defs))
	for _, def := range c.defs {
		out = append(out, cloneDefinition(def))
	}

	return out
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// containsTerm reports whether needle occurs in haystack on word boundaries.
func containsTerm(haystack, needle string) bool {
	for start := 0; start+len(needle) <= len(haystack); {
		i := strings.Index(haystack[start:], needle)
		if i < 0 {
			return false
		}

		i += start
		end := i + len(needle)

		if isBoundary(haystack, i-1, true) && isBoundary(haystack, end, false) {
			return true
		}

		_, size := utf8.DecodeRuneInString(haystack[i:])
		start = i + size
	}

	return false
}

func isBoundary(s string, pos int, before bool) bool {
	if pos < 0 || pos >= len(s) {
		return true
	}

	var r rune
	if before {
		r, _ = utf8.DecodeLastRuneInString(s[:pos+1])
	} else {
		r, _ = utf8.DecodeRuneInString(s[pos:])
	}

	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
