/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package consensus

import (
	"regexp"
	"strings"

	"github.com/humaidq/labconsensus/utils"
)

// qualifierPrefixes are leading phrases that do not change the diagnosis.
var qualifierPrefixes = []string{
	"sindrome de ",
	"doenca de ",
	"transtorno de ",
	"syndrome of ",
	"disease of ",
	"disorder of ",
}

type synonym struct {
	pattern   *regexp.Regexp
	canonical string
}

// synonyms map known spellings onto one canonical phrase. Alternatives are
// matched on word boundaries, longest first.
var synonyms = []synonym{
	{
		pattern:   regexp.MustCompile(`\b(?:diabetes mellitus tipo (?:2|ii)|diabetes mellitus type (?:2|ii)|type (?:2|ii) diabetes mellitus|type (?:2|ii) diabetes|diabetes tipo ii|dm tipo 2|t2dm|dm ?2)\b`),
		canonical: "diabetes tipo 2",
	},
	{
		pattern:   regexp.MustCompile(`\b(?:diabetes mellitus tipo (?:1|i)|diabetes mellitus type (?:1|i)|type (?:1|i) diabetes mellitus|type (?:1|i) diabetes|t1dm|dm ?1)\b`),
		canonical: "diabetes tipo 1",
	},
	{
		pattern:   regexp.MustCompile(`\b(?:anemia por deficiencia de ferro|iron deficiency anemia|iron-deficiency anemia|anemia ferropenica)\b`),
		canonical: "anemia ferropriva",
	},
}

// NormalizeName maps a diagnosis name onto the key used to group candidates.
// It folds case and accents, collapses whitespace, strips leading qualifier
// phrases and collapses known synonyms.
func NormalizeName(name string) string {
	s := strings.Trim(utils.NormalizeTerm(name), " .;:,")

	for _, prefix := range qualifierPrefixes {
		if strings.HasPrefix(s, prefix) && len(s) > len(prefix) {
			s = s[len(prefix):]
			break
		}
	}

	for _, syn := range synonyms {
		s = syn.pattern.ReplaceAllString(s, syn.canonical)
	}

	return utils.CollapseSpace(s)
}
