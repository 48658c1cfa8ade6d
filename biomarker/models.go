/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package biomarker

import (
	"encoding/json"
	"fmt"

	"github.com/humaidq/labconsensus/utils"
)

// Sex represents biological sex for sex-specific reference ranges.
type Sex string

// Sex values accepted by the classifier. SexUnknown keeps the default ranges.
const (
	SexUnknown Sex = ""
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
)

// ParseSex maps free-form input onto a Sex value.
func ParseSex(s string) Sex {
	switch utils.NormalizeTerm(s) {
	case "m", "male", "masculino", "homem":
		return SexMale
	case "f", "female", "feminino", "mulher":
		return SexFemale
	default:
		return SexUnknown
	}
}

// Status is the classification outcome for a single value.
type Status string

// Status values, ordered from least to most severe.
const (
	StatusNormal    Status = "normal"
	StatusAttention Status = "attention"
	StatusCritical  Status = "critical"
)

// Category groups definitions by clinical area.
type Category string

// Supported categories.
const (
	CategoryMetabolic    Category = "metabolic"
	CategoryLipid        Category = "lipid"
	CategoryThyroid      Category = "thyroid"
	CategoryHematologic  Category = "hematologic"
	CategoryIron         Category = "iron"
	CategoryLiver        Category = "liver"
	CategoryKidney       Category = "kidney"
	CategoryElectrolytes Category = "electrolytes"
	CategoryInflammatory Category = "inflammatory"
	CategoryVitamins     Category = "vitamins"
	CategoryHormonal     Category = "hormonal"
	CategoryCardiac      Category = "cardiac"
	CategoryBone         Category = "bone"
)

var categoryOrder = []Category{
	CategoryMetabolic,
	CategoryLipid,
	CategoryThyroid,
	CategoryHematologic,
	CategoryIron,
	CategoryLiver,
	CategoryKidney,
	CategoryElectrolytes,
	CategoryInflammatory,
	CategoryVitamins,
	CategoryHormonal,
	CategoryCardiac,
	CategoryBone,
}

var categoryNames = map[Category]string{
	CategoryMetabolic:    "Metabolismo Glicídico",
	CategoryLipid:        "Perfil Lipídico",
	CategoryThyroid:      "Função Tireoideana",
	CategoryHematologic:  "Hemograma",
	CategoryIron:         "Metabolismo do Ferro",
	CategoryLiver:        "Função Hepática",
	CategoryKidney:       "Função Renal",
	CategoryElectrolytes: "Eletrólitos",
	CategoryInflammatory: "Marcadores Inflamatórios",
	CategoryVitamins:     "Vitaminas",
	CategoryHormonal:     "Hormônios",
	CategoryCardiac:      "Marcadores Cardíacos",
	CategoryBone:         "Metabolismo Ósseo",
}

// DisplayName returns the human readable category label.
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}

	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// Range is a closed numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// String formats the range the way lab reports print it.
func (r Range) String() string {
	return fmt.Sprintf("%g - %g", r.Min, r.Max)
}

// RangeOverride replaces one or both bounds of a range.
type RangeOverride struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Apply returns r with the non-nil bounds of o substituted.
func (o RangeOverride) Apply(r Range) Range {
	if o.Min != nil {
		r.Min = *o.Min
	}

	if o.Max != nil {
		r.Max = *o.Max
	}

	return r
}

// Definition describes one biomarker known to the catalog.
type Definition struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Category        Category              `json:"category"`
	Unit            string                `json:"unit"`
	LabRange        Range                 `json:"labRange"`
	FunctionalRange Range                 `json:"functionalRange"`
	CriticalLow     *float64              `json:"criticalLow,omitempty"`
	CriticalHigh    *float64              `json:"criticalHigh,omitempty"`
	Aliases         []string              `json:"aliases"`
	Adjustments     map[Sex]RangeOverride `json:"adjustments,omitempty"`
}

// LabRangeFor returns the lab range after applying the sex adjustment.
func (d Definition) LabRangeFor(sex Sex) Range {
	if sex == SexUnknown || d.Adjustments == nil {
		return d.LabRange
	}

	if adj, ok := d.Adjustments[sex]; ok {
		return adj.Apply(d.LabRange)
	}

	return d.LabRange
}

// RawValue is a single lab value as it arrives from extraction.
type RawValue struct {
	Name           string  `json:"name"`
	Value          float64 `json:"value"`
	Unit           string  `json:"unit,omitempty"`
	ReferenceRange string  `json:"referenceRange,omitempty"`

	// Missing is set when a decoded document had no value or a null one.
	Missing bool `json:"-"`
}

// MarshalJSON writes a missing value back as null.
func (r RawValue) MarshalJSON() ([]byte, error) {
	type plain RawValue

	aux := struct {
		plain
		Value *float64 `json:"value"`
	}{plain: plain(r)}

	if !r.Missing {
		aux.Value = &r.Value
	}

	return json.Marshal(aux)
}

// UnmarshalJSON decodes a raw value and flags an absent or null value so it
// is rejected rather than read as zero.
func (r *RawValue) UnmarshalJSON(data []byte) error {
	type plain RawValue

	var aux struct {
		plain
		Value *float64 `json:"value"`
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = RawValue(aux.plain)
	if aux.Value == nil {
		r.Missing = true
	} else {
		r.Value = *aux.Value
	}

	return nil
}

// Extracted is a resolved and classified biomarker value.
type Extracted struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	RawName         string   `json:"rawName"`
	Category        Category `json:"category"`
	Value           float64  `json:"value"`
	Unit            string   `json:"unit"`
	RawUnit         string   `json:"rawUnit,omitempty"`
	LabRange        Range    `json:"labRange"`
	FunctionalRange Range    `json:"functionalRange"`
	PrintedRange    string   `json:"printedRange,omitempty"`
	Status          Status   `json:"status"`
	Interpretation  string   `json:"interpretation"`
	DeviationScore  float64  `json:"deviationScore"`
}

// AboveLab reports whether the value exceeds the lab range upper bound.
func (e Extracted) AboveLab() bool {
	return e.Value > e.LabRange.Max
}

// BelowLab reports whether the value is under the lab range lower bound.
func (e Extracted) BelowLab() bool {
	return e.Value < e.LabRange.Min
}

// Rejection records a raw value that could not be classified.
type Rejection struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value,omitempty"`
	Error string   `json:"error"`
	Err   error    `json:"-"`
}

// Batch is the outcome of classifying a set of raw values.
type Batch struct {
	Markers  []Extracted `json:"markers"`
	Rejected []Rejection `json:"rejected,omitempty"`
}

// Summary counts markers per status.
type Summary struct {
	Critical  int `json:"critical"`
	Attention int `json:"attention"`
	Normal    int `json:"normal"`
}

// Summarize counts the markers per status.
func Summarize(markers []Extracted) Summary {
	var s Summary

	for _, m := range markers {
		switch m.Status {
		case StatusCritical:
			s.Critical++
		case StatusAttention:
			s.Attention++
		default:
			s.Normal++
		}
	}

	return s
}
