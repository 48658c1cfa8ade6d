/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"strings"

	"github.com/flamego/flamego"

	"github.com/humaidq/labconsensus/analysis"
	"github.com/humaidq/labconsensus/biomarker"
)

type categoryView struct {
	ID    biomarker.Category `json:"id"`
	Name  string             `json:"name"`
	Count int                `json:"count"`
}

// ListCategories lists the categories present in the catalog.
func ListCategories(c flamego.Context, engine *analysis.Engine) {
	catalog := engine.Catalog()

	cats := catalog.AllCategories()
	out := make([]categoryView, 0, len(cats))

	for _, cat := range cats {
		out = append(out, categoryView{
			ID:    cat,
			Name:  cat.DisplayName(),
			Count: len(catalog.ByCategory(cat)),
		})
	}

	writeJSON(c, http.StatusOK, out)
}

// ListBiomarkers lists catalog definitions, optionally filtered by category.
func ListBiomarkers(c flamego.Context, engine *analysis.Engine) {
	catalog := engine.Catalog()

	category := strings.TrimSpace(c.Query("category"))
	if category == "" {
		writeJSON(c, http.StatusOK, catalog.Definitions())
		return
	}

	cat := biomarker.Category(strings.ToLower(category))
	if !cat.Valid() {
		writeError(c, http.StatusBadRequest, codeInvalidCategory, "unknown category: "+category)
		return
	}

	writeJSON(c, http.StatusOK, catalog.ByCategory(cat))
}

// LookupBiomarker resolves a printed name or alias to its definition.
func LookupBiomarker(c flamego.Context, engine *analysis.Engine) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		writeError(c, http.StatusBadRequest, codeMissingName, errMissingName.Error())
		return
	}

	def, ok := engine.Catalog().Lookup(name)
	if !ok {
		writeError(c, http.StatusNotFound, codeUnresolved, biomarker.ErrUnresolvedBiomarker.Error()+": "+name)
		return
	}

	writeJSON(c, http.StatusOK, def)
}
