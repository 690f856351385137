/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import "strings"

// RangeEntry holds the gender-specific range texts of one parameter.
type RangeEntry struct {
	Parameter string
	Male      string
	Female    string
}

// For returns the range text for a gender.
func (e RangeEntry) For(g Gender) string {
	if g == GenderFemale {
		return e.Female
	}

	return e.Male
}

// RangeCategory groups related parameters, e.g. WHITE_BLOOD_CELLS.
type RangeCategory struct {
	Name    string
	Entries []RangeEntry
}

// Table is a versioned reference range table for one panel.
//
// Categories are kept in a slice so that the order used by flat lookups is
// part of the data, not of map iteration.
type Table struct {
	Version    string
	Note       string
	Categories []RangeCategory
}

// Lookup finds the range text of a parameter across all categories. The
// first category that declares the parameter wins. Parameter keys are case
// sensitive while the gender is not. ok is false when the parameter is not
// in the table or the gender is unknown, which means "do not classify".
func (t *Table) Lookup(parameter, gender string) (string, bool) {
	g, err := ParseGender(gender)
	if err != nil {
		return "", false
	}

	for _, category := range t.Categories {
		for _, entry := range category.Entries {
			if entry.Parameter == parameter {
				return entry.For(g), true
			}
		}
	}

	return "", false
}

// categoryKey folds display names such as "Proteins & Albumin" onto table
// keys such as PROTEINS_AND_ALBUMIN.
func categoryKey(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(strings.ReplaceAll(name, "&", "and")), "_"))
}

// LookupIn resolves a parameter inside a single category. Category names
// match the table keys or their display form.
func (t *Table) LookupIn(category, parameter, gender string) (string, bool) {
	g, err := ParseGender(gender)
	if err != nil {
		return "", false
	}

	key := categoryKey(category)
	for _, c := range t.Categories {
		if categoryKey(c.Name) != key {
			continue
		}

		for _, entry := range c.Entries {
			if entry.Parameter == parameter {
				return entry.For(g), true
			}
		}
	}

	return "", false
}

// Collisions lists parameter keys declared in more than one category. A
// non-empty result means flat lookups depend on category order.
func (t *Table) Collisions() []string {
	counts := make(map[string]int)

	var order []string
	for _, category := range t.Categories {
		for _, entry := range category.Entries {
			if counts[entry.Parameter] == 0 {
				order = append(order, entry.Parameter)
			}
			counts[entry.Parameter]++
		}
	}

	var out []string
	for _, name := range order {
		if counts[name] > 1 {
			out = append(out, name)
		}
	}

	return out
}

// Reference ranges revision 2025.1. Ranges may vary between laboratories.

var cbcTable = &Table{
	Version: "2025.1",
	Note:    "Reference ranges may vary between laboratories",
	Categories: []RangeCategory{
		{
			Name: "WHITE_BLOOD_CELLS",
			Entries: []RangeEntry{
				{Parameter: "WBC_Total", Male: "4.5-11.0 ×10³/μL", Female: "4.5-11.0 ×10³/μL"},
				{Parameter: "Neutrophils", Male: "1.5-8.0 ×10³/μL (40-60%)", Female: "1.5-8.0 ×10³/μL (40-60%)"},
				{Parameter: "Lymphocytes", Male: "1.0-4.0 ×10³/μL (20-40%)", Female: "1.0-4.0 ×10³/μL (20-40%)"},
				{Parameter: "Monocytes", Male: "0.2-1.0 ×10³/μL (2-8%)", Female: "0.2-1.0 ×10³/μL (2-8%)"},
				{Parameter: "Eosinophils", Male: "0.0-0.5 ×10³/μL (1-4%)", Female: "0.0-0.5 ×10³/μL (1-4%)"},
				{Parameter: "Basophils", Male: "0.0-0.2 ×10³/μL (0-1%)", Female: "0.0-0.2 ×10³/μL (0-1%)"},
			},
		},
		{
			Name: "RED_BLOOD_CELLS",
			Entries: []RangeEntry{
				{Parameter: "RBC_Count", Male: "4.6-6.2 ×10⁶/μL", Female: "4.2-5.4 ×10⁶/μL"},
				{Parameter: "Hemoglobin", Male: "13.0-18.0 g/dL", Female: "12.0-16.0 g/dL"},
				{Parameter: "Hematocrit", Male: "40-54%", Female: "36-48%"},
				{Parameter: "MCV", Male: "80-100 fL", Female: "80-100 fL"},
				{Parameter: "MCH", Male: "27-32 pg", Female: "27-32 pg"},
				{Parameter: "MCHC", Male: "32-36 g/dL", Female: "32-36 g/dL"},
				{Parameter: "RDW", Male: "11.5-14.5%", Female: "11.5-14.5%"},
			},
		},
		{
			Name: "PLATELETS",
			Entries: []RangeEntry{
				{Parameter: "Platelet_Count", Male: "150-450 ×10³/μL", Female: "150-450 ×10³/μL"},
				{Parameter: "MPV", Male: "7.5-11.5 fL", Female: "7.5-11.5 fL"},
			},
		},
	},
}

var lftTable = &Table{
	Version: "2025.1",
	Note:    "Reference ranges may slightly vary between laboratories",
	Categories: []RangeCategory{
		{
			Name: "LIVER_ENZYMES",
			Entries: []RangeEntry{
				{Parameter: "ALT (SGPT)", Male: "10-40 U/L", Female: "7-35 U/L"},
				{Parameter: "AST (SGOT)", Male: "10-40 U/L", Female: "9-32 U/L"},
				{Parameter: "ALP (Alkaline Phosphatase)", Male: "40-130 U/L", Female: "35-105 U/L"},
				{Parameter: "GGT (Gamma GT)", Male: "8-61 U/L", Female: "5-36 U/L"},
			},
		},
		{
			Name: "PROTEINS_AND_ALBUMIN",
			Entries: []RangeEntry{
				{Parameter: "Total_Protein", Male: "6.0-8.3 g/dL", Female: "6.0-8.3 g/dL"},
				{Parameter: "Albumin", Male: "3.5-5.0 g/dL", Female: "3.5-5.0 g/dL"},
				{Parameter: "Globulin", Male: "2.0-3.5 g/dL", Female: "2.0-3.5 g/dL"},
				{Parameter: "A/G Ratio", Male: "1.0-2.2", Female: "1.0-2.2"},
			},
		},
		{
			Name: "BILIRUBIN",
			Entries: []RangeEntry{
				{Parameter: "Total_Bilirubin", Male: "0.3-1.2 mg/dL", Female: "0.3-1.2 mg/dL"},
				{Parameter: "Direct_Bilirubin", Male: "0.1-0.3 mg/dL", Female: "0.1-0.3 mg/dL"},
				{Parameter: "Indirect_Bilirubin", Male: "0.2-0.9 mg/dL", Female: "0.2-0.9 mg/dL"},
			},
		},
	},
}

var cbcDefinition = &Definition{
	Panel:   PanelCBC,
	Title:   "Complete Blood Count (CBC) Analyzer",
	Subject: "CBC",
	Table:   cbcTable,
	Parameters: []Parameter{
		{Key: "WBC_Total", Unit: "×10³/μL", Category: "White Blood Cells", Step: 0.1},
		{Key: "Neutrophils", Unit: "×10³/μL", Category: "White Blood Cells", Step: 0.1},
		{Key: "Lymphocytes", Unit: "×10³/μL", Category: "White Blood Cells", Step: 0.1},
		{Key: "Monocytes", Unit: "×10³/μL", Category: "White Blood Cells", Step: 0.1},
		{Key: "Eosinophils", Unit: "×10³/μL", Category: "White Blood Cells", Step: 0.1},
		{Key: "Basophils", Unit: "×10³/μL", Category: "White Blood Cells", Step: 0.1},
		{Key: "RBC_Count", Unit: "×10⁶/μL", Category: "Red Blood Cells", Step: 0.1},
		{Key: "Hemoglobin", Unit: "g/dL", Category: "Red Blood Cells", Step: 0.1},
		{Key: "Hematocrit", Unit: "%", Category: "Red Blood Cells", Step: 0.1},
		{Key: "MCV", Unit: "fL", Category: "Red Blood Cells", Step: 0.1},
		{Key: "MCH", Unit: "pg", Category: "Red Blood Cells", Step: 0.1},
		{Key: "MCHC", Unit: "g/dL", Category: "Red Blood Cells", Step: 0.1},
		{Key: "RDW", Unit: "%", Category: "Red Blood Cells", Step: 0.1},
		{Key: "Platelet_Count", Unit: "×10³/μL", Category: "Platelets", Step: 1},
		{Key: "MPV", Unit: "fL", Category: "Platelets", Step: 0.1},
	},
}

var lftDefinition = &Definition{
	Panel:   PanelLFT,
	Title:   "Liver Function Test (LFT) Analyzer",
	Subject: "LFT",
	Table:   lftTable,
	Parameters: []Parameter{
		{Key: "ALT (SGPT)", Unit: "U/L", Category: "Liver Enzymes", Step: 0.1},
		{Key: "AST (SGOT)", Unit: "U/L", Category: "Liver Enzymes", Step: 0.1},
		{Key: "ALP (Alkaline Phosphatase)", Unit: "U/L", Category: "Liver Enzymes", Step: 0.1},
		{Key: "GGT (Gamma GT)", Unit: "U/L", Category: "Liver Enzymes", Step: 0.1},
		{Key: "Total_Protein", Unit: "g/dL", Category: "Proteins & Albumin", Step: 0.1},
		{Key: "Albumin", Unit: "g/dL", Category: "Proteins & Albumin", Step: 0.1},
		{Key: "Globulin", Unit: "g/dL", Category: "Proteins & Albumin", Step: 0.1},
		{Key: "A/G Ratio", Unit: "", Category: "Proteins & Albumin", Step: 0.1},
		{Key: "Total_Bilirubin", Unit: "mg/dL", Category: "Bilirubin", Step: 0.1},
		{Key: "Direct_Bilirubin", Unit: "mg/dL", Category: "Bilirubin", Step: 0.1},
		{Key: "Indirect_Bilirubin", Unit: "mg/dL", Category: "Bilirubin", Step: 0.1},
	},
}
