/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import (
	"errors"
	"fmt"
	"strings"
)

// Gender represents biological sex for medical reference ranges
type Gender string

// Gender values as they are stored on visit records.
const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// ParseGender accepts any casing of "male" or "female".
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGender, s)
	}
}

// Initial returns the first letter used in patient identifiers.
func (g Gender) Initial() string {
	if g == "" {
		return ""
	}

	return string(g)[:1]
}

// Panel identifies a group of lab parameters analysed together.
type Panel string

// Supported panels.
const (
	PanelCBC Panel = "CBC"
	PanelLFT Panel = "LFT"
)

// Slug returns the lowercase form used in URLs and database names.
func (p Panel) Slug() string {
	return strings.ToLower(string(p))
}

// ParsePanel resolves a panel code or URL slug.
func ParsePanel(s string) (Panel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(PanelCBC):
		return PanelCBC, nil
	case string(PanelLFT):
		return PanelLFT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPanel, s)
	}
}

// Panels returns every supported panel in display order.
func Panels() []Panel {
	return []Panel{PanelCBC, PanelLFT}
}

// Parameter is one input on a panel form.
type Parameter struct {
	Key      string
	Unit     string
	Category string
	Step     float64
}

// Name returns the display name stored on results, e.g. "WBC Total".
func (p Parameter) Name() string {
	return strings.ReplaceAll(p.Key, "_", " ")
}

// Label returns the form label including the unit.
func (p Parameter) Label() string {
	if p.Unit == "" {
		return p.Name()
	}

	return fmt.Sprintf("%s (%s)", p.Name(), p.Unit)
}

// FieldName returns a form-safe input name for the parameter.
func (p Parameter) FieldName() string {
	r := strings.NewReplacer(" ", "_", "(", "", ")", "", "/", "_")
	return strings.ToLower(r.Replace(p.Key))
}

// Definition bundles everything the UI and analysis need for one panel.
type Definition struct {
	Panel      Panel
	Title      string
	Subject    string
	Parameters []Parameter
	Table      *Table
}

// Categories returns the distinct parameter categories in declaration order.
func (d *Definition) Categories() []string {
	seen := make(map[string]bool)

	var out []string
	for _, p := range d.Parameters {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}

	return out
}

// ParametersIn returns the parameters of a category.
func (d *Definition) ParametersIn(category string) []Parameter {
	var out []Parameter
	for _, p := range d.Parameters {
		if p.Category == category {
			out = append(out, p)
		}
	}

	return out
}

// Check verifies that every parameter resolves in its own category for both
// genders and that flat lookups are unambiguous.
func (d *Definition) Check() error {
	var errs []error

	if c := d.Table.Collisions(); len(c) > 0 {
		errs = append(errs, fmt.Errorf("%s: %w: %s", d.Panel, ErrAmbiguousParameter, strings.Join(c, ", ")))
	}

	for _, p := range d.Parameters {
		for _, g := range []Gender{GenderMale, GenderFemale} {
			if _, ok := d.Table.LookupIn(p.Category, p.Key, string(g)); !ok {
				errs = append(errs, fmt.Errorf("%s: %w: %s (%s, %s)", d.Panel, ErrMissingRange, p.Key, p.Category, g))
			}
		}
	}

	return errors.Join(errs...)
}

// Lookup returns the definition of a panel.
func Lookup(p Panel) (*Definition, error) {
	switch p {
	case PanelCBC:
		return cbcDefinition, nil
	case PanelLFT:
		return lftDefinition, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPanel, p)
	}
}
