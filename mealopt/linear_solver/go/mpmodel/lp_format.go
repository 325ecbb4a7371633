// Copyright 2010-2024 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mpmodel

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ExportOptions groups all options for exporting models to text formats.
type ExportOptions struct {
	// Obfuscate replaces variable and constraint names by `V<index>` and `C<index>`.
	Obfuscate bool
	// MaxLineLength wraps long expressions. Zero means no wrapping.
	MaxLineLength int
}

// lpName is the set of names accepted unchanged in the LP format.
var lpName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\[\]]*$`)

// ObfuscatedVarName returns the name of variable `i` in an obfuscated export.
func ObfuscatedVarName(i VarIndex) string {
	return "V" + strconv.Itoa(int(i))
}

// ParseObfuscatedVarName returns the index encoded by ObfuscatedVarName, and false if `name`
// is not an obfuscated variable name.
func ParseObfuscatedVarName(name string) (VarIndex, bool) {
	if !strings.HasPrefix(name, "V") {
		return 0, false
	}
	i, err := strconv.Atoi(name[1:])
	if err != nil || i < 0 {
		return 0, false
	}
	return VarIndex(i), true
}

func obfuscatedConstraintName(i int) string {
	return "C" + strconv.Itoa(i)
}

// formatNumber prints a finite number the way LP readers parse it back exactly.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	if a := math.Abs(v); a >= 1e-4 && a < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'e', -1, 64)
}

type lpWriter struct {
	sb      strings.Builder
	lineLen int
	maxLen  int
}

func (w *lpWriter) newline() {
	w.sb.WriteByte('\n')
	w.lineLen = 0
}

// token writes `s` preceded by a space, wrapping the line first if it would grow too long.
func (w *lpWriter) token(s string) {
	if w.maxLen > 0 && w.lineLen > 0 && w.lineLen+1+len(s) > w.maxLen {
		w.newline()
	}
	w.sb.WriteByte(' ')
	w.sb.WriteString(s)
	w.lineLen += 1 + len(s)
}

func (w *lpWriter) line(s string) {
	w.sb.WriteString(s)
	w.newline()
}

func (w *lpWriter) terms(names []string, vars []VarIndex, coeffs []float64) {
	if len(vars) == 0 {
		// Readers reject empty expressions; a zero term on the first column keeps the row.
		w.token("0")
		w.token(names[0])
		return
	}
	for k, ind := range vars {
		c := coeffs[k]
		switch {
		case k == 0 && c < 0:
			w.token("-" + formatNumber(-c))
		case k == 0:
			w.token(formatNumber(c))
		case c < 0:
			w.token("-")
			w.token(formatNumber(-c))
		default:
			w.token("+")
			w.token(formatNumber(c))
		}
		w.token(names[ind])
	}
}

func (w *lpWriter) row(label string, names []string, ct *LinearConstraint, sense string, rhs float64) {
	w.sb.WriteByte(' ')
	w.sb.WriteString(label)
	w.sb.WriteByte(':')
	w.lineLen = len(label) + 2
	w.terms(names, ct.Vars, ct.Coeffs)
	w.token(sense)
	w.token(formatNumber(rhs))
	w.newline()
}

// ExportModelAsLpFormat outputs the model as a string in the CPLEX LP format.
//
// Ranged rows are written as two rows suffixed `_lo` and `_hi`, free rows are skipped. The
// objective offset is not part of the format and is left to the caller.
//
// Usage:
//
//	modelStr, err := ExportModelAsLpFormat(model, ExportOptions{Obfuscate: true})
func ExportModelAsLpFormat(model *Model, options ExportOptions) (string, error) {
	if model == nil {
		return "", errors.New("cannot export a nil model")
	}
	if len(model.Variables) == 0 {
		return "", errors.New("cannot export a model without variables as LP format")
	}
	names := make([]string, len(model.Variables))
	seen := make(map[string]bool, len(model.Variables))
	for i, v := range model.Variables {
		name := v.Name
		if options.Obfuscate || name == "" {
			name = ObfuscatedVarName(VarIndex(i))
		} else if !lpName.MatchString(name) {
			return "", fmt.Errorf("variable name %q cannot be exported as LP format", name)
		}
		if seen[name] {
			return "", fmt.Errorf("variable name %q exported twice: %w", name, ErrDuplicateName)
		}
		seen[name] = true
		names[i] = name
	}

	w := &lpWriter{maxLen: options.MaxLineLength}
	if model.Name != "" && !options.Obfuscate {
		w.line(`\ Model ` + model.Name)
	}
	obj := model.Objective
	if obj == nil {
		obj = &Objective{}
	}
	if obj.Maximize {
		w.line("Maximize")
	} else {
		w.line("Minimize")
	}
	w.sb.WriteString(" obj:")
	w.lineLen = 5
	w.terms(names, obj.Vars, obj.Coeffs)
	w.newline()

	w.line("Subject To")
	for i, ct := range model.Constraints {
		label := ct.Name
		if options.Obfuscate || label == "" {
			label = obfuscatedConstraintName(i)
		} else if !lpName.MatchString(label) {
			return "", fmt.Errorf("constraint name %q cannot be exported as LP format", label)
		}
		b := ct.Bounds
		switch {
		case b.IsEmpty():
			return "", fmt.Errorf("constraint %s has bounds %v: %w", label, b, ErrEmptyBounds)
		case b.IsFixed():
			w.row(label, names, ct, "=", b.Lower)
		case b.HasLower() && b.HasUpper():
			w.row(label+"_lo", names, ct, ">=", b.Lower)
			w.row(label+"_hi", names, ct, "<=", b.Upper)
		case b.HasLower():
			w.row(label, names, ct, ">=", b.Lower)
		case b.HasUpper():
			w.row(label, names, ct, "<=", b.Upper)
		}
	}

	w.line("Bounds")
	var generals, binaries []string
	for i, v := range model.Variables {
		b := v.Bounds
		if b.IsEmpty() {
			return "", fmt.Errorf("variable %s has bounds %v: %w", names[i], b, ErrEmptyBounds)
		}
		if v.IsBinary() {
			binaries = append(binaries, names[i])
			continue
		}
		if v.Integer {
			generals = append(generals, names[i])
		}
		switch {
		case b.IsFixed():
			w.line(" " + names[i] + " = " + formatNumber(b.Lower))
		case !b.HasLower() && !b.HasUpper():
			w.line(" " + names[i] + " free")
		case !b.HasUpper():
			// The format's default bounds are [0,+inf).
			if b.Lower != 0 {
				w.line(" " + names[i] + " >= " + formatNumber(b.Lower))
			}
		case !b.HasLower():
			w.line(" -inf <= " + names[i] + " <= " + formatNumber(b.Upper))
		default:
			w.line(" " + formatNumber(b.Lower) + " <= " + names[i] + " <= " + formatNumber(b.Upper))
		}
	}
	writeSection(w, "Generals", generals)
	writeSection(w, "Binaries", binaries)
	w.line("End")
	return w.sb.String(), nil
}

func writeSection(w *lpWriter, title string, names []string) {
	if len(names) == 0 {
		return
	}
	w.line(title)
	for _, n := range names {
		w.token(n)
	}
	w.newline()
}
