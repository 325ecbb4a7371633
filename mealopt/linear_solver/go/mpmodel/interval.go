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
	"fmt"
	"math"
)

// Interval stores the closed interval `[Lower,Upper]` of a variable or a row. Either end
// may be infinite. If `Lower` is greater than `Upper`, the interval is considered empty.
type Interval struct {
	Lower float64
	Upper float64
}

// NewInterval creates the interval `[lb,ub]`.
func NewInterval(lb, ub float64) Interval {
	return Interval{Lower: lb, Upper: ub}
}

// Unbounded returns the interval `(-inf,+inf)`.
func Unbounded() Interval {
	return Interval{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// Fixed returns the singleton interval `[v,v]`.
func Fixed(v float64) Interval {
	return Interval{Lower: v, Upper: v}
}

// addFinite adds `delta` to `v` unless `v` is infinite, in which case `v` is returned
// unchanged since it represents an unbounded side.
func addFinite(v, delta float64) float64 {
	if math.IsInf(v, 0) {
		return v
	}
	return v + delta
}

// Offset adds an offset to both ends of the interval. Infinite ends stay infinite.
func (i Interval) Offset(delta float64) Interval {
	return Interval{Lower: addFinite(i.Lower, delta), Upper: addFinite(i.Upper, delta)}
}

// IsEmpty reports whether the interval contains no value.
func (i Interval) IsEmpty() bool {
	return i.Lower > i.Upper || math.IsNaN(i.Lower) || math.IsNaN(i.Upper)
}

// IsFixed reports whether the interval is a single finite value.
func (i Interval) IsFixed() bool {
	return i.Lower == i.Upper && !math.IsInf(i.Lower, 0)
}

// HasLower reports whether the lower end is finite.
func (i Interval) HasLower() bool {
	return !math.IsInf(i.Lower, -1)
}

// HasUpper reports whether the upper end is finite.
func (i Interval) HasUpper() bool {
	return !math.IsInf(i.Upper, 1)
}

// Violation returns by how much `v` lies outside of the interval, or 0 if it is inside.
func (i Interval) Violation(v float64) float64 {
	switch {
	case v < i.Lower:
		return i.Lower - v
	case v > i.Upper:
		return v - i.Upper
	}
	return 0
}

func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return fmt.Sprintf("%g", v)
}

// String returns the interval as `[lb,ub]`.
func (i Interval) String() string {
	return fmt.Sprintf("[%s,%s]", formatBound(i.Lower), formatBound(i.Upper))
}
