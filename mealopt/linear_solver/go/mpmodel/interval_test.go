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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInterval_Offset(t *testing.T) {
	testCases := []struct {
		name  string
		in    Interval
		delta float64
		want  Interval
	}{
		{
			name:  "Finite",
			in:    Interval{1, 3},
			delta: -0.5,
			want:  Interval{0.5, 2.5},
		},
		{
			name:  "InfiniteEndsAreKept",
			in:    Unbounded(),
			delta: 10,
			want:  Interval{math.Inf(-1), math.Inf(1)},
		},
		{
			name:  "HalfOpen",
			in:    Interval{math.Inf(-1), 0},
			delta: 0.0009,
			want:  Interval{math.Inf(-1), 0.0009},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got := test.in.Offset(test.delta)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Offset(%v) returned with unexpected diff (-want+got):\n%s", test.delta, diff)
			}
		})
	}
}

func TestInterval_Predicates(t *testing.T) {
	testCases := []struct {
		in                                    Interval
		wantEmpty, wantFixed, wantLo, wantHi bool
	}{
		{in: Interval{0, 1}, wantLo: true, wantHi: true},
		{in: Fixed(4), wantFixed: true, wantLo: true, wantHi: true},
		{in: Interval{2, 1}, wantEmpty: true, wantLo: true, wantHi: true},
		{in: Interval{math.NaN(), 1}, wantEmpty: true, wantLo: true, wantHi: true},
		{in: Interval{0, math.Inf(1)}, wantLo: true},
		{in: Unbounded()},
	}

	for _, test := range testCases {
		t.Run(test.in.String(), func(t *testing.T) {
			if got := test.in.IsEmpty(); got != test.wantEmpty {
				t.Errorf("IsEmpty() = %v, want %v", got, test.wantEmpty)
			}
			if got := test.in.IsFixed(); got != test.wantFixed {
				t.Errorf("IsFixed() = %v, want %v", got, test.wantFixed)
			}
			if got := test.in.HasLower(); got != test.wantLo {
				t.Errorf("HasLower() = %v, want %v", got, test.wantLo)
			}
			if got := test.in.HasUpper(); got != test.wantHi {
				t.Errorf("HasUpper() = %v, want %v", got, test.wantHi)
			}
		})
	}
}

func TestInterval_Violation(t *testing.T) {
	in := Interval{1, 2}
	for v, want := range map[float64]float64{0.5: 0.5, 1: 0, 1.5: 0, 2: 0, 3.25: 1.25} {
		if got := in.Violation(v); got != want {
			t.Errorf("%v.Violation(%v) = %v, want %v", in, v, got, want)
		}
	}
	if got, want := Unbounded().String(), "[-inf,+inf]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
