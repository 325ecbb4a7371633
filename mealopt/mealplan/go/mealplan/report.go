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

package mealplan

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mealopt/mealopt/mealopt/nutrition/go/nutrition"
)

// Report returns the plan as a struct proto, ready for `protojson`. Days list their meals by
// decreasing carbs, the order in which they are best eaten. `meals` must be the meals the
// plan was made for.
func (p *Plan) Report(meals []*nutrition.Meal) (*structpb.Struct, error) {
	if len(meals) != len(p.Quantities) {
		return nil, fmt.Errorf("plan of %d meals reported with %d meals", len(p.Quantities), len(meals))
	}
	prices := p.DailyPrices(meals)
	var days []any
	for j, d := range p.Days(meals) {
		var servings []any
		for _, s := range d.Sorted(nutrition.Carbs) {
			servings = append(servings, map[string]any{
				"meal":     s.Meal.Name(),
				"quantity": roundTo(s.Quantity, 3),
			})
		}
		totals := map[string]any{}
		for _, a := range nutrition.Macros() {
			totals[a.String()] = roundTo(d.Value(a), 1)
		}
		days = append(days, map[string]any{
			"day":    j + 1,
			"price":  prices[j].InexactFloat64(),
			"meals":  servings,
			"totals": totals,
		})
	}

	var states []any
	for _, s := range p.Info.States {
		states = append(states, s.String())
	}
	terms := map[string]any{
		"price":     roundTo(p.Info.Terms.Price, 6),
		"nutrients": roundTo(p.Info.Terms.Nutrients, 6),
		"range":     roundTo(p.Info.Terms.Range, 6),
	}
	return structpb.NewStruct(map[string]any{
		"run_id":       p.Info.RunID,
		"status":       p.Info.Status.String(),
		"objective":    p.Info.Objective,
		"terms":        terms,
		"wall_time_ms": p.Info.WallTime.Milliseconds(),
		"iterations":   p.Info.Iterations,
		"total_price":  p.Info.TotalPrice.InexactFloat64(),
		"attempts":     p.Info.Attempts,
		"states":       states,
		"days":         days,
	})
}
