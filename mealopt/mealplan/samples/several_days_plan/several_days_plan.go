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

// The several_days_plan command plans four days of four meals of the sample catalog, with
// limits on how often some meals are eaten.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/golang/glog"
	_ "github.com/joho/godotenv/autoload"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/mealopt/mealopt/mealopt/linear_solver/go/mpmodel"
	"github.com/mealopt/mealopt/mealopt/mealplan/go/mealplan"
	"github.com/mealopt/mealopt/mealopt/nutrition/go/nutrition"
)

var (
	cbcPath   = flag.String("cbc", os.Getenv("MEALOPT_CBC_PATH"), "path of the CBC program, looked up on PATH if empty")
	timeLimit = flag.String("time_limit", os.Getenv("MEALOPT_TIME_LIMIT"), "time limit of each solve, e.g. 30s")
	numDays   = flag.Int("days", 4, "number of days to plan")
	asJSON    = flag.Bool("json", false, "print the plan as JSON")
)

func severalDaysPlan() error {
	engine, err := mpmodel.NewCBCEngine(*cbcPath)
	if err != nil {
		return err
	}
	params := mealplan.DefaultParams()
	params.NumDays = *numDays
	if *timeLimit != "" {
		if params.TimeLimit, err = time.ParseDuration(*timeLimit); err != nil {
			return fmt.Errorf("invalid time limit: %w", err)
		}
	}
	planner, err := mealplan.NewPlanner(engine, params)
	if err != nil {
		return err
	}

	meals := nutrition.SampleCatalog().Meals()
	dietary := mealplan.Dietary{
		nutrition.Kcal:    mealplan.Between(1800, 1800),
		nutrition.Protein: mealplan.AtLeast(100),
		nutrition.Fat:     mealplan.AtLeast(65),
	}
	// Aligned with the meals of the sample catalog.
	limits := []mealplan.UsageLimit{
		mealplan.MinUses(1),
		mealplan.MaxUses(1),
		mealplan.UsesBetween(2, 3),
		{}, {}, {}, {},
	}
	plan, err := planner.Plan(context.Background(), meals, dietary, limits)
	if err != nil {
		return fmt.Errorf("failed to plan meals: %w", err)
	}

	if *asJSON {
		report, err := plan.Report(meals)
		if err != nil {
			return err
		}
		b, err := protojson.MarshalOptions{Multiline: true}.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}

	fmt.Printf("Status: %v, objective: %v, %d attempts\n", plan.Info.Status, plan.Info.Objective, plan.Info.Attempts)
	prices := plan.DailyPrices(meals)
	for j, d := range plan.Days(meals) {
		fmt.Printf("Day %d (price %v, %.0f kcal):\n", j+1, prices[j], d.Value(nutrition.Kcal))
		for _, s := range d.Sorted(nutrition.Carbs) {
			fmt.Printf("  %6.2f x %s\n", s.Quantity, s.Meal.Name())
		}
	}
	counts := plan.UsageCounts()
	for i, m := range meals {
		fmt.Printf("%s: %d days\n", m.Name(), counts[i])
	}
	fmt.Printf("Total price: %v\n", plan.Info.TotalPrice)
	return nil
}

func main() {
	flag.Parse()
	if err := severalDaysPlan(); err != nil {
		log.Exitf("severalDaysPlan returned with error: %v", err)
	}
}
