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

// The single_day_plan command plans four meals of the sample catalog for one day.
//
// The CBC program and the time limit default to MEALOPT_CBC_PATH and MEALOPT_TIME_LIMIT,
// which may be set in a .env file.
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
	asJSON    = flag.Bool("json", false, "print the plan as JSON")
)

func singleDayPlan() error {
	engine, err := mpmodel.NewCBCEngine(*cbcPath)
	if err != nil {
		return err
	}
	params := mealplan.DefaultParams()
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
	plan, err := planner.Plan(context.Background(), meals, dietary, nil)
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

	fmt.Printf("Status: %v, objective: %v, price: %v\n", plan.Info.Status, plan.Info.Objective, plan.Info.TotalPrice)
	for _, s := range plan.Days(meals)[0].Sorted(nutrition.Carbs) {
		fmt.Printf("  %6.2f x %s\n", s.Quantity, s.Meal.Name())
	}
	day := plan.Days(meals)[0]
	for _, a := range nutrition.Macros() {
		fmt.Printf("Total %s: %.0f\n", a, day.Value(a))
	}
	return nil
}

func main() {
	flag.Parse()
	if err := singleDayPlan(); err != nil {
		log.Exitf("singleDayPlan returned with error: %v", err)
	}
}
