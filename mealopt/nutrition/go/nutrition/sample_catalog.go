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

package nutrition

import (
	log "github.com/golang/glog"
)

type sampleFood struct {
	name            string
	nutrients       Nutrients
	pricePerProduct float64
	gramsPerProduct float64
}

// Norwegian grocery items; prices in NOK.
var sampleFoods = []sampleFood{
	{"bacon", Nutrients{Protein: 14, Fat: 32, Carbs: 1, Kcal: 350}, 50.9, 400},
	{"burger", Nutrients{Protein: 15, Fat: 18, Carbs: 2, Kcal: 230}, 87.3, 800},
	{"coop bratwurst", Nutrients{Protein: 12, Fat: 20, Carbs: 5.2, Kcal: 253}, 25.9, 240},
	{"cottage cheese", Nutrients{Protein: 13, Fat: 2, Carbs: 2.1, Kcal: 79}, 24.4, 400},
	{"egg", Nutrients{Protein: 13, Fat: 10.6, Carbs: 0.3, Kcal: 149}, 32.9, 690},
	{"frossen kyllingfilet", Nutrients{Protein: 19, Fat: 1.8, Carbs: 0.3, Kcal: 94}, 260, 2500},
	{"grovt brød", Nutrients{Protein: 11, Fat: 4.8, Carbs: 36, Kcal: 245}, 39.5, 750},
	{"gulost", Nutrients{Protein: 27, Fat: 27, Carbs: 0, Kcal: 351}, 110, 1000},
	{"jasmin ris", Nutrients{Protein: 2.7, Fat: 0.1, Carbs: 31.1, Kcal: 136}, 45.8, 1000},
	{"kjøttdeig", Nutrients{Protein: 19, Fat: 9, Carbs: 0, Kcal: 157}, 32.5, 400},
	{"lettmelk", Nutrients{Protein: 3.5, Fat: 0.5, Carbs: 4.5, Kcal: 37}, 16.4, 1000},
	{"melkesjokolade", Nutrients{Protein: 8.1, Fat: 33, Carbs: 55, Kcal: 550}, 38.6, 200},
	{"musli", Nutrients{Protein: 9, Fat: 4.8, Carbs: 63, Kcal: 351}, 23.1, 750},
	{"PF whey", Nutrients{Protein: 71.8, Fat: 8.1, Carbs: 7.9, Kcal: 377}, 599, 3000},
	{"svinekotelett dypfryst", Nutrients{Protein: 20, Fat: 18, Carbs: 0, Kcal: 243}, 98.6, 2000},
	{"sweet and sour sauce", Nutrients{Protein: 0.4, Fat: 0.2, Carbs: 16.4, Kcal: 71}, 35, 675},
	{"coop sweet and sour", Nutrients{Protein: 0.6, Fat: 0.1, Carbs: 20, Kcal: 85}, 14.9, 500},
	{"nøtti frutti", Nutrients{Protein: 13, Fat: 26, Carbs: 47, Kcal: 464}, 39.7, 350},
	{"xtra jasminris", Nutrients{Protein: 7.5, Fat: 0.8, Carbs: 75, Kcal: 343}, 37.4, 5000},
	{"currypaste", Nutrients{Protein: 3.9, Fat: 22.3, Carbs: 5.6, Kcal: 262}, 33.2, 165},
	{"kokosmelk", Nutrients{Protein: 1.5, Fat: 17, Carbs: 2.4, Kcal: 169}, 13.3, 400},
	{"hakkede tomater", Nutrients{Protein: 1, Fat: 0, Carbs: 6.8, Kcal: 34}, 7.1, 400},
	{"tomatbønner", Nutrients{Protein: 3.8, Fat: 0.6, Carbs: 14, Kcal: 83}, 11.8, 420},
	{"yoghurt", Nutrients{Protein: 3.7, Fat: 3.1, Carbs: 10.5, Kcal: 84}, 17, 600},
}

type sampleMeal struct {
	name       string
	foods      []string
	grams      []float64
	continuous bool
}

var sampleMeals = []sampleMeal{
	{"mixed nuts", []string{"nøtti frutti"}, []float64{10}, true},
	{"yogurt w/ muesli", []string{"yoghurt", "musli"}, []float64{150, 40}, false},
	{"chicken w/ sweet&sour", []string{"frossen kyllingfilet", "coop sweet and sour", "jasmin ris"}, []float64{40.7, 11.5, 47.8}, true},
	{"hamburger", []string{"grovt brød", "burger"}, []float64{40, 80}, false},
	{"egg", []string{"egg"}, []float64{70}, false},
	{"scoop protein shake", []string{"PF whey", "lettmelk"}, []float64{25, 150}, true},
	{"yogurt w/ ct.cheese", []string{"yoghurt", "cottage cheese"}, []float64{150, 100}, false},
}

// SampleCatalog returns a new catalog holding 24 grocery foods and 7 meals made of them.
func SampleCatalog() *Catalog {
	c := NewCatalog()
	for _, sf := range sampleFoods {
		f, err := NewFood(sf.name, sf.nutrients, sf.pricePerProduct, sf.gramsPerProduct)
		if err != nil {
			log.Fatalf("sample food: %v", err)
		}
		if err := c.AddFood(f); err != nil {
			log.Fatalf("sample food: %v", err)
		}
	}
	for _, sm := range sampleMeals {
		portions := make([]Portion, len(sm.foods))
		for i, name := range sm.foods {
			f, ok := c.Food(name)
			if !ok {
				log.Fatalf("sample meal %q uses unknown food %q", sm.name, name)
			}
			portions[i] = Portion{Food: f, Grams: sm.grams[i]}
		}
		var opts []MealOption
		if sm.continuous {
			opts = append(opts, Continuous())
		}
		m, err := NewMeal(sm.name, portions, opts...)
		if err != nil {
			log.Fatalf("sample meal: %v", err)
		}
		if err := c.AddMeal(m); err != nil {
			log.Fatalf("sample meal: %v", err)
		}
	}
	return c
}
