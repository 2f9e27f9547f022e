package types

// Difficulty is the effort rating attached to every generated recipe.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists every valid difficulty value.
func Difficulties() []string {
	return []string{string(DifficultyEasy), string(DifficultyMedium), string(DifficultyHard)}
}

// Recipe represents a generated recipe. Recipes are produced only by the
// generation gateway and never mutated afterward; the ID is assigned
// client-side at receipt time, never taken from the provider.
type Recipe struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Ingredients []string   `json:"ingredients"`
	Steps       []string   `json:"steps"`
	Time        string     `json:"time"`
	Difficulty  Difficulty `json:"difficulty"`
	Calories    string     `json:"calories,omitempty"`
}

// ChatRole tags a turn in the assistant conversation.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatTurn is one entry in the conversation log. The ordered log is the only
// session state: it is replayed to the provider on every new turn.
type ChatTurn struct {
	ID      string   `json:"id"`
	Role    ChatRole `json:"role"`
	Text    string   `json:"text"`
	IsError bool     `json:"is_error,omitempty"`
}

// NutritionGoal is the user's stated objective for a nutrition plan.
type NutritionGoal string

const (
	GoalLoseWeight NutritionGoal = "LoseWeight"
	GoalGainMuscle NutritionGoal = "GainMuscle"
	GoalMaintain   NutritionGoal = "Maintain"
)

// NutritionPace is how aggressively the plan should pursue the goal.
type NutritionPace string

const (
	PaceSlow     NutritionPace = "Slow"
	PaceModerate NutritionPace = "Moderate"
	PaceFast     NutritionPace = "Fast"
)

// ParseNutritionGoal validates a goal value from user input.
func ParseNutritionGoal(s string) (NutritionGoal, bool) {
	switch NutritionGoal(s) {
	case GoalLoseWeight, GoalGainMuscle, GoalMaintain:
		return NutritionGoal(s), true
	}
	return "", false
}

// ParseNutritionPace validates a pace value from user input.
func ParseNutritionPace(s string) (NutritionPace, bool) {
	switch NutritionPace(s) {
	case PaceSlow, PaceModerate, PaceFast:
		return NutritionPace(s), true
	}
	return "", false
}

// NutritionProfile is the user-supplied input for plan generation. All three
// numeric fields are required; they stay strings because they come straight
// from form fields and are only ever embedded into a prompt.
type NutritionProfile struct {
	Age    string        `json:"age"`
	Weight string        `json:"weight"`
	Height string        `json:"height"`
	Goal   NutritionGoal `json:"goal"`
	Pace   NutritionPace `json:"pace"`
}

// DayMenu is one day of a nutrition plan.
type DayMenu struct {
	Day       string `json:"day"`
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// NutritionPlan is produced wholesale by one generation call and treated as
// immutable once received. Menu always holds exactly three entries.
type NutritionPlan struct {
	Summary         string    `json:"summary"`
	Recommendations []string  `json:"recommendations"`
	Menu            []DayMenu `json:"menu"`
}

// ProductPrice is one retailer's price estimate for a product.
type ProductPrice struct {
	Supermarket string  `json:"supermarket"`
	Price       float64 `json:"price"`
	Logo        string  `json:"logo"`
}

// Product is a price-comparison entry, either seeded from the mock catalog
// or produced by generation.
type Product struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Image    string         `json:"image"`
	Prices   []ProductPrice `json:"prices"`
}

// Cheapest returns the lowest-priced quote. The cheapest entry is always
// derived, never stored.
func (p *Product) Cheapest() (ProductPrice, bool) {
	if len(p.Prices) == 0 {
		return ProductPrice{}, false
	}
	best := p.Prices[0]
	for _, q := range p.Prices[1:] {
		if q.Price < best.Price {
			best = q
		}
	}
	return best, true
}
