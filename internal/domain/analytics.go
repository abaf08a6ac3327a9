package domain

// ─── Derived aggregates ─────────────────────────────────────────────────────
// These shapes are serialized directly into API responses, so percentage
// fields must be finite: division by zero short-circuits to 0.

// CategoryBreakdown summarizes one category inside an aggregate.
type CategoryBreakdown struct {
	Minutes    int     `json:"minutes"`
	Count      int     `json:"count"`
	Score      float64 `json:"score"`
	Percentage float64 `json:"percentage"` // share of total minutes, 0 when total is 0
}

// Aggregate sums scores and durations over a half-open [from, to) UTC window.
type Aggregate struct {
	TotalScore    float64                        `json:"total_score"`
	TotalMinutes  int                            `json:"total_minutes"`
	ActivityCount int                            `json:"activity_count"`
	ByCategory    map[Category]CategoryBreakdown `json:"category_breakdown"`
}

// HeatmapCell is one (weekday, hour) bucket of activity density.
type HeatmapCell struct {
	Weekday   int     `json:"weekday"` // 0 = Monday .. 6 = Sunday, local
	Hour      int     `json:"hour"`    // 0..23, local
	Count     int     `json:"count"`
	Intensity float64 `json:"intensity"` // count / max bucket count, clamped [0,1]
}

// Heatmap is the full (weekday, hour) activity density grid.
type Heatmap struct {
	Cells   []HeatmapCell `json:"cells"`
	HasData bool          `json:"has_data"`
}

// TrendPoint is one local calendar day in a score series.
type TrendPoint struct {
	Date          string  `json:"date"` // YYYY-MM-DD, local
	Score         float64 `json:"score"`
	Minutes       int     `json:"minutes"`
	ActivityCount int     `json:"activity_count"`
}

// Trend is a per-day score series over a trailing range.
type Trend struct {
	Points  []TrendPoint `json:"points"`
	HasData bool         `json:"has_data"`
}

// WeeklyRecap summarizes the previous ISO week.
type WeeklyRecap struct {
	WeekStart     string    `json:"week_start"` // YYYY-MM-DD, local Monday
	TotalScore    float64   `json:"total_score"`
	TotalMinutes  int       `json:"total_minutes"`
	ActivityCount int       `json:"activity_count"`
	TopCategory   Category  `json:"top_category,omitempty"`
	BusiestDay    string    `json:"busiest_day,omitempty"` // YYYY-MM-DD
	HasData       bool      `json:"has_data"`
}
