package models

import (
	"time"
)

// Section is a named group of questions presented together.
type Section string

const (
	SectionPhysical  Section = "physical"
	SectionPain      Section = "pain"
	SectionLifestyle Section = "lifestyle"
	SectionMental    Section = "mental"
	SectionGoal      Section = "goal"
)

// Category is a scoring dimension with a fixed point allocation.
// Category membership is a property of the question, not of its section.
type Category string

const (
	CategoryPhysical      Category = "physical"
	CategoryNutrition     Category = "nutrition"
	CategoryLifestyle     Category = "lifestyle"
	CategoryMental        Category = "mental"
	CategoryPainMobility  Category = "pain_mobility"
	CategoryGoalReadiness Category = "goal_readiness"
)

// Categories lists every scoring category in reporting order.
var Categories = []Category{
	CategoryPhysical,
	CategoryNutrition,
	CategoryLifestyle,
	CategoryMental,
	CategoryPainMobility,
	CategoryGoalReadiness,
}

// CategoryMax is the fixed upper bound of points per category. The values sum to 100.
var CategoryMax = map[Category]float64{
	CategoryPhysical:      25,
	CategoryNutrition:     15,
	CategoryLifestyle:     15,
	CategoryMental:        20,
	CategoryPainMobility:  10,
	CategoryGoalReadiness: 15,
}

// QuestionType defines how a question is answered and scored.
type QuestionType string

const (
	QuestionTypeScale   QuestionType = "scale"   // Integer 1-5, 5 is best
	QuestionTypeChoice  QuestionType = "choice"  // One of the declared choice values
	QuestionTypeNumeric QuestionType = "numeric" // Free number within [Min, Max]
)

// Choice is one selectable option of a choice question together with the points it earns.
type Choice struct {
	Value  string  `json:"value" yaml:"value"`
	Label  string  `json:"label" yaml:"label"`
	Points float64 `json:"-" yaml:"points"`
}

// NumericDirection says whether larger numeric answers are healthier.
type NumericDirection string

const (
	HigherIsBetter NumericDirection = "higher_better"
	LowerIsBetter  NumericDirection = "lower_better"
)

// NumericScoring describes the ideal range of a numeric question.
// At Ideal (or beyond it, in the healthy direction) the question earns its full weight;
// at Zero (or beyond it, in the unhealthy direction) it earns nothing; in between it is linear.
type NumericScoring struct {
	Direction NumericDirection `json:"-" yaml:"direction"`
	Ideal     float64          `json:"-" yaml:"ideal"`
	Zero      float64          `json:"-" yaml:"zero"`
}

// Question defines a single item of the health questionnaire.
type Question struct {
	ID       string          `json:"id" yaml:"id"`
	Section  Section         `json:"section" yaml:"section"`
	Category Category        `json:"category" yaml:"category"`
	Type     QuestionType    `json:"type" yaml:"type"`
	Text     string          `json:"text" yaml:"text"`
	Required bool            `json:"required" yaml:"required"`
	Weight   float64         `json:"-" yaml:"weight"` // Maximum points this question contributes to its category
	Choices  []Choice        `json:"choices,omitempty" yaml:"choices,omitempty"`
	Min      *float64        `json:"min,omitempty" yaml:"min,omitempty"`
	Max      *float64        `json:"max,omitempty" yaml:"max,omitempty"`
	Unit     string          `json:"unit,omitempty" yaml:"unit,omitempty"`
	Numeric  *NumericScoring `json:"-" yaml:"numeric,omitempty"`
}

// Choice returns the declared choice with the given value.
func (q Question) Choice(value string) (Choice, bool) {
	for _, c := range q.Choices {
		if c.Value == value {
			return c, true
		}
	}
	return Choice{}, false
}

// LeadInfo is the prospect's contact information collected before results are shown.
type LeadInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// CategoryScore is the points earned in one category. 0 <= Value <= Max always holds.
type CategoryScore struct {
	Category Category `json:"category"`
	Value    float64  `json:"value"`
	Max      float64  `json:"max"`
}

// Ratio returns Value/Max, or 0 for a category without points.
func (s CategoryScore) Ratio() float64 {
	if s.Max <= 0 {
		return 0
	}
	return s.Value / s.Max
}

// Scores holds the overall score and its per-category breakdown.
type Scores struct {
	Overall    float64         `json:"overall"`
	Categories []CategoryScore `json:"categories"`
}

// Category returns the score of a single category.
func (s Scores) Category(c Category) (CategoryScore, bool) {
	for _, cs := range s.Categories {
		if cs.Category == c {
			return cs, true
		}
	}
	return CategoryScore{}, false
}

// HealthLabel is the ordinal classification of an overall score.
type HealthLabel string

const (
	LabelExcellent HealthLabel = "excellent"
	LabelGood      HealthLabel = "good"
	LabelWarning   HealthLabel = "warning"
	LabelHighAlert HealthLabel = "high_alert"
)

// Rank orders labels from worst (0) to best (3). Unknown labels rank below high_alert.
func (l HealthLabel) Rank() int {
	switch l {
	case LabelExcellent:
		return 3
	case LabelGood:
		return 2
	case LabelWarning:
		return 1
	case LabelHighAlert:
		return 0
	}
	return -1
}

// AssessmentResult is computed once per successful submission and never mutated.
type AssessmentResult struct {
	Scores          Scores      `json:"scores"`
	Category        HealthLabel `json:"category"`
	Recommendations []string    `json:"recommendations"`
}

// Lead is a prospective client captured by the assessment funnel.
type Lead struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone" gorm:"uniqueIndex;size:32"`
	Email     string    `json:"email,omitempty"`
	Source    string    `json:"source"` // Where the lead came from, e.g. "health_assessment"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Lead model.
func (Lead) TableName() string {
	return "leads"
}

// Assessment is a stored health assessment submission.
type Assessment struct {
	ID              string      `json:"id" gorm:"primaryKey;size:36"`
	LeadID          string      `json:"lead_id" gorm:"index;size:36"`
	Lead            *Lead       `json:"lead,omitempty" gorm:"foreignKey:LeadID"`
	Answers         Answers     `json:"answers" gorm:"serializer:json"`
	Scores          Scores      `json:"scores" gorm:"serializer:json"`
	OverallScore    float64     `json:"overall_score" gorm:"index"` // Denormalized for dashboard sorting
	Category        HealthLabel `json:"category" gorm:"index;size:16"`
	Recommendations []string    `json:"recommendations" gorm:"serializer:json"`
	CreatedAt       time.Time   `json:"created_at"`
}

// TableName specifies the table name for Assessment model.
func (Assessment) TableName() string {
	return "assessments"
}

// Result rebuilds the AssessmentResult stored on the record.
func (a Assessment) Result() AssessmentResult {
	return AssessmentResult{
		Scores:          a.Scores,
		Category:        a.Category,
		Recommendations: a.Recommendations,
	}
}
