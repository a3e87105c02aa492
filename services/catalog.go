package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/rBrgv/KRF-sub000/models"

	"gopkg.in/yaml.v3"
)

// SectionDef declares a section and its display name.
type SectionDef struct {
	ID    models.Section `yaml:"id"`
	Title string         `yaml:"title"`
}

// Definition is an externally authored questionnaire: sections, questions with
// their points tables, and recommendation rules.
type Definition struct {
	Sections  []SectionDef      `yaml:"sections"`
	Questions []models.Question `yaml:"questions"`
	Rules     []Rule            `yaml:"rules"`
}

// categoryTitles is the display name of each scoring category.
var categoryTitles = map[models.Category]string{
	models.CategoryPhysical:      "Physical Fitness",
	models.CategoryNutrition:     "Nutrition",
	models.CategoryLifestyle:     "Lifestyle",
	models.CategoryMental:        "Mental Wellbeing",
	models.CategoryPainMobility:  "Pain & Mobility",
	models.CategoryGoalReadiness: "Goal Readiness",
}

// Catalog is the immutable, ordered questionnaire. All accessors return copies.
type Catalog struct {
	sections      []SectionDef
	bySection     map[models.Section][]models.Question
	questionsByID map[string]models.Question
	ordered       []models.Question
	rules         []Rule
	totalRequired int
}

// NewCatalog validates a definition and builds a catalog from it.
func NewCatalog(def Definition) (*Catalog, error) {
	if len(def.Sections) == 0 {
		return nil, errors.New("questionnaire has no sections")
	}

	c := &Catalog{
		bySection:     make(map[models.Section][]models.Question),
		questionsByID: make(map[string]models.Question),
	}
	for _, s := range def.Sections {
		if _, dup := c.bySection[s.ID]; dup {
			return nil, fmt.Errorf("duplicate section %q", s.ID)
		}
		c.bySection[s.ID] = nil
		c.sections = append(c.sections, s)
	}

	weights := make(map[models.Category]float64)
	for _, q := range def.Questions {
		if err := validateQuestion(q); err != nil {
			return nil, err
		}
		if _, dup := c.questionsByID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if _, ok := c.bySection[q.Section]; !ok {
			return nil, fmt.Errorf("question %q belongs to undeclared section %q", q.ID, q.Section)
		}
		c.questionsByID[q.ID] = q
		c.bySection[q.Section] = append(c.bySection[q.Section], q)
		weights[q.Category] += q.Weight
		if q.Required {
			c.totalRequired++
		}
	}

	for _, s := range c.sections {
		if len(c.bySection[s.ID]) == 0 {
			return nil, fmt.Errorf("section %q has no questions", s.ID)
		}
		c.ordered = append(c.ordered, c.bySection[s.ID]...)
	}

	for _, cat := range models.Categories {
		if math.Abs(weights[cat]-models.CategoryMax[cat]) > 1e-9 {
			return nil, fmt.Errorf("category %q question weights sum to %g, want %g", cat, weights[cat], models.CategoryMax[cat])
		}
	}

	for _, r := range def.Rules {
		if r.Text == "" {
			return nil, fmt.Errorf("recommendation rule %q has no text", r.ID)
		}
		if r.When.Question != "" {
			if _, ok := c.questionsByID[r.When.Question]; !ok {
				return nil, fmt.Errorf("recommendation rule %q references unknown question %q", r.ID, r.When.Question)
			}
		}
	}
	c.rules = append([]Rule(nil), def.Rules...)

	return c, nil
}

func validateQuestion(q models.Question) error {
	if q.ID == "" {
		return errors.New("question with empty id")
	}
	if _, ok := models.CategoryMax[q.Category]; !ok {
		return fmt.Errorf("question %q has unknown category %q", q.ID, q.Category)
	}
	if q.Weight <= 0 {
		return fmt.Errorf("question %q must have a positive weight", q.ID)
	}
	switch q.Type {
	case models.QuestionTypeScale:
	case models.QuestionTypeChoice:
		if len(q.Choices) == 0 {
			return fmt.Errorf("choice question %q has no choices", q.ID)
		}
		seen := make(map[string]bool, len(q.Choices))
		for _, ch := range q.Choices {
			if seen[ch.Value] {
				return fmt.Errorf("question %q declares choice %q twice", q.ID, ch.Value)
			}
			seen[ch.Value] = true
			if ch.Points < 0 || ch.Points > q.Weight {
				return fmt.Errorf("question %q choice %q points %g outside [0, %g]", q.ID, ch.Value, ch.Points, q.Weight)
			}
		}
	case models.QuestionTypeNumeric:
		if q.Numeric == nil {
			return fmt.Errorf("numeric question %q has no scoring range", q.ID)
		}
		if q.Numeric.Ideal == q.Numeric.Zero {
			return fmt.Errorf("numeric question %q ideal and zero points must differ", q.ID)
		}
		if q.Min != nil && q.Max != nil && *q.Min > *q.Max {
			return fmt.Errorf("numeric question %q has min greater than max", q.ID)
		}
		switch q.Numeric.Direction {
		case models.HigherIsBetter:
			if q.Numeric.Ideal < q.Numeric.Zero {
				return fmt.Errorf("numeric question %q: higher_better needs ideal above zero point", q.ID)
			}
		case models.LowerIsBetter:
			if q.Numeric.Ideal > q.Numeric.Zero {
				return fmt.Errorf("numeric question %q: lower_better needs ideal below zero point", q.ID)
			}
		default:
			return fmt.Errorf("numeric question %q has unknown direction %q", q.ID, q.Numeric.Direction)
		}
	default:
		return fmt.Errorf("question %q has unknown type %q", q.ID, q.Type)
	}
	return nil
}

// LoadDefinitionFile reads a YAML questionnaire definition.
func LoadDefinitionFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read questionnaire %s: %w", path, err)
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("parse questionnaire %s: %w", path, err)
	}
	log.Printf("INFO: [Catalog] Loaded questionnaire from %s: %d sections, %d questions, %d rules.", path, len(def.Sections), len(def.Questions), len(def.Rules))
	return def, nil
}

// LoadCatalog builds the catalog from path, or from the built-in definition when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return NewCatalog(DefaultDefinition())
	}
	def, err := LoadDefinitionFile(path)
	if err != nil {
		return nil, err
	}
	return NewCatalog(def)
}

// Sections returns the sections in declaration order.
func (c *Catalog) Sections() []models.Section {
	out := make([]models.Section, len(c.sections))
	for i, s := range c.sections {
		out[i] = s.ID
	}
	return out
}

// SectionTitle is the single lookup for a section's display name.
func (c *Catalog) SectionTitle(s models.Section) string {
	for _, def := range c.sections {
		if def.ID == s && def.Title != "" {
			return def.Title
		}
	}
	return string(s)
}

// CategoryTitle returns the display name of a scoring category.
func CategoryTitle(cat models.Category) string {
	if t, ok := categoryTitles[cat]; ok {
		return t
	}
	return string(cat)
}

// QuestionsBySection returns the questions of a section in declaration order.
func (c *Catalog) QuestionsBySection(s models.Section) []models.Question {
	return append([]models.Question(nil), c.bySection[s]...)
}

// Questions returns every question in catalog order (section order, then in-section order).
func (c *Catalog) Questions() []models.Question {
	return append([]models.Question(nil), c.ordered...)
}

// Question looks up a question by id.
func (c *Catalog) Question(id string) (models.Question, bool) {
	q, ok := c.questionsByID[id]
	return q, ok
}

// TotalRequired counts the required questions.
func (c *Catalog) TotalRequired() int {
	return c.totalRequired
}

// Rules returns the recommendation rule table.
func (c *Catalog) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

func (c *Catalog) sectionLen(i int) int {
	if i < 0 || i >= len(c.sections) {
		return 0
	}
	return len(c.bySection[c.sections[i].ID])
}

func (c *Catalog) at(sectionIndex, questionIndex int) (models.Question, bool) {
	if sectionIndex < 0 || sectionIndex >= len(c.sections) {
		return models.Question{}, false
	}
	qs := c.bySection[c.sections[sectionIndex].ID]
	if questionIndex < 0 || questionIndex >= len(qs) {
		return models.Question{}, false
	}
	return qs[questionIndex], true
}
