package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxQuestionDuration is the exclusive upper bound of a question's duration.
const MaxQuestionDuration = 90 * time.Minute

// Category groups questions by the skill they assess.
type Category string

// Supported question categories
const (
	CategoryLanguage     Category = "language"
	CategoryProgramming  Category = "programming"
	CategoryCognitive    Category = "cognitive"
	CategoryPersonality  Category = "personality"
	CategorySituational  Category = "situational"
	CategoryRoleSpecific Category = "role_specific"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryLanguage, CategoryProgramming, CategoryCognitive,
		CategoryPersonality, CategorySituational, CategoryRoleSpecific:
		return true
	}
	return false
}

// Answer is one option of a checkbox question.
type Answer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Answers is stored as a JSONB column.
type Answers []Answer

// Value implements driver.Valuer.
func (a Answers) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *Answers) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("answers: unsupported source type %T", src)
	}
}

// Question is a checkbox-style assessment question.
type Question struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Duration    time.Duration `json:"duration"`
	Category    Category      `json:"category"`
	Answers     Answers       `json:"answers"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// QuestionDB represents a questions row.
type QuestionDB struct {
	ID              uuid.UUID `db:"id"`               // Primary key
	Title           string    `db:"title"`            // Unique title
	Slug            string    `db:"slug"`             // URL-friendly title
	Description     string    `db:"description"`      // Question body
	DurationSeconds int64     `db:"duration_seconds"` // Time allowed
	Category        string    `db:"category"`         // Category code
	Answers         Answers   `db:"answers"`          // JSONB answer set
	CreatedAt       time.Time `db:"created_at"`       // Creation timestamp
	UpdatedAt       time.Time `db:"updated_at"`       // Last update timestamp
}

// NewQuestionDB converts a question into its row form.
func NewQuestionDB(q *Question) QuestionDB {
	return QuestionDB{
		ID:              q.ID,
		Title:           q.Title,
		Slug:            q.Slug,
		Description:     q.Description,
		DurationSeconds: int64(q.Duration / time.Second),
		Category:        string(q.Category),
		Answers:         q.Answers,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

// ToQuestion converts the row into a question.
func (row QuestionDB) ToQuestion() *Question {
	return &Question{
		ID:          row.ID,
		Title:       row.Title,
		Slug:        row.Slug,
		Description: row.Description,
		Duration:    time.Duration(row.DurationSeconds) * time.Second,
		Category:    Category(row.Category),
		Answers:     row.Answers,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
