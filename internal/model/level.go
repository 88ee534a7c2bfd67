package model

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// LevelConstraint is the static per-level configuration bounding how many
// collectibles of each type exist. Seeded once, read-only at runtime.
type LevelConstraint struct {
	LevelID       int        `json:"levelId" bson:"levelId"`
	Name          string     `json:"name" bson:"name"`
	MaxPrimary    int        `json:"maxPrimary" bson:"maxPrimary"`
	MaxSecondary  int        `json:"maxSecondary" bson:"maxSecondary"`
	TotalElements int        `json:"totalElements" bson:"totalElements"`
	Difficulty    Difficulty `json:"difficulty" bson:"difficulty"`
}

// MaxFor returns the collection limit for the given item type.
func (c *LevelConstraint) MaxFor(t ItemType) int {
	if t == ItemSecondary {
		return c.MaxSecondary
	}
	return c.MaxPrimary
}
