package domain

import "time"

// CatalogExercise is a library exercise a Work Out entry must resolve to.
// The document ID is the normalized name (textnorm.ID), matching how the
// catalog was bulk-loaded historically.
type CatalogExercise struct {
	ID              string    `bson:"_id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	MuscleGroup     string    `bson:"muscle_group,omitempty" json:"muscleGroup,omitempty"`
	MovementPattern string    `bson:"movement_pattern,omitempty" json:"movementPattern,omitempty"`
	ImplementID     string    `bson:"implement_id,omitempty" json:"implementId,omitempty"`
	VideoURL        string    `bson:"video_url,omitempty" json:"videoUrl,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Implement is a piece of equipment with a fixed set of available weights
// (plates, stacks, dumbbell racks). Entries whose exercise is tied to an
// implement prescribe weight from this set rather than free-form kilos.
type Implement struct {
	ID      string    `bson:"_id" json:"id"`
	Name    string    `bson:"name" json:"name"`
	Weights []float64 `bson:"weights" json:"weights"`
}

// FreeWeightImplementID marks exercises whose weight is typed freely rather
// than picked from an implement's weight set.
const FreeWeightImplementID = "1"
