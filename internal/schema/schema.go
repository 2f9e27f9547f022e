// Package schema declares the JSON shapes the language-model provider must
// return and validates provider output against them before any typed data
// leaves the generation boundary.
package schema

import (
	"github.com/chef4u/backend/internal/types"
)

// Type names follow the provider's structured-output convention, so a Schema
// marshals verbatim into the request's response_schema field.
const (
	TypeString  = "STRING"
	TypeNumber  = "NUMBER"
	TypeBoolean = "BOOLEAN"
	TypeObject  = "OBJECT"
	TypeArray   = "ARRAY"
)

// Schema is a declarative description of a JSON value: its type, its fields
// (for objects), its element shape (for arrays), and any enum constraint.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Recipes is the array-of-recipe shape requested from the provider.
// Calories is the only optional field.
func Recipes() *Schema {
	return &Schema{
		Type: TypeArray,
		Items: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"title":       {Type: TypeString},
				"description": {Type: TypeString},
				"time":        {Type: TypeString, Description: "Estimated time, e.g. '15 min'"},
				"difficulty":  {Type: TypeString, Enum: types.Difficulties()},
				"ingredients": {Type: TypeArray, Items: &Schema{Type: TypeString}},
				"steps":       {Type: TypeArray, Items: &Schema{Type: TypeString}},
				"calories":    {Type: TypeString, Description: "Estimated calories per serving"},
			},
			Required: []string{"title", "description", "time", "difficulty", "ingredients", "steps"},
		},
	}
}

// Ingredients is the shape for photo-based ingredient identification: a flat
// array of ingredient names.
func Ingredients() *Schema {
	return &Schema{
		Type:  TypeArray,
		Items: &Schema{Type: TypeString, Description: "Ingredient name, singular, no quantities"},
	}
}

// NutritionPlan is the object shape for plan generation. The menu must carry
// exactly three day entries; the count is enforced by the gateway because
// array length is outside what the declarative schema expresses.
func NutritionPlan() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"summary":         {Type: TypeString},
			"recommendations": {Type: TypeArray, Items: &Schema{Type: TypeString}},
			"menu": {
				Type: TypeArray,
				Items: &Schema{
					Type: TypeObject,
					Properties: map[string]*Schema{
						"day":       {Type: TypeString},
						"breakfast": {Type: TypeString},
						"lunch":     {Type: TypeString},
						"dinner":    {Type: TypeString},
					},
					Required: []string{"day", "breakfast", "lunch", "dinner"},
				},
			},
		},
		Required: []string{"summary", "recommendations", "menu"},
	}
}

// Product is the single-object shape for a price search. The found flag is
// the discriminator for the legitimate "no such product" outcome: when it is
// false the remaining fields are not required.
func Product() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"found":    {Type: TypeBoolean},
			"name":     {Type: TypeString},
			"category": {Type: TypeString},
			"image":    {Type: TypeString, Description: "A single emoji representing the product"},
			"prices": {
				Type: TypeArray,
				Items: &Schema{
					Type: TypeObject,
					Properties: map[string]*Schema{
						"supermarket": {Type: TypeString},
						"price":       {Type: TypeNumber, Description: "Price in EUR"},
						"logo":        {Type: TypeString, Description: "A single emoji for the retailer"},
					},
					Required: []string{"supermarket", "price"},
				},
			},
		},
		Required: []string{"found"},
	}
}
