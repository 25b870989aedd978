package service

// Schema types understood by every provider
const (
	TypeString = "string"
	TypeArray  = "array"
	TypeObject = "object"
)

// Schema is a provider-neutral description of the JSON the model must emit.
// Each provider translates it to its own schema dialect.
type Schema struct {
	Type        string
	Description string
	Items       *Schema
	Properties  map[string]*Schema
	// PropertyOrder fixes the order properties are presented in
	PropertyOrder []string
	Required      []string
}

// JSONSchema renders the schema as a JSON Schema document. Objects are
// closed (additionalProperties false) so strict structured output accepts them.
func (s *Schema) JSONSchema() map[string]any {
	if s == nil {
		return nil
	}
	out := map[string]any{"type": s.Type}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	if s.Type == TypeObject {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = prop.JSONSchema()
		}
		out["properties"] = props
		out["additionalProperties"] = false
		if len(s.Required) > 0 {
			out["required"] = append([]string(nil), s.Required...)
		}
	}
	return out
}

var recipeFields = []string{"recipeName", "description", "ingredients", "instructions", "imageDescription"}

// RecipeListSchema is the shape of a recipe-generation response: an array of
// recipes without image references
var RecipeListSchema = &Schema{
	Type: TypeArray,
	Items: &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"recipeName": {Type: TypeString, Description: "The name of the recipe."},
			"description": {Type: TypeString, Description: "A brief, appetizing description of the dish."},
			"ingredients": {
				Type:        TypeArray,
				Items:       &Schema{Type: TypeString},
				Description: "A list of all ingredients required for the recipe.",
			},
			"instructions": {
				Type:        TypeArray,
				Items:       &Schema{Type: TypeString},
				Description: "Step-by-step cooking instructions.",
			},
			"imageDescription": {
				Type:        TypeString,
				Description: `A short, descriptive prompt for an image generator to create a picture of the final dish. Example: "A steaming bowl of chicken noodle soup with fresh parsley."`,
			},
		},
		PropertyOrder: recipeFields,
		Required:      recipeFields,
	},
}
