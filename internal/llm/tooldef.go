package llm

// ToolParameter describes one named parameter of a tool. Type is a JSON
// schema primitive ("string", "array", "object", "number", "boolean").
// Items and Properties carry nested schema fragments for array and object
// parameters.
type ToolParameter struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Items       map[string]interface{}
	Properties  map[string]interface{}
}

// Param builds a required parameter; use Optional for the rest.
func Param(name, typ, description string) ToolParameter {
	return ToolParameter{Name: name, Type: typ, Description: description, Required: true}
}

// Optional marks the parameter as not required.
func (p ToolParameter) Optional() ToolParameter {
	p.Required = false
	return p
}

// WithItems attaches an array item schema fragment.
func (p ToolParameter) WithItems(items map[string]interface{}) ToolParameter {
	p.Items = items
	return p
}

// ToolDefinition is the provider-agnostic description of one callable tool.
// Definitions are constructed once at startup and shared read-only across
// adapters.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  []ToolParameter
}

func (t ToolDefinition) schemaObject() map[string]interface{} {
	properties := map[string]interface{}{}
	required := []string{}

	for _, p := range t.Parameters {
		prop := map[string]interface{}{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Items != nil {
			prop["items"] = p.Items
		}
		if p.Properties != nil {
			prop["properties"] = p.Properties
		}
		properties[p.Name] = prop

		if p.Required {
			required = append(required, p.Name)
		}
	}

	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// AnthropicSchema projects the definition into Anthropic's tool shape with
// an input_schema object.
func (t ToolDefinition) AnthropicSchema() map[string]interface{} {
	return map[string]interface{}{
		"name":         t.Name,
		"description":  t.Description,
		"input_schema": t.schemaObject(),
	}
}

// OpenAISchema projects the definition into the OpenAI function-calling
// shape shared by every OpenAI-compatible endpoint.
func (t ToolDefinition) OpenAISchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "function",
		"function": map[string]interface{}{
			"name":        t.Name,
			"description": t.Description,
			"parameters":  t.schemaObject(),
		},
	}
}
