package llm

import (
	"reflect"
	"sort"
	"testing"
)

func sampleTool() ToolDefinition {
	return ToolDefinition{
		Name:        "submit_optimization",
		Description: "Submit the final optimized prompt.",
		Parameters: []ToolParameter{
			Param("optimized_prompt", "string", "The complete optimized prompt text"),
			Param("changes", "array", "List of changes made").Optional().WithItems(map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"category":    map[string]interface{}{"type": "string", "description": "Change category"},
					"description": map[string]interface{}{"type": "string", "description": "What changed"},
				},
			}),
			Param("confidence", "number", "Self-reported confidence").Optional(),
		},
	}
}

// requiredNames pulls the required list out of a projected schema object.
func requiredNames(t *testing.T, schema map[string]interface{}) []string {
	t.Helper()
	required, ok := schema["required"].([]string)
	if !ok {
		t.Fatalf("required is %T, want []string", schema["required"])
	}
	out := append([]string(nil), required...)
	sort.Strings(out)
	return out
}

func TestAnthropicSchemaProjection(t *testing.T) {
	tool := sampleTool()
	projected := tool.AnthropicSchema()

	if projected["name"] != tool.Name {
		t.Errorf("name = %v, want %s", projected["name"], tool.Name)
	}
	if projected["description"] != tool.Description {
		t.Errorf("description = %v, want %s", projected["description"], tool.Description)
	}

	schema, ok := projected["input_schema"].(map[string]interface{})
	if !ok {
		t.Fatal("input_schema missing")
	}
	if got := requiredNames(t, schema); !reflect.DeepEqual(got, []string{"optimized_prompt"}) {
		t.Errorf("required = %v, want [optimized_prompt]", got)
	}

	props := schema["properties"].(map[string]interface{})
	if len(props) != len(tool.Parameters) {
		t.Errorf("all parameters must appear in properties, got %d of %d", len(props), len(tool.Parameters))
	}
	for _, p := range tool.Parameters {
		prop, ok := props[p.Name].(map[string]interface{})
		if !ok {
			t.Fatalf("parameter %s missing from properties", p.Name)
		}
		if prop["type"] != p.Type {
			t.Errorf("%s type = %v, want %s", p.Name, prop["type"], p.Type)
		}
		if prop["description"] != p.Description {
			t.Errorf("%s description = %v, want %s", p.Name, prop["description"], p.Description)
		}
	}

	changes := props["changes"].(map[string]interface{})
	if _, ok := changes["items"].(map[string]interface{}); !ok {
		t.Error("nested items fragment should be carried through")
	}
}

func TestOpenAISchemaProjection(t *testing.T) {
	tool := sampleTool()
	projected := tool.OpenAISchema()

	if projected["type"] != "function" {
		t.Errorf("type = %v, want function", projected["type"])
	}
	fn, ok := projected["function"].(map[string]interface{})
	if !ok {
		t.Fatal("function wrapper missing")
	}
	if fn["name"] != tool.Name || fn["description"] != tool.Description {
		t.Errorf("function name/description = %v/%v", fn["name"], fn["description"])
	}

	schema := fn["parameters"].(map[string]interface{})
	if got := requiredNames(t, schema); !reflect.DeepEqual(got, []string{"optimized_prompt"}) {
		t.Errorf("required = %v, want [optimized_prompt]", got)
	}

	props := schema["properties"].(map[string]interface{})
	for _, p := range tool.Parameters {
		prop, ok := props[p.Name].(map[string]interface{})
		if !ok {
			t.Fatalf("parameter %s missing from properties", p.Name)
		}
		if prop["type"] != p.Type || prop["description"] != p.Description {
			t.Errorf("%s projected as %v", p.Name, prop)
		}
	}
}

// Both projections must agree on the schema object they wrap.
func TestProjectionsShareSchemaObject(t *testing.T) {
	tool := sampleTool()
	anthropicSchema := tool.AnthropicSchema()["input_schema"]
	openaiSchema := tool.OpenAISchema()["function"].(map[string]interface{})["parameters"]
	if !reflect.DeepEqual(anthropicSchema, openaiSchema) {
		t.Error("projections should wrap the same parameter schema")
	}
}

func TestParseProvider(t *testing.T) {
	valid := map[string]Provider{
		"anthropic":   ProviderAnthropic,
		"OpenRouter":  ProviderOpenRouter,
		" dashscope ": ProviderDashScope,
		"GEMINI":      ProviderGemini,
	}
	for in, want := range valid {
		got, err := ParseProvider(in)
		if err != nil || got != want {
			t.Errorf("ParseProvider(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	if _, err := ParseProvider("mistral"); err == nil {
		t.Error("unknown provider tag should be rejected")
	}
}
