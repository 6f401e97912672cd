package agent

// Validate checks a tool invocation's arguments against the tool's JSON
// schema: required parameters must be present and type-compatible, and
// unknown parameter names are rejected. A nil return means the
// invocation may be dispatched.
func Validate(tool Tool, params map[string]interface{}) *ValidationError {
	schema := tool.Parameters()

	properties, _ := schema["properties"].(map[string]interface{})

	for _, name := range requiredNames(schema) {
		if _, present := params[name]; !present {
			return &ValidationError{Tool: tool.Name(), Field: name, Reason: "is required"}
		}
	}

	for name, value := range params {
		propRaw, known := properties[name]
		if !known {
			return &ValidationError{Tool: tool.Name(), Field: name, Reason: "is not a known parameter"}
		}

		prop, _ := propRaw.(map[string]interface{})
		wantType, _ := prop["type"].(string)
		if wantType == "" {
			continue
		}

		if !typeCompatible(wantType, value) {
			return &ValidationError{Tool: tool.Name(), Field: name, Reason: "has incompatible type, expected " + wantType}
		}
	}

	return nil
}

// requiredNames tolerates both []string (schemas built in Go) and
// []interface{} (schemas decoded from JSON).
func requiredNames(schema map[string]interface{}) []string {
	switch req := schema["required"].(type) {
	case []string:
		return req
	case []interface{}:
		names := make([]string, 0, len(req))
		for _, r := range req {
			if name, ok := r.(string); ok {
				names = append(names, name)
			}
		}
		return names
	default:
		return nil
	}
}

// typeCompatible checks a decoded JSON value against a schema type.
// JSON numbers decode as float64, so "integer" accepts integral floats.
func typeCompatible(schemaType string, value interface{}) bool {
	switch schemaType {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		switch value.(type) {
		case float64, float32, int, int64:
			return true
		}
		return false
	case "integer":
		switch v := value.(type) {
		case int, int64:
			return true
		case float64:
			return v == float64(int64(v))
		}
		return false
	case "boolean":
		_, ok := value.(bool)
		return ok
	default:
		return true
	}
}
