package schema

import "github.com/buker/go-graphql/internal/records"

// optional turns an absent record field into a GraphQL null.
func optional(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// intArg returns 0 when the argument is absent or null.
func intArg(args map[string]interface{}, name string) int {
	v, _ := args[name].(int)
	return v
}

func stringArg(args map[string]interface{}, name string) string {
	v, _ := args[name].(string)
	return v
}

func stringField(fields map[string]interface{}, name string) *string {
	v, ok := fields[name].(string)
	if !ok {
		return nil
	}
	return &v
}

// inputArg reads the optional MessageInput argument. A missing input clears
// both fields.
func inputArg(args map[string]interface{}) records.Input {
	fields, _ := args["input"].(map[string]interface{})
	return records.Input{
		Content: stringField(fields, "content"),
		Author:  stringField(fields, "author"),
	}
}
