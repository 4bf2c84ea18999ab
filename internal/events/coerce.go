package events

import "time"

// SchemaLoadStart is emitted before an SDL schema is parsed and built.
type SchemaLoadStart struct {
	Source string
}

// SchemaLoadFinish is emitted after the schema is built or rejected.
type SchemaLoadFinish struct {
	Source   string
	Types    int
	Err      error
	Duration time.Duration
}

// CoercionStart is emitted before an input is coerced or substituted.
// Input names the input form: "value", "value-file" or "literal".
type CoercionStart struct {
	Command string
	Type    string
	Input   string
}

// CoercionFinish is emitted after coercion. ErrorKinds lists the kind of
// every collected error; Err is set for failures that are not data errors.
type CoercionFinish struct {
	Command    string
	Type       string
	ErrorKinds []string
	Err        error
	Duration   time.Duration
}
