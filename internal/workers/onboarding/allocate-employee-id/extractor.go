// internal/workers/onboarding/allocate-employee-id/extractor.go
package allocateemployeeid

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DefaultCandidateFields are tried in order; the first usable one wins.
var DefaultCandidateFields = []string{
	"employee_id", "emp_id", "employee_no", "employee_number",
	"staff_id", "emp_no", "employeeId", "empId",
}

// IDExtractor finds the human-facing employee number in a raw HR record.
type IDExtractor interface {
	Extract(record map[string]interface{}) (string, bool)
}

// FieldExtractor returns the first candidate field that is set and differs from the record's "id".
type FieldExtractor struct {
	Fields []string
}

func NewFieldExtractor(fields ...string) *FieldExtractor {
	if len(fields) == 0 {
		fields = DefaultCandidateFields
	}
	return &FieldExtractor{Fields: fields}
}

func (e *FieldExtractor) Extract(record map[string]interface{}) (string, bool) {
	primary := stringify(record["id"])
	for _, field := range e.Fields {
		value, ok := record[field]
		if !ok || !truthy(value) {
			continue
		}
		candidate := stringify(value)
		if candidate == primary {
			continue
		}
		return candidate, true
	}
	return "", false
}

// NumericValue strips every non-digit and parses the rest.
func NumericValue(raw string) (int, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case json.Number:
		f, err := val.Float64()
		return err != nil || f != 0
	case float64:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	}
	return true
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}
