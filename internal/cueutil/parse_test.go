// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

var testSchema = []byte(`
#Entry: {
	name!:        string & !=""
	count:        int & >=0
	description?: string
	...
}
`)

type testEntry struct {
	Name        string `json:"name"`
	Count       int    `json:"count"`
	Description string `json:"description,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	t.Run("valid JSON decodes", func(t *testing.T) {
		t.Parallel()

		result, err := ParseAndDecode[testEntry](testSchema, []byte(`{"name":"x","count":3,"extra":true}`), "#Entry")
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}
		if result.Name != "x" || result.Count != 3 {
			t.Errorf("unexpected value %+v", *result)
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		t.Parallel()

		_, err := ParseAndDecode[testEntry](testSchema, []byte(`{"count":3}`), "#Entry", WithFilename("entry.json"))
		if err == nil {
			t.Fatal("expected error for missing name")
		}
		if !strings.Contains(err.Error(), "entry.json") {
			t.Errorf("error should name the file, got %v", err)
		}
	})

	t.Run("constraint violation", func(t *testing.T) {
		t.Parallel()

		_, err := ParseAndDecode[testEntry](testSchema, []byte(`{"name":"x","count":-1}`), "#Entry")
		if err == nil {
			t.Fatal("expected error for negative count")
		}
		if !strings.Contains(err.Error(), "count") {
			t.Errorf("error should mention the field path, got %v", err)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseAndDecode[testEntry](testSchema, []byte(`{"name": "x",`), "#Entry"); err == nil {
			t.Fatal("expected syntax error")
		}
	})

	t.Run("size limit", func(t *testing.T) {
		t.Parallel()

		_, err := ParseAndDecode[testEntry](testSchema, []byte(`{"name":"x","count":1}`), "#Entry", WithMaxFileSize(4))
		if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
			t.Fatalf("expected size error, got %v", err)
		}
	})

	t.Run("unknown definition", func(t *testing.T) {
		t.Parallel()

		_, err := ParseAndDecode[testEntry](testSchema, []byte(`{"name":"x","count":1}`), "#Missing")
		if err == nil || !strings.Contains(err.Error(), "#Missing") {
			t.Fatalf("expected internal error naming the definition, got %v", err)
		}
	})
}
