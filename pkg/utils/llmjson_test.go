package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLLMJSON(t *testing.T) {
	type out struct {
		Name string   `json:"name"`
		Tags []string `json:"tags"`
	}

	tests := []struct {
		name  string
		input string
		want  out
	}{
		{"plain", `{"name":"home","tags":["ui"]}`, out{"home", []string{"ui"}}},
		{"fenced", "```json\n{\"name\":\"home\",\"tags\":[]}\n```", out{"home", []string{}}},
		{"fenced upper", "```JSON\n{\"name\":\"a\"}\n```", out{Name: "a"}},
		{"surrounding text", "Sure! {\"name\":\"cart-add\",\"tags\":[\"shop\"]} hope it helps", out{"cart-add", []string{"shop"}}},
		{"brace in string", `{"name":"a}b","tags":["{x}"]}`, out{"a}b", []string{"{x}"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got out
			require.NoError(t, DecodeLLMJSON(tt.input, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeLLMJSON_Errors(t *testing.T) {
	var v map[string]any
	assert.Error(t, DecodeLLMJSON("no json here", &v))
	assert.Error(t, DecodeLLMJSON(`{"name": `, &v))
}
