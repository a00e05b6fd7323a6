package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalFlexDirect(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	require.NoError(t, UnmarshalFlex([]byte(`{"name":"a.dmg"}`), &v))
	assert.Equal(t, "a.dmg", v.Name)
}

func TestUnmarshalFlexQuotedPayload(t *testing.T) {
	// Some model responses arrive as a JSON string containing JSON.
	raw := []byte(`"{\"name\":\"installer (1).pkg\"}"`)
	var v struct {
		Name string `json:"name"`
	}
	require.NoError(t, UnmarshalFlex(raw, &v))
	assert.Equal(t, "installer (1).pkg", v.Name)
}

func TestUnmarshalFlexRejectsGarbage(t *testing.T) {
	var v map[string]any
	assert.Error(t, UnmarshalFlex([]byte("I cannot answer that."), &v))
}

func TestMarshalNoEscapeKeepsAngleBrackets(t *testing.T) {
	out, err := MarshalNoEscape(map[string]string{"k": "<old & unused>"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<old & unused>")
}
