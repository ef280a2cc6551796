package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scored struct {
	Name  string `json:"name"`
	Score int    `json:"importance_score"`
}

func TestUnmarshal_PlainJSON(t *testing.T) {
	var out []scored
	err := Unmarshal(`[{"name":"Wedding","importance_score":10}]`, &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Wedding", out[0].Name)
	assert.Equal(t, 10, out[0].Score)
}

func TestUnmarshal_JSONFence(t *testing.T) {
	raw := "Here you go:\n```json\n[{\"name\":\"Gala\",\"importance_score\":9}]\n```\nLet me know!"
	var out []scored
	err := Unmarshal(raw, &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Gala", out[0].Name)
}

func TestUnmarshal_BareFence(t *testing.T) {
	raw := "```\n[{\"name\":\"Interview\",\"importance_score\":8}]\n```"
	var out []scored
	err := Unmarshal(raw, &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Interview", out[0].Name)
}

func TestUnmarshal_RepairsTrailingComma(t *testing.T) {
	var out []scored
	err := Unmarshal(`[{"name":"Reunion","importance_score":7,},]`, &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Reunion", out[0].Name)
}

func TestUnmarshal_GarbageFails(t *testing.T) {
	var out []scored
	err := Unmarshal("I could not find any important events, sorry!", &out)
	assert.Error(t, err)
}

func TestUnmarshal_EmptyFails(t *testing.T) {
	var out []scored
	assert.Error(t, Unmarshal("", &out))
	assert.Error(t, Unmarshal("```json\n```", &out))
}

func TestStripFences_NoFence(t *testing.T) {
	assert.Equal(t, `[1,2]`, StripFences("  [1,2]\n"))
}
