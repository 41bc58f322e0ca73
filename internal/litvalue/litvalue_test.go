package litvalue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePrimitives(t *testing.T) {
	cases := []struct {
		src  string
		want interface{}
	}{
		{"null", nil},
		{"undefined", nil},
		{"true", true},
		{"false", false},
		{"42", float64(42)},
		{"-3.5", float64(-3.5)},
		{`"hi"`, "hi"},
		{`'hi'`, "hi"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			got, err := Parse(c.src)
			require.NoError(t, err)
			require.Equal(t, c.want, got)
		})
	}
}

func TestParseStringEscapes(t *testing.T) {
	got, err := Parse(`"a\nb\tc\"d"`)
	require.NoError(t, err)
	require.Equal(t, "a\nb\tc\"d", got)
}

func TestParseArray(t *testing.T) {
	got, err := Parse(`[1, 2, "three"]`)
	require.NoError(t, err)
	require.Equal(t, []interface{}{float64(1), float64(2), "three"}, got)
}

func TestParseObject(t *testing.T) {
	got, err := Parse(`{ name: "assert", level: 2, enabled: true }`)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{
		"name":    "assert",
		"level":   float64(2),
		"enabled": true,
	}, got)
}

func TestParseNestedObjectAndArray(t *testing.T) {
	got, err := Parse(`{ tags: ["a", "b"], meta: { ok: true } }`)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{
		"tags": []interface{}{"a", "b"},
		"meta": map[string]interface{}{"ok": true},
	}, got)
}

func TestParseQuotedObjectKey(t *testing.T) {
	got, err := Parse(`{ "my-key": 1 }`)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"my-key": float64(1)}, got)
}

func TestParseRejectsTrailingInput(t *testing.T) {
	_, err := Parse(`1 2`)
	require.Error(t, err)
}

func TestParseRejectsUnterminatedString(t *testing.T) {
	_, err := Parse(`"unterminated`)
	require.Error(t, err)
}

func TestParseRejectsMissingColon(t *testing.T) {
	_, err := Parse(`{ key 1 }`)
	require.Error(t, err)
}

func TestParseRejectsUnknownToken(t *testing.T) {
	_, err := Parse(`@nope`)
	require.Error(t, err)
}
