package internal

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestNewFormatter(t *testing.T) {
	buf := &bytes.Buffer{}

	assert.IsType(t, &TextFormatter{}, NewFormatter(FormatText, buf))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON, buf))
	assert.IsType(t, &TextFormatter{}, NewFormatter("unknown", buf))
}

func TestTextFormatter_PrintLines(t *testing.T) {
	buf := &bytes.Buffer{}
	f := NewTextFormatter(buf)

	require.NoError(t, f.PrintLines([]string{"10.1.0.254", "10.1.1.254", "10.1.1.1"}))
	assert.Equal(t, "10.1.0.254\n10.1.1.254\n10.1.1.1\n", buf.String())
}

func TestTextFormatter_PrintLinesEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewTextFormatter(buf).PrintLines(nil))
	assert.Empty(t, buf.String())
}

func TestTextFormatter_Marks(t *testing.T) {
	buf := &bytes.Buffer{}
	f := NewTextFormatter(buf)

	require.NoError(t, f.PrintSuccess("seeded"))
	require.NoError(t, f.PrintError("unreachable"))
	assert.Equal(t, "✓ seeded\n✗ unreachable\n", buf.String())
}

func TestTextFormatter_PrintTable(t *testing.T) {
	buf := &bytes.Buffer{}
	f := NewTextFormatter(buf)

	require.NoError(t, f.PrintTable([]string{"label", "count"}, [][]string{
		{"DataCenter", "2"},
		{"Router", "3"},
	}))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Equal(t, "LABEL       COUNT", string(lines[0]))
	assert.Equal(t, "-----       -----", string(lines[1]))
	assert.Equal(t, "DataCenter  2", string(lines[2]))
}

func TestJSONFormatter_PrintLines(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewJSONFormatter(buf).PrintLines(nil))

	var got []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestJSONFormatter_Messages(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewJSONFormatter(buf).PrintSuccess("done"))

	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]string{"status": "success", "message": "done"}, got)
}

func TestJSONFormatter_PrintTable(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewJSONFormatter(buf).PrintTable([]string{"label", "count"}, [][]string{{"Router"}}))

	var got struct {
		Headers []string            `json:"headers"`
		Data    []map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []string{"label", "count"}, got.Headers)
	assert.Equal(t, []map[string]string{{"label": "Router", "count": ""}}, got.Data)
}

func TestJSONFormatter_Durations(t *testing.T) {
	buf := &bytes.Buffer{}
	data := struct {
		Timeout time.Duration `json:"timeout"`
		Retry   time.Duration `json:"retry"`
	}{Timeout: 30 * time.Second, Retry: 1500 * time.Millisecond}
	require.NoError(t, NewJSONFormatter(buf).PrintJSON(data))

	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]string{"timeout": "30s", "retry": "1.5s"}, got)
}
