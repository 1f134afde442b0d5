package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTableAlignsByDisplayWidth(t *testing.T) {
	var buf bytes.Buffer
	err := writeTable(&buf, []string{"Instructor", "Hours"}, [][]string{
		{"Smith", "12.5"},
		{"Сейткали", "3.0"},
		{"李明", "1.0"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "| Instructor | Hours |", lines[0])
	assert.Equal(t, "| ---------- | ----- |", lines[1])
	for _, l := range lines {
		assert.Equal(t, runewidth.StringWidth(lines[0]), runewidth.StringWidth(l), l)
	}
}

func TestWriteTableShortRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, []string{"a", "b"}, [][]string{{"x"}}))
	assert.Contains(t, buf.String(), "| x   |     |")
}
