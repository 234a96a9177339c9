package cmd

import (
	"bytes"
	"io"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOutput(t *testing.T) {
	v := map[string]string{"title": "call mom"}
	text := func(w io.Writer) error {
		_, err := io.WriteString(w, "call mom\n")
		return err
	}

	tests := map[string]string{
		"":     "call mom\n",
		"text": "call mom\n",
		"json": "{\n  \"title\": \"call mom\"\n}\n",
		"yaml": "title: call mom\n",
	}
	for format, want := range tests {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeOutput(&buf, format, v, text))
			assert.Equal(t, want, buf.String())
		})
	}

	assert.Error(t, writeOutput(io.Discard, "xml", v, text))
}

func TestParseToday(t *testing.T) {
	d, err := parseToday("2024-12-20")
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.December, Day: 20}, d)

	_, err = parseToday("20/12/2024")
	assert.Error(t, err)
}

func TestParseNow(t *testing.T) {
	got, err := parseNow("2024-12-20T10:15:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.December, 20, 10, 15, 0, 0, time.UTC), got)

	got, err = parseNow("2024-12-20T10:15")
	require.NoError(t, err)
	assert.Equal(t, civil.DateTime{
		Date: civil.Date{Year: 2024, Month: time.December, Day: 20},
		Time: civil.Time{Hour: 10, Minute: 15},
	}, civil.DateTimeOf(got))

	got, err = parseNow("2024-12-20")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Hour())

	_, err = parseNow("soon")
	assert.Error(t, err)
}
