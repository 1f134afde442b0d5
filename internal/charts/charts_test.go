package charts

import (
	"bytes"
	"testing"

	"loadboard/domain/core"
	"loadboard/internal/analytics"
	"loadboard/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sampleSummary() analytics.Summary {
	return analytics.Summary{
		Instructors: []analytics.Ranked{{Key: "Smith, John", Value: 300}, {Key: "Anna Lee", Value: 150}},
		Halls:       []analytics.Ranked{{Key: "Valikhanov 101", Value: 300}},
		Courses:     []analytics.Ranked{{Key: "A very long course title that needs truncating", Value: 90}},
		FrequentCourses: []analytics.Ranked{
			{Key: "Calculus I", Value: 4}, {Key: "Accounting", Value: 4},
		},
		Faculties: []analytics.Ranked{{Key: "Law School", Value: 200}, {Key: "Bang College of Business", Value: 100}},
	}
}

func TestRenderEveryChart(t *testing.T) {
	s := sampleSummary()
	for _, name := range Names {
		t.Run(string(name), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, name, s))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestRenderEmptySeries(t *testing.T) {
	for _, name := range Names {
		var buf bytes.Buffer
		err := Render(&buf, name, analytics.Summary{})
		assert.ErrorIs(t, err, core.ErrEmptySeries, string(name))
	}

	var buf bytes.Buffer
	err := BarPNG(&buf, "zeros", []analytics.Ranked{{Key: "a", Value: 0}}, nil)
	assert.ErrorIs(t, err, core.ErrEmptySeries)
	err = PiePNG(&buf, "zeros", []analytics.Ranked{{Key: "a", Value: 0}})
	assert.ErrorIs(t, err, core.ErrEmptySeries)
}

func TestParseName(t *testing.T) {
	name, err := ParseName("Halls.png")
	require.NoError(t, err)
	assert.Equal(t, Halls, name)

	name, err = ParseName("frequent-courses")
	require.NoError(t, err)
	assert.Equal(t, FrequentCourses, name)

	_, err = ParseName("sunburst")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrChartNotFound)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}
