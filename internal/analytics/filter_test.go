package analytics

import (
	"testing"

	"loadboard/domain/schedule"
	"loadboard/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalSet(t *testing.T) {
	var none OptionalSet[string]
	assert.True(t, none.Empty())
	assert.True(t, none.Allows("anything"))
	assert.False(t, none.Contains("anything"))

	set := NewOptionalSet("b", "a", "b")
	assert.False(t, set.Empty())
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Allows("a"))
	assert.False(t, set.Allows("c"))
	assert.Equal(t, []string{"a", "b"}, set.Values())
}

func TestSnapHour(t *testing.T) {
	assert.Equal(t, 8.5, SnapHour(3))
	assert.Equal(t, 21.75, SnapHour(23))
	assert.Equal(t, 9.25, SnapHour(9.3))
	assert.Equal(t, 9.5, SnapHour(9.4))
	assert.Equal(t, 8.5, SnapHour(8.3))
}

func TestNewHourRange(t *testing.T) {
	r, err := NewHourRange(9, 12)
	require.NoError(t, err)
	assert.Equal(t, HourRange{Lo: 9, Hi: 12}, *r)

	_, err = NewHourRange(14, 10)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestApplyZeroFilterReturnsEverything(t *testing.T) {
	table := sampleTable()
	view := Apply(table, Filter{})
	assert.False(t, view.Fallback)
	assert.Equal(t, table.Records, view.Records)
}

func TestApplyCategoricalFilters(t *testing.T) {
	table := sampleTable()

	view := Apply(table, Filter{Halls: NewOptionalSet("Valikhanov 101")})
	require.Equal(t, 3, view.Len())
	for _, r := range view.Records {
		assert.Equal(t, "Valikhanov 101", r.Hall)
	}

	view = Apply(table, Filter{
		Instructors: NewOptionalSet("Smith, John", "Anna Lee"),
		Days:        NewOptionalSet(schedule.Mon),
	})
	require.Equal(t, 2, view.Len())
	assert.Equal(t, "Smith, John", view.Records[0].Instructor)
	assert.Equal(t, "Anna Lee", view.Records[1].Instructor)
}

func TestApplyHourRangeKeepsMissingHours(t *testing.T) {
	table := sampleTable()
	hours, err := NewHourRange(9, 9.5)
	require.NoError(t, err)

	view := Apply(table, Filter{Hours: hours})
	assert.False(t, view.Fallback)
	require.Equal(t, 4, view.Len())

	missing := 0
	for _, r := range view.Records {
		if r.StartHour == nil {
			missing++
			continue
		}
		assert.GreaterOrEqual(t, *r.StartHour, hours.Lo)
		assert.LessOrEqual(t, *r.StartHour, hours.Hi)
	}
	assert.Equal(t, 1, missing)
}

func TestApplyHourRangeInclusiveBounds(t *testing.T) {
	table := sampleTable()
	view := Apply(table, Filter{Hours: &HourRange{Lo: 18.25, Hi: 21.75}})
	var courses []string
	for _, r := range view.Records {
		courses = append(courses, r.CourseTitle)
	}
	assert.Equal(t, []string{"Accounting", "Contracts", "Seminar"}, courses)
}

func TestApplyFallsBackOnEmptyResult(t *testing.T) {
	table := sampleTable()
	before := append([]schedule.Record(nil), table.Records...)

	view := Apply(table, Filter{
		Instructors: NewOptionalSet("Omar Nur"),
		Days:        NewOptionalSet(schedule.Sun),
	})
	assert.True(t, view.Fallback)
	assert.Equal(t, table.Records, view.Records)

	view.Records[0].Minutes = 999
	assert.Equal(t, before, table.Records)
}

func TestApplyEmptyTable(t *testing.T) {
	view := Apply(&schedule.Table{}, Filter{Halls: NewOptionalSet("x")})
	assert.False(t, view.Fallback)
	assert.Equal(t, 0, view.Len())

	assert.Equal(t, 0, Apply(nil, Filter{}).Len())
}
