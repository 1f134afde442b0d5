package analytics

import (
	"testing"

	"loadboard/domain/schedule"

	"github.com/stretchr/testify/assert"
)

func TestSumMinutesByRanksWithKeyTieBreak(t *testing.T) {
	ranked := SumMinutesBy(sampleTable().Records, schedule.ByInstructor)
	assert.Equal(t, []Ranked{
		{Key: "Omar Nur", Value: 150},
		{Key: "Smith, John", Value: 150},
		{Key: "Anna Lee", Value: 100},
		{Key: schedule.Unknown, Value: 0},
	}, ranked)
}

func TestCountBy(t *testing.T) {
	ranked := CountBy(sampleTable().Records, schedule.ByCourseTitle)
	assert.Equal(t, []Ranked{
		{Key: "Accounting", Value: 2},
		{Key: "Calculus I", Value: 2},
		{Key: "Contracts", Value: 1},
		{Key: "Seminar", Value: 1},
	}, ranked)
}

func TestTopNAppliesAfterFullAggregation(t *testing.T) {
	var records []schedule.Record
	for i := 0; i < 12; i++ {
		records = append(records, rec("A", "", "H", "c", schedule.Mon, nil, 10))
	}
	records = append(records, rec("B", "", "H", "c", schedule.Mon, nil, 100))

	top := TopN(SumMinutesBy(records, schedule.ByInstructor), 1)
	assert.Equal(t, []Ranked{{Key: "A", Value: 120}}, top)

	all := SumMinutesBy(records, schedule.ByInstructor)
	assert.Len(t, TopN(all, 0), 2)
	assert.Len(t, TopN(all, 10), 2)
}

func TestAggregationsOnEmptyInput(t *testing.T) {
	assert.Empty(t, SumMinutesBy(nil, schedule.ByHall))
	assert.Empty(t, CountBy(nil, schedule.ByHall))
	assert.Equal(t, 0, Distinct(nil, schedule.ByHall))
	assert.Equal(t, 0, TotalMinutes(nil))
}

func TestRankedHours(t *testing.T) {
	assert.InDelta(t, 2.5, Ranked{Value: 150}.Hours(), 1e-9)
}
