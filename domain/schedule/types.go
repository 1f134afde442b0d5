package schedule

// Unknown is the sentinel for blank text fields and blank course codes.
const Unknown = "Unknown"

// Other is the department for course codes whose prefix is not in the faculty table.
const Other = "Other"

// Column names of the cleaned table, in export order.
const (
	ColCourseTitle = "course_title"
	ColCode        = "code"
	ColClassDates  = "class_dates"
	ColClassTimes  = "class_times"
	ColDays        = "days"
	ColHall        = "hall"
	ColInstructor  = "instructor"
	ColMinutes     = "minutes"
	ColStartTime   = "start_time"
	ColEndTime     = "end_time"
	ColDepartment  = "department"
	ColStartHour   = "start_hour"
)

// ExpectedColumns lists every raw column the normalizer reads. Missing ones are
// defaulted so downstream code never sees an absent key.
var ExpectedColumns = []string{
	ColCourseTitle,
	ColCode,
	ColClassDates,
	ColClassTimes,
	ColDays,
	ColHall,
	ColInstructor,
	ColMinutes,
	ColStartTime,
	ColEndTime,
	ColDepartment,
}

// Record is one cleaned class session.
type Record struct {
	CourseTitle string   `json:"course_title"`
	Code        string   `json:"code"`
	ClassDates  string   `json:"class_dates"`
	ClassTimes  string   `json:"class_times"`
	Day         Day      `json:"days"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	StartHour   *float64 `json:"start_hour"`
	Minutes     int      `json:"minutes"`
	Hall        string   `json:"hall"`
	Instructor  string   `json:"instructor"`
	Department  string   `json:"department"`
}

// HasStartHour reports whether the start time was parseable.
func (r Record) HasStartHour() bool {
	return r.StartHour != nil
}

// Table is the cleaned, read-only schedule. Filtering produces new slices and
// never mutates Records.
type Table struct {
	Source  string   `json:"source"`
	Records []Record `json:"records"`
	// Dropped counts raw rows excluded because their day code did not normalize.
	Dropped int `json:"dropped"`
	// MissingColumns lists expected columns the source did not provide.
	MissingColumns []string `json:"missing_columns,omitempty"`
}

// Len returns the number of cleaned records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Key extracts a grouping key from a record.
type Key func(Record) string

// Grouping keys used by the aggregations.
var (
	ByInstructor  Key = func(r Record) string { return r.Instructor }
	ByHall        Key = func(r Record) string { return r.Hall }
	ByCourseTitle Key = func(r Record) string { return r.CourseTitle }
	ByDepartment  Key = func(r Record) string { return r.Department }
)
