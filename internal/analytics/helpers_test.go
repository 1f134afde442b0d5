package analytics

import "loadboard/domain/schedule"

func hour(h float64) *float64 {
	return &h
}

func rec(instructor, dept, hall, course string, day schedule.Day, start *float64, minutes int) schedule.Record {
	return schedule.Record{
		CourseTitle: course,
		Day:         day,
		StartHour:   start,
		Minutes:     minutes,
		Hall:        hall,
		Instructor:  instructor,
		Department:  dept,
	}
}

const (
	business  = schedule.FacultyBusiness
	computing = schedule.FacultyComputing
	law       = schedule.FacultyLaw
)

func sampleTable() *schedule.Table {
	return &schedule.Table{Records: []schedule.Record{
		rec("Smith, John", computing, "Valikhanov 101", "Calculus I", schedule.Mon, hour(9), 75),
		rec("Smith, John", computing, "Valikhanov 101", "Calculus I", schedule.Wed, hour(9), 75),
		rec("Anna Lee", business, "Dostyk 202", "Accounting", schedule.Mon, hour(9.5), 50),
		rec("Anna Lee", business, "Dostyk 202", "Accounting", schedule.Tue, nil, 50),
		rec("Omar Nur", law, "Valikhanov 101", "Contracts", schedule.Thu, hour(18.25), 150),
		rec(schedule.Unknown, schedule.Other, schedule.Unknown, "Seminar", schedule.Fri, hour(21.75), 0),
	}}
}
