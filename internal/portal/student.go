package portal

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// RecordQuery configures attendance-record requests.
type RecordQuery struct {
	DateFrom string
	DateTo   string
	Page     int
	PerPage  int
}

// ScheduleQuery bounds a schedule request by date.
type ScheduleQuery struct {
	DateFrom string
	DateTo   string
}

// SearchStudents looks students up by name.
func (c *Client) SearchStudents(ctx context.Context, name string) (*Response[[]Student], error) {
	values := url.Values{}
	values.Set("name", name)
	var env Response[[]Student]
	if err := c.get(ctx, "/h5/students/search", values, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Student returns one student by id.
func (c *Client) Student(ctx context.Context, id int64) (*Response[Student], error) {
	var env Response[Student]
	if err := c.get(ctx, fmt.Sprintf("/h5/students/%d", id), nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// ClassHours returns the coarse class-hour balance for a student.
func (c *Client) ClassHours(ctx context.Context, id int64) (*Response[ClassHours], error) {
	var env Response[ClassHours]
	if err := c.get(ctx, fmt.Sprintf("/h5/students/%d/class-hours", id), nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Progress returns the student's learning progress.
func (c *Client) Progress(ctx context.Context, id int64) (*Response[StudentProgress], error) {
	var env Response[StudentProgress]
	if err := c.get(ctx, fmt.Sprintf("/h5/students/%d/progress", id), nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// AttendanceRecords returns one page of class-hour deduction records.
func (c *Client) AttendanceRecords(ctx context.Context, id int64, query RecordQuery) (*Paginated[AttendanceRecord], error) {
	values := url.Values{}
	if from := strings.TrimSpace(query.DateFrom); from != "" {
		values.Set("date_from", from)
	}
	if to := strings.TrimSpace(query.DateTo); to != "" {
		values.Set("date_to", to)
	}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(query.PerPage))
	}
	var env Paginated[AttendanceRecord]
	if err := c.get(ctx, fmt.Sprintf("/h5/students/%d/attendance-records", id), values, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// ClassHoursSummary returns the lessons accounting for a student.
func (c *Client) ClassHoursSummary(ctx context.Context, id int64) (*Response[StudentClassHoursSummary], error) {
	var env Response[StudentClassHoursSummary]
	if err := c.get(ctx, fmt.Sprintf("/h5/students/%d/class-hours-summary", id), nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Schedule returns the student's timetable for a date range.
func (c *Client) Schedule(ctx context.Context, id int64, query ScheduleQuery) (*Response[StudentSchedule], error) {
	values := url.Values{}
	if from := strings.TrimSpace(query.DateFrom); from != "" {
		values.Set("date_from", from)
	}
	if to := strings.TrimSpace(query.DateTo); to != "" {
		values.Set("date_to", to)
	}
	var env Response[StudentSchedule]
	if err := c.get(ctx, fmt.Sprintf("/h5/students/%d/schedule", id), values, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// MyStudents lists the students linked to the authenticated parent.
func (c *Client) MyStudents(ctx context.Context) (*Response[[]Student], error) {
	var env Response[[]Student]
	if err := c.get(ctx, "/h5/my-students", nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
