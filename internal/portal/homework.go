package portal

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"
)

// Homework status filters understood by the backend.
const (
	HomeworkFilterAll       = "all"
	HomeworkFilterPending   = "pending"
	HomeworkFilterSubmitted = "submitted"
	HomeworkFilterOverdue   = "overdue"
)

// HomeworkQuery configures homework list requests.
type HomeworkQuery struct {
	Status  string // one of the HomeworkFilter constants; empty or "all" means no filter
	Page    int
	PerPage int
}

// AttachmentUpload is one file to attach to a homework submission. Size is
// checked against the per-file cap before any bytes go on the wire; a zero
// Size skips the check.
type AttachmentUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// SubmitHomeworkRequest carries the fields of a homework submission.
type SubmitHomeworkRequest struct {
	StudentID   int64
	Content     string
	Attachments []AttachmentUpload
}

// MaxAttachmentBytes caps a single submission attachment at 20MB.
const MaxAttachmentBytes = 20 << 20

// StudentHomework returns one page of assignments for a student.
func (c *Client) StudentHomework(ctx context.Context, studentID int64, query HomeworkQuery) (*Paginated[HomeworkAssignment], error) {
	values := url.Values{}
	if status := strings.TrimSpace(query.Status); status != "" && status != HomeworkFilterAll {
		values.Set("status", status)
	}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(query.PerPage))
	}
	var env Paginated[HomeworkAssignment]
	if err := c.get(ctx, fmt.Sprintf("/h5/students/%d/homework", studentID), values, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// HomeworkDetail returns one assignment scoped to a student, including the
// student's submission when one exists.
func (c *Client) HomeworkDetail(ctx context.Context, homeworkID, studentID int64) (*Response[HomeworkAssignment], error) {
	values := url.Values{}
	if studentID > 0 {
		values.Set("student_id", strconv.FormatInt(studentID, 10))
	}
	var env Response[HomeworkAssignment]
	if err := c.get(ctx, fmt.Sprintf("/h5/homework/%d", homeworkID), values, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// SubmitHomework creates or replaces the student's submission. The request
// goes out as multipart/form-data: scalar fields flattened, one form field
// per attachment named attachments[i].
func (c *Client) SubmitHomework(ctx context.Context, homeworkID int64, req SubmitHomeworkRequest) (*Response[HomeworkSubmission], error) {
	if req.StudentID <= 0 {
		return nil, fmt.Errorf("student id required")
	}
	for _, attachment := range req.Attachments {
		if attachment.Size > MaxAttachmentBytes {
			return nil, &Error{
				Kind:    KindRequestFailed,
				Message: fmt.Sprintf("Attachment %s exceeds the 20MB limit.", attachment.Filename),
				err:     fmt.Errorf("attachment %s is %d bytes", attachment.Filename, attachment.Size),
			}
		}
	}

	build := func(mw *multipart.Writer) error {
		if err := mw.WriteField("student_id", strconv.FormatInt(req.StudentID, 10)); err != nil {
			return fmt.Errorf("write form field: %w", err)
		}
		if req.Content != "" {
			if err := mw.WriteField("content", req.Content); err != nil {
				return fmt.Errorf("write form field: %w", err)
			}
		}
		for i, attachment := range req.Attachments {
			part, err := mw.CreateFormFile(fmt.Sprintf("attachments[%d]", i), attachment.Filename)
			if err != nil {
				return fmt.Errorf("create form file: %w", err)
			}
			if _, err := io.Copy(part, attachment.Content); err != nil {
				return fmt.Errorf("copy attachment %s: %w", attachment.Filename, err)
			}
		}
		return nil
	}

	var env Response[HomeworkSubmission]
	if err := c.postMultipart(ctx, fmt.Sprintf("/h5/homework/%d/submit", homeworkID), build, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// LocalStatus buckets an assignment the way the homework list presents it:
// anything with a submission counts as submitted (graded included), the rest
// split on expiry.
func (a HomeworkAssignment) LocalStatus() string {
	if a.Submission != nil {
		return HomeworkFilterSubmitted
	}
	if a.IsExpired {
		return HomeworkFilterOverdue
	}
	return HomeworkFilterPending
}

// FilterHomework keeps assignments whose title or class name contains query,
// case-insensitively. An empty query keeps everything.
func FilterHomework(list []HomeworkAssignment, query string) []HomeworkAssignment {
	trimmed := strings.ToLower(strings.TrimSpace(query))
	if trimmed == "" {
		return list
	}
	var out []HomeworkAssignment
	for _, assignment := range list {
		if strings.Contains(strings.ToLower(assignment.Title), trimmed) ||
			strings.Contains(strings.ToLower(assignment.Class.Name), trimmed) {
			out = append(out, assignment)
		}
	}
	return out
}

// CountHomeworkByStatus tallies assignments per local status bucket.
func CountHomeworkByStatus(list []HomeworkAssignment) map[string]int {
	counts := make(map[string]int, 3)
	for _, assignment := range list {
		counts[assignment.LocalStatus()]++
	}
	return counts
}
