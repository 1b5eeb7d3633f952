package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// One table over every read endpoint: each facade member must hit its exact
// backend path with its exact query encoding.
func TestFacadeEndpointPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		call      func(ctx context.Context, c *Client) error
		wantPath  string
		wantQuery url.Values
	}{
		{
			name:     "CurrentUser",
			call:     func(ctx context.Context, c *Client) error { _, err := c.CurrentUser(ctx); return err },
			wantPath: "/auth/user",
		},
		{
			name:      "SearchStudents",
			call:      func(ctx context.Context, c *Client) error { _, err := c.SearchStudents(ctx, "amy liu"); return err },
			wantPath:  "/h5/students/search",
			wantQuery: url.Values{"name": {"amy liu"}},
		},
		{
			name:     "Student",
			call:     func(ctx context.Context, c *Client) error { _, err := c.Student(ctx, 4); return err },
			wantPath: "/h5/students/4",
		},
		{
			name:     "ClassHours",
			call:     func(ctx context.Context, c *Client) error { _, err := c.ClassHours(ctx, 4); return err },
			wantPath: "/h5/students/4/class-hours",
		},
		{
			name:     "Progress",
			call:     func(ctx context.Context, c *Client) error { _, err := c.Progress(ctx, 4); return err },
			wantPath: "/h5/students/4/progress",
		},
		{
			name:     "ClassHoursSummary",
			call:     func(ctx context.Context, c *Client) error { _, err := c.ClassHoursSummary(ctx, 4); return err },
			wantPath: "/h5/students/4/class-hours-summary",
		},
		{
			name:     "MyStudents",
			call:     func(ctx context.Context, c *Client) error { _, err := c.MyStudents(ctx); return err },
			wantPath: "/h5/my-students",
		},
		{
			name:     "Levels",
			call:     func(ctx context.Context, c *Client) error { _, err := c.Levels(ctx); return err },
			wantPath: "/courses/levels",
		},
		{
			name:     "Level",
			call:     func(ctx context.Context, c *Client) error { _, err := c.Level(ctx, "B1"); return err },
			wantPath: "/courses/levels/B1",
		},
		{
			name:     "Stories",
			call:     func(ctx context.Context, c *Client) error { _, err := c.Stories(ctx, 3); return err },
			wantPath: "/courses/3/stories",
		},
		{
			name:     "Story",
			call:     func(ctx context.Context, c *Client) error { _, err := c.Story(ctx, 9); return err },
			wantPath: "/stories/9",
		},
		{
			name:     "StoryOutline",
			call:     func(ctx context.Context, c *Client) error { _, err := c.StoryOutline(ctx, 9); return err },
			wantPath: "/stories/9/outline",
		},
		{
			name:      "HomeworkDetail",
			call:      func(ctx context.Context, c *Client) error { _, err := c.HomeworkDetail(ctx, 5, 7); return err },
			wantPath:  "/h5/homework/5",
			wantQuery: url.Values{"student_id": {"7"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotPath string
			var gotQuery url.Values
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.Query()
				w.Header().Set("Content-Type", "application/json")
				// null data decodes into any envelope payload type.
				_, _ = w.Write([]byte(`{"success":true,"message":"","data":null}`))
			}))
			t.Cleanup(server.Close)

			c, err := NewClient(server.URL, nil)
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			if err := tt.call(context.Background(), c); err != nil {
				t.Fatalf("%s returned error: %v", tt.name, err)
			}
			if gotPath != tt.wantPath {
				t.Fatalf("path = %q, want %q", gotPath, tt.wantPath)
			}
			want := tt.wantQuery
			if want == nil {
				want = url.Values{}
			}
			if got := gotQuery.Encode(); got != want.Encode() {
				t.Fatalf("query = %q, want %q", got, want.Encode())
			}
		})
	}
}
