package portal

import (
	"context"
	"fmt"
	"net/url"
)

// Levels lists the course catalog levels.
func (c *Client) Levels(ctx context.Context) (*Response[[]Course], error) {
	var env Response[[]Course]
	if err := c.get(ctx, "/courses/levels", nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Level returns one course level by its level code.
func (c *Client) Level(ctx context.Context, level string) (*Response[Course], error) {
	var env Response[Course]
	if err := c.get(ctx, "/courses/levels/"+url.PathEscape(level), nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Stories lists the stories within a course level.
func (c *Client) Stories(ctx context.Context, levelID int64) (*Response[[]Story], error) {
	var env Response[[]Story]
	if err := c.get(ctx, fmt.Sprintf("/courses/%d/stories", levelID), nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Story returns one story by id.
func (c *Client) Story(ctx context.Context, storyID int64) (*Response[Story], error) {
	var env Response[Story]
	if err := c.get(ctx, fmt.Sprintf("/stories/%d", storyID), nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// StoryOutline returns the free-form outline payload for a story.
func (c *Client) StoryOutline(ctx context.Context, storyID int64) (*Response[map[string]any], error) {
	var env Response[map[string]any]
	if err := c.get(ctx, fmt.Sprintf("/stories/%d/outline", storyID), nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
