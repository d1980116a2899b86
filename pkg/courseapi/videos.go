package courseapi

import (
	"context"
	"net/http"
)

// VideoInput is the create/update payload for a video. Course and
// Module are parent entity IDs.
type VideoInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl" validate:"required,url"`
	Course      string `json:"course" validate:"required"`
	Module      string `json:"module" validate:"required"`
}

// ListVideos returns every video across all modules.
func (c *Client) ListVideos(ctx context.Context) ([]Video, error) {
	var result []Video
	if err := c.do(ctx, "videos.list", http.MethodGet, "/videos", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListVideosByModule returns the videos belonging to one module.
func (c *Client) ListVideosByModule(ctx context.Context, moduleID string) ([]Video, error) {
	var result []Video
	if err := c.do(ctx, "videos.list_by_module", http.MethodGet, "/videos/module/"+moduleID, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetVideo returns one video by ID.
func (c *Client) GetVideo(ctx context.Context, id string) (*Video, error) {
	var result Video
	if err := c.do(ctx, "videos.get", http.MethodGet, "/videos/"+id, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateVideo creates a video and returns the server's copy.
func (c *Client) CreateVideo(ctx context.Context, input VideoInput) (*Video, error) {
	if err := c.validateInput("videos.create", input); err != nil {
		return nil, err
	}
	var result Video
	if err := c.do(ctx, "videos.create", http.MethodPost, "/videos", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateVideo replaces a video's fields.
func (c *Client) UpdateVideo(ctx context.Context, id string, input VideoInput) (*Video, error) {
	if err := c.validateInput("videos.update", input); err != nil {
		return nil, err
	}
	var result Video
	if err := c.do(ctx, "videos.update", http.MethodPut, "/videos/"+id, input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteVideo deletes a video by ID.
func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	return c.do(ctx, "videos.delete", http.MethodDelete, "/videos/"+id, nil, nil)
}
