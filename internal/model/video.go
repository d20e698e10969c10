package model

import (
	"path/filepath"
	"time"
)

// ThumbStatus tracks the lifecycle of a video's thumbnail.
type ThumbStatus int

const (
	ThumbPending ThumbStatus = iota
	ThumbReady
	ThumbFailed
)

// Video is a discovered video file in the working set. Videos are not
// persisted; only the tag-usage side effects and the post-move location
// survive the session.
type Video struct {
	ID           string
	Path         string
	ModTime      time.Time
	SelectedTags map[string]bool
	ThumbStatus  ThumbStatus
	ThumbPath    string
}

// NewVideo creates a Video with a generated ID and an empty tag selection.
func NewVideo(path string, modTime time.Time) Video {
	return Video{
		ID:           generateUUID(),
		Path:         path,
		ModTime:      modTime,
		SelectedTags: map[string]bool{},
	}
}

// Name returns the video's base filename.
func (v *Video) Name() string {
	return filepath.Base(v.Path)
}

// ToggleTag flips the selection state of tag.
func (v *Video) ToggleTag(tag string) {
	if v.SelectedTags[tag] {
		delete(v.SelectedTags, tag)
	} else {
		v.SelectedTags[tag] = true
	}
}

// Selected returns the selected tags in unspecified order.
func (v *Video) Selected() []string {
	tags := make([]string, 0, len(v.SelectedTags))
	for t := range v.SelectedTags {
		tags = append(tags, t)
	}
	return tags
}
