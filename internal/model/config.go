package model

import "sort"

// topTagCount is how many tags are promoted into the "most used" tier.
const topTagCount = 10

// Config is the persisted application document: the tag vocabulary,
// per-tag usage counters, configured folders and the thumbnail cache.
// The whole document is rewritten on every mutation.
type Config struct {
	Tags              []string          `json:"tags"`
	TagUsage          map[string]int    `json:"tagUsage"`
	SourceFolders     []string          `json:"sourceFolders"`
	DestinationFolder string            `json:"destinationFolder"`
	ThumbnailCache    map[string]string `json:"thumbnailCache"`
}

// DefaultConfig returns a Config with the starter tag vocabulary and
// initialized maps/slices.
func DefaultConfig() *Config {
	return &Config{
		Tags: []string{
			"indoor", "outdoor", "bathroom", "bedroom", "kitchen",
			"bikini", "bdsm", "rooftop", "pool", "gym",
		},
		TagUsage:       map[string]int{},
		SourceFolders:  []string{},
		ThumbnailCache: map[string]string{},
	}
}

// Clone returns a deep copy of the document.
func (c *Config) Clone() *Config {
	clone := &Config{
		Tags:              append([]string{}, c.Tags...),
		TagUsage:          make(map[string]int, len(c.TagUsage)),
		SourceFolders:     append([]string{}, c.SourceFolders...),
		DestinationFolder: c.DestinationFolder,
		ThumbnailCache:    make(map[string]string, len(c.ThumbnailCache)),
	}
	for k, v := range c.TagUsage {
		clone.TagUsage[k] = v
	}
	for k, v := range c.ThumbnailCache {
		clone.ThumbnailCache[k] = v
	}
	return clone
}

// AddTag appends a tag to the vocabulary. Matching is case-sensitive and
// exact; adding an existing tag is a no-op. Returns whether the tag was
// newly added.
func (c *Config) AddTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return false
		}
	}
	c.Tags = append(c.Tags, tag)
	return true
}

// HasTag reports whether tag is in the vocabulary.
func (c *Config) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IncrementTagUsage bumps the usage counter for tag by one.
func (c *Config) IncrementTagUsage(tag string) {
	if c.TagUsage == nil {
		c.TagUsage = map[string]int{}
	}
	c.TagUsage[tag]++
}

// Usage returns the usage count for tag (0 if never used).
func (c *Config) Usage(tag string) int {
	return c.TagUsage[tag]
}

// AddSourceFolder appends a source folder, skipping duplicates.
// Returns whether the folder was newly added.
func (c *Config) AddSourceFolder(path string) bool {
	for _, f := range c.SourceFolders {
		if f == path {
			return false
		}
	}
	c.SourceFolders = append(c.SourceFolders, path)
	return true
}

// Thumbnail returns the cached thumbnail path for a video, if any.
func (c *Config) Thumbnail(videoPath string) (string, bool) {
	p, ok := c.ThumbnailCache[videoPath]
	return p, ok
}

// SetThumbnail records the thumbnail path for a video.
func (c *Config) SetThumbnail(videoPath, thumbPath string) {
	if c.ThumbnailCache == nil {
		c.ThumbnailCache = map[string]string{}
	}
	c.ThumbnailCache[videoPath] = thumbPath
}

// SortedTags returns the display order of the vocabulary: the ten most
// used tags first (usage descending, ties keep their original relative
// order), then every remaining tag sorted alphabetically. The result
// always has the same length as Tags.
func (c *Config) SortedTags() []string {
	byUsage := make([]string, len(c.Tags))
	copy(byUsage, c.Tags)
	sort.SliceStable(byUsage, func(i, j int) bool {
		return c.Usage(byUsage[i]) > c.Usage(byUsage[j])
	})

	top := byUsage
	if len(top) > topTagCount {
		top = top[:topTagCount]
	}

	inTop := make(map[string]bool, len(top))
	for _, t := range top {
		inTop[t] = true
	}

	var rest []string
	for _, t := range c.Tags {
		if !inTop[t] {
			rest = append(rest, t)
		}
	}
	sort.Strings(rest)

	return append(append([]string{}, top...), rest...)
}
