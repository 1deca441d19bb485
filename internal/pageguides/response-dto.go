package pageguides

// PresetResult reports one guide written by a preset seed.
type PresetResult struct {
	ID       uint   `json:"id"`
	PagePath string `json:"pagePath"`
	PageName string `json:"pageName"`
	Created  bool   `json:"created"`
}

// lookup is the cached result of a path lookup. Guide is nil when no guide
// covers the path, so misses are cached too.
type lookup struct {
	Guide *PageGuide `json:"guide"`
}
