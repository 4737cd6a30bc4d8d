package plan

// DirectoryContext is the inherited triple applied to a job. Empty fields
// mean "current directory" for the directories and "no prefix" for the
// prefix. Once captured into a Job the context is never mutated.
type DirectoryContext struct {
	SourceDir  string
	OutputDir  string
	NamePrefix string
}

// ImageRequest is one snapshot to extract from a job's source.
type ImageRequest struct {
	TimeReference string
	OutputPath    string
}

// Job is the unit of work for one declared source video.
type Job struct {
	// Index is the creation order, assigned sequentially from 0. It is
	// never reused or reordered.
	Index int
	// SourcePath has passed readability, size, and encoder support checks.
	SourcePath string
	// OutputPath is empty when video output is suppressed or its name
	// allocation failed; such a job never reaches the video-encode step.
	OutputPath string
	// TrimStart and TrimDuration are optional HH:MM:SS[.f[f]] bounds;
	// empty means "from the beginning" / "to the end".
	TrimStart    string
	TrimDuration string
	// SuppressVideo is set by only-image.
	SuppressVideo bool
	// Images holds snapshot requests in declaration order.
	Images []ImageRequest
	// Context is the directory context the job was committed with.
	Context DirectoryContext
}

// WantsVideo reports whether the job participates in the video-encode step.
func (j Job) WantsVideo() bool {
	return !j.SuppressVideo && j.OutputPath != ""
}
