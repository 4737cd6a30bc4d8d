package plan

// optionKind enumerates the recognized option tokens. Every token that is
// not an option is a value attached to the most recently seen option.
type optionKind int

const (
	optionNone optionKind = iota
	optionConfigFile
	optionSourceDir
	optionOutputDir
	optionNamePrefix
	optionVideo
	optionImage
	optionOnlyImage
	optionStartPosition
	optionDuration
)

// optionTable maps both the canonical config-file spellings and their
// command-line aliases onto option kinds.
var optionTable = map[string]optionKind{
	"config-file":    optionConfigFile,
	"--config":       optionConfigFile,
	"source-dir":     optionSourceDir,
	"--source-dir":   optionSourceDir,
	"output-dir":     optionOutputDir,
	"--output-dir":   optionOutputDir,
	"name-prefix":    optionNamePrefix,
	"--base-name":    optionNamePrefix,
	"video":          optionVideo,
	"--video":        optionVideo,
	"image":          optionImage,
	"--image":        optionImage,
	"only-image":     optionOnlyImage,
	"--only-image":   optionOnlyImage,
	"start-position": optionStartPosition,
	"-ss":            optionStartPosition,
	"duration":       optionDuration,
	"-t":             optionDuration,
}

func lookupOption(token string) (optionKind, bool) {
	kind, ok := optionTable[token]
	return kind, ok
}

func (k optionKind) String() string {
	switch k {
	case optionConfigFile:
		return "config-file"
	case optionSourceDir:
		return "source-dir"
	case optionOutputDir:
		return "output-dir"
	case optionNamePrefix:
		return "name-prefix"
	case optionVideo:
		return "video"
	case optionImage:
		return "image"
	case optionOnlyImage:
		return "only-image"
	case optionStartPosition:
		return "start-position"
	case optionDuration:
		return "duration"
	default:
		return "none"
	}
}

// IsConfigToken reports whether token selects a batch config file. The run
// command uses this to enforce mutual exclusion with all other options.
func IsConfigToken(token string) bool {
	kind, ok := lookupOption(token)
	return ok && kind == optionConfigFile
}
