// Package encoder wraps the external encoding engine (ffmpeg/ffprobe).
//
// Everything media-related is delegated here as a black box: a support probe
// for candidate sources, single-frame snapshot extraction, and the two-pass
// trim encode. The rest of the pipeline only sees success or failure per
// invocation.
package encoder
