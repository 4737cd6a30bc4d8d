// Package driver walks the finalized job list and dispatches every image and
// video operation to the external encoder.
//
// Jobs are processed in reverse creation order (last declared first); within
// a job, images come before the video. Each external invocation is
// independent: failures are appended to the error log and the batch keeps
// going. The only fatal condition is a job list the driver cannot trust.
package driver
