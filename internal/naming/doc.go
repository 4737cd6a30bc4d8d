// Package naming allocates collision-free output file names.
//
// Names follow the templates
//
//	OUTPUT-DIR/[PREFIX ]BASENAME SEQ[.EXT]           (video)
//	OUTPUT-DIR/[PREFIX ]BASENAME SEQ TIMESTAMP.jpg   (image)
//
// where SEQ is a four-digit zero-padded number drawn from a single counter
// shared by every allocation in the run. The counter never decreases, so
// sequence numbers trend upward across the whole batch rather than per
// source. Each candidate is reserved with a create-then-remove zero-byte
// probe, which doubles as a writability check on the output directory.
package naming
