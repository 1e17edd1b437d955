// Package history records every crop cropall writes in a SQLite database.
//
// Each entry ties an input image to the file that was written, the crop
// rectangle, and the session that produced it, so `cropall history` can show
// what happened to a folder and a later session can tell which images were
// already done.
package history
