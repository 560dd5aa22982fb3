// Package scheduler assigns conference presentations to tracks, sessions and
// time slots.
//
// A run sorts the submissions by theme and splits them into contiguous,
// evenly sized tracks. Each track is grouped into sessions by a Grouper and
// then walked by a per-track clock that hands out fixed-width slots inside
// the track's daily window, rolling whole sessions over to the next synthetic
// day when the window is exhausted. Results are keyed by input row so the
// caller can merge them back into the original table.
package scheduler
