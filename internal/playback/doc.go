// Package playback drives frame-by-frame animation over a loaded dataset.
//
// [Controller] is a two-state machine (Stopped, Playing) that owns the
// current frame and at most one repeating [Timer]:
//
//	Stopped --TogglePlay--> Playing   (arms a timer at 1s/speed)
//	Playing --TogglePlay--> Stopped   (cancels it)
//	Playing --tick at end, no repeat--> Stopped
//	any     --StepBack/StepForward/CancelPlayback--> Stopped
//
// # Event Loop
//
// A Controller is NOT safe for concurrent use. Timers created by a
// [Scheduler] fire on their own goroutine and must hand the tick back to
// the owner's event loop, which then calls [Controller.Tick]. Ticks from a
// timer that has since been cancelled are ignored, so a tick racing a stop
// can never move the frame.
package playback
