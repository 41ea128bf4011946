// Package viz is the interactive population pyramid view.
//
// [Model] is a Bubble Tea model with three data states: Loading shows a
// spinner while the dataset loads in a command, Ready draws the pyramid for
// the current frame, and Error shows why the load failed. Frame changes are
// owned by a [playback.Controller]; its timer ticks arrive as
// [FrameTickMsg] so that every state change happens inside Update. Bars ease
// towards their new length with a harmonica spring.
//
// # Key Bindings
//
//	Space - Play/Pause
//	Up    - Stop and step back
//	Down  - Stop and step forward
//	Left  - Stop
//	Right - Stop
//	+/-   - Double or halve the speed
//	R     - Toggle repeat
//	N     - Next dataset
//	T     - Cycle color themes
//	?     - Show help
package viz
