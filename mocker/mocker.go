// Package mocker holds test doubles for FTQ packages - item substitution,
// a scripted clock and platform, and captured output streams.
package mocker

// Saves the item (usually a function variable), sets the new value and returns restoring function.
// Intended use - note extra brackets:
//
//	defer mocker.ReplaceItem(&tickCountF, fakeTicks)()
func ReplaceItem[T any](orgVal *T, newVal T) func() {
	saveVal := *orgVal
	*orgVal = newVal
	return func() { *orgVal = saveVal }
}
