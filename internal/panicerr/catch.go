package panicerr

// Catch runs f on the calling goroutine, recovering any panic into a
// non-nil error whose Unwrap yields the panicked value when that value is
// itself an error.
func Catch(name string, f func()) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = capture(name, e)
		}
	}()
	f()
	return nil
}
