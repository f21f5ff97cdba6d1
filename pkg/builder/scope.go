package builder

import "github.com/pkg/errors"

// Use runs fn against a fresh Builder, the Go shape of the original
// assembler's context-manager contract (__enter__ acquires the stream,
// __exit__ guarantees it is released). There is no OS resource to release
// here; the buffer is plain memory, so Use's job is narrower than the
// original's: it guarantees that a panic inside fn is recovered and
// re-raised as an error carrying a stack trace, rather than unwinding past
// the caller with the builder left in a half-built state unreported.
//
// On success Use returns the builder's dumped bytes. On a returned error
// from fn, or a recovered panic, it returns nil and the error.
func Use(fn func(b *Builder) error) (bytes []byte, err error) {
	b := New()

	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(panicAsError(r), "builder: panic during scoped use")
			bytes = nil
		}
	}()

	if ferr := fn(b); ferr != nil {
		return nil, ferr
	}
	if b.Err() != nil {
		return nil, b.Err()
	}
	return b.Dump(), nil
}

func panicAsError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return errors.Errorf("%v", r)
}
