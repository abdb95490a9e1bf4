// Package sharedlib loads shared-library images and resolves symbols
// from them, on top of the Go plugin runtime on platforms that support
// it.
package sharedlib

import (
	"fmt"
	"plugin"
	"sync"
)

// LoadFailedError indicates a shared-library image could not be opened.
type LoadFailedError struct {
	Path string
	Err  error
}

func (e *LoadFailedError) Error() string {
	return fmt.Sprintf("sharedlib: load %q failed: %v", e.Path, e.Err)
}

func (e *LoadFailedError) Unwrap() error { return e.Err }

// SymbolNotFoundError indicates a named symbol was not present in an
// opened image.
type SymbolNotFoundError struct {
	Path   string
	Symbol string
	Err    error
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("sharedlib: symbol %q not found in %q: %v", e.Symbol, e.Path, e.Err)
}

func (e *SymbolNotFoundError) Unwrap() error { return e.Err }

// Library is a loaded shared-library image. The zero value is not
// usable; obtain one from Open.
type Library struct {
	path   string
	mu     sync.Mutex
	plug   *plugin.Plugin
	closed bool
}

// Open opens the image at path. On platforms without plugin support, or
// for images that are not valid Go plugins, Open returns a
// *LoadFailedError.
func Open(path string) (*Library, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, &LoadFailedError{Path: path, Err: err}
	}
	return &Library{path: path, plug: p}, nil
}

// Symbol resolves a named symbol in the image, returning it as an `any`
// for the caller to type-assert to the expected callable or variable
// type.
func (l *Library) Symbol(name string) (any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil, &SymbolNotFoundError{Path: l.path, Symbol: name, Err: fmt.Errorf("library closed")}
	}
	sym, err := l.plug.Lookup(name)
	if err != nil {
		return nil, &SymbolNotFoundError{Path: l.path, Symbol: name, Err: err}
	}
	return sym, nil
}

// Close releases the image. The Go plugin runtime never actually unloads
// a plugin's memory (there is no dlclose equivalent), so Close only
// marks the Library unusable for further Symbol calls; it never returns
// an error.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}
