// Package source identifies where a component template comes from so loaders
// can read inline text, files, fs.FS entries, or URLs without leaking
// implementation details.
package source

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
)

// Source names a template location.
type Source interface {
	Kind() Kind
	Location() string
}

// Kind enumerates the loader modalities.
type Kind string

const (
	KindInline Kind = "inline"
	KindFile   Kind = "file"
	KindFS     Kind = "fs"
	KindURL    Kind = "url"
)

// Loader reads the raw bytes behind a Source.
type Loader interface {
	Load(ctx context.Context, src Source) ([]byte, error)
}

// LoaderFunc adapts a function into a Loader.
type LoaderFunc func(ctx context.Context, src Source) ([]byte, error)

// Load delegates to the underlying function.
func (fn LoaderFunc) Load(ctx context.Context, src Source) ([]byte, error) {
	return fn(ctx, src)
}

type inlineSource struct {
	text string
}

func (s inlineSource) Location() string { return s.text }

func (s inlineSource) Kind() Kind { return KindInline }

// Inline returns a Source whose location is the template text itself.
func Inline(text string) Source {
	return inlineSource{text: text}
}

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }

func (s fileSource) Kind() Kind { return KindFile }

// FromFile returns a Source pointing to a file path.
func FromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }

func (s fsSource) Kind() Kind { return KindFS }

// FromFS returns a Source identifying a file inside an fs.FS.
func FromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }

func (s urlSource) Kind() Kind { return KindURL }

// FromURL validates raw and returns a Source for it.
func FromURL(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("source: empty URL")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("source: invalid URL %q: %w", raw, err)
	}
	return urlSource{raw: raw}, nil
}

// MustURL is FromURL that panics on invalid input, for static configuration.
func MustURL(raw string) Source {
	src, err := FromURL(raw)
	if err != nil {
		panic(err)
	}
	return src
}
