package icons

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
)

// Resolver turns a category into an image reference usable as <img src>.
// Implementations never fail; they degrade to StaticPath.
type Resolver interface {
	Resolve(ctx context.Context, c Category) string
}

// StaticPath is the conventional relative location of a category's icon.
func StaticPath(c Category) string {
	return "icons/" + c.FileName()
}

type Static struct{}

func (Static) Resolve(_ context.Context, c Category) string { return StaticPath(c) }

// Bundle serves icons out of an asset filesystem under a fingerprinted URL so
// browsers can cache them indefinitely. Missing assets fall back to
// StaticPath.
type Bundle struct {
	fsys   fs.FS
	prefix string

	mu   sync.Mutex
	refs map[Category]string
}

func NewBundle(fsys fs.FS, prefix string) *Bundle {
	return &Bundle{
		fsys:   fsys,
		prefix: strings.TrimRight(prefix, "/"),
		refs:   map[Category]string{},
	}
}

func (b *Bundle) Resolve(ctx context.Context, c Category) string {
	if !c.Valid() {
		c = Unknown
	}
	if ctx.Err() != nil {
		return StaticPath(c)
	}
	ref, err := b.lookup(c)
	if err != nil {
		slog.Debug("icon asset lookup failed, using static path", "category", c, "error", err)
		return StaticPath(c)
	}
	return ref
}

func (b *Bundle) lookup(c Category) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ref, ok := b.refs[c]; ok {
		return ref, nil
	}
	if b.fsys == nil {
		return "", fs.ErrNotExist
	}
	data, err := fs.ReadFile(b.fsys, c.FileName())
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	ref := b.prefix + "/" + c.FileName() + "?v=" + hex.EncodeToString(sum[:4])
	b.refs[c] = ref
	return ref, nil
}

const (
	ModeBundle = "bundle"
	ModeStatic = "static"
	// ModeNone disables icon resolution; the plain renderer is used.
	ModeNone = "none"
)

// NewResolver picks the resolver for a configured mode. A bundle without an
// asset filesystem degrades to Static.
func NewResolver(mode string, fsys fs.FS, prefix string) Resolver {
	if mode == ModeBundle && fsys != nil {
		return NewBundle(fsys, prefix)
	}
	return Static{}
}
