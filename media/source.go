// Package media validates user-selected files and turns them into playable sources.
package media

import (
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/watchroom-cli/watchroom/filesystem"
)

// FileRef describes a user-selected file.
type FileRef struct {
	// Name is the base name shown to the user.
	Name string
	// Path is the location of the file on the active filesystem.
	Path string
	// Type is the declared media type. It may be empty.
	Type string
	// Size in bytes.
	Size int64
	// ModTime is the last modification time.
	ModTime time.Time
}

// describe fills the fields of a FileRef that follow from the path alone.
func describe(path string) FileRef {
	return FileRef{
		Name: filepath.Base(path),
		Path: path,
		Type: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
	}
}

// Stat builds a FileRef for path. The declared media type is derived from the extension.
func Stat(path string) (FileRef, error) {
	info, err := filesystem.API().Stat(path)
	if err != nil {
		return FileRef{}, err
	}

	ref := describe(path)
	ref.Size = info.Size()
	ref.ModTime = info.ModTime()
	return ref, nil
}

// Source is a validated file bound to a playable handle.
type Source struct {
	// URL is the playable handle issued by the allocator.
	URL string
	// File is the original selection.
	File FileRef
	// Fingerprint is the hex encoded SHA-256 digest of the file content.
	Fingerprint string
	// RoomID is the room the source was loaded for.
	RoomID int
}

// Allocator issues and revokes playable handles for files.
type Allocator interface {
	Allocate(ref FileRef) (string, error)
	Release(url string) error
}
