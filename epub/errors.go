package epub

import "errors"

// Sentinel errors returned by the epub package.
var (
	// ErrDRMProtected indicates the package is encrypted with a DRM scheme
	// (Adobe ADEPT, Apple FairPlay, Readium LCP) and its content cannot be read.
	ErrDRMProtected = errors.New("epub: file is DRM protected")

	// ErrInvalidEPub indicates the file is not a usable ePub
	// (for example, no container.xml and no .opf entry).
	ErrInvalidEPub = errors.New("epub: invalid ePub file")

	// ErrInvalidItem indicates an Item has neither in-memory content nor a
	// parent Book to read from.
	ErrInvalidItem = errors.New("epub: invalid item handle")

	// ErrFileNotFound indicates a requested path is not in the archive.
	ErrFileNotFound = errors.New("epub: file not found in archive")
)
