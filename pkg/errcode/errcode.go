package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Load errors
	LoadSourceError
	LoadParseError
	LoadHeaderError
	LoadUnknownFormatError
	LoadRootNotFoundError
	LoadTargetsError
	LoadCanonicalError

	// SFGA errors
	SFGAFetchError
	SFGAOpenError
	SFGAReadError

	// Vernacular errors
	CacheOpenError
	CacheReadError
	CacheWriteError
	WikiRequestError
	WikiResponseError

	// Render errors
	RenderError
)
