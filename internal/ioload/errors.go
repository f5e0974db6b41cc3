package ioload

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gntree/pkg/errcode"
)

// ParseError reports a malformed line of a relation source.
func ParseError(line int, text string) error {
	msg := "Malformed line %d: <em>%s</em>"
	vars := []any{line, text}
	return &gn.Error{
		Code: errcode.LoadParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("line %d is malformed: %q", line, text),
	}
}

// HeaderError reports required columns missing from a table header.
func HeaderError(missing []string) error {
	cols := strings.Join(missing, ", ")
	msg := "Table header misses required columns: <em>%s</em>"
	vars := []any{cols}
	return &gn.Error{
		Code: errcode.LoadHeaderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("missing columns: %s", cols),
	}
}

func SourceError(path string, err error) error {
	msg := "Cannot read relations from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadSourceError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}

func UnknownFormatError(format string) error {
	msg := "Unknown source format <em>%s</em>"
	vars := []any{format}
	return &gn.Error{
		Code: errcode.LoadUnknownFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown source format %q", format),
	}
}

// RootNotFoundError reports that the requested root taxon is absent from
// the loaded data.
func RootNotFoundError(root string) error {
	msg := "Root taxon <em>%s</em> is not found in the data"
	vars := []any{root}
	return &gn.Error{
		Code: errcode.LoadRootNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("root %q not found", root),
	}
}

func TargetsError(path string, err error) error {
	msg := "Cannot read target taxa from <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.LoadTargetsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read targets %s: %w", path, err),
	}
}

func CanonicalError(err error) error {
	return &gn.Error{
		Code: errcode.LoadCanonicalError,
		Msg:  "Cannot normalize scientific names",
		Err:  fmt.Errorf("canonical names: %w", err),
	}
}

func SFGAFetchError(src string, err error) error {
	msg := "Cannot get SFGA archive from <em>%s</em>"
	vars := []any{src}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SFGAFetchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot fetch %s: %w", fn, src, err),
	}
}

func SFGAOpenError(path string, err error) error {
	msg := "Cannot open SFGA database <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.SFGAOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open sqlite %s: %w", path, err),
	}
}

func SFGAReadError(err error) error {
	return &gn.Error{
		Code: errcode.SFGAReadError,
		Msg:  "Cannot read taxa from SFGA database",
		Err:  fmt.Errorf("cannot query taxa: %w", err),
	}
}

// IsCode reports whether err is a *gn.Error with the given code.
func IsCode(err error, code gn.ErrorCode) bool {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code == code
	}
	return false
}
