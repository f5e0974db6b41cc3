package iocache

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntree/pkg/errcode"
)

func OpenError(dir string, err error) error {
	msg := "Cannot open common names cache at <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open cache: %w", fn, err),
	}
}

func NotOpenError() error {
	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  "Common names cache is not open",
		Err:  errors.New("cache is not open"),
	}
}

func ReadError(key string, err error) error {
	msg := "Cannot read <em>%s</em> from common names cache"
	vars := []any{key}
	return &gn.Error{
		Code: errcode.CacheReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read cache key %q: %w", key, err),
	}
}

func WriteError(key string, err error) error {
	msg := "Cannot save <em>%s</em> to common names cache"
	vars := []any{key}
	return &gn.Error{
		Code: errcode.CacheWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write cache key %q: %w", key, err),
	}
}
