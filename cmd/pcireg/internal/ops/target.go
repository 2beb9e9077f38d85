package ops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	lz4Ext     = ".lz4"
	patchedExt = ".patched"
	dstPerms   = 0600
	dstFlags   = os.O_CREATE | os.O_RDWR | os.O_TRUNC
)

// targetT pairs a source image with its output.  The output is created
// only once the source has been read, so patching a file onto itself
// with --force is safe.
type targetT struct {
	src     *os.File
	dstName string // empty for stdout
	dst     *os.File
}

func newTarget(name, output string, compress, forceOverwrite bool) (*targetT, error) {

	var dstName string
	switch {
	case output == "-":
	case output != "":
		dstName = output
	default:
		dstName = strings.TrimSuffix(name, lz4Ext) + patchedExt
		if compress {
			dstName += lz4Ext
		}
	}

	if dstName != "" && fileExists(dstName) && !forceOverwrite {
		return nil, fmt.Errorf("output file '%s' already exists", dstName)
	}

	srcFh, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("cannot open source '%s': %w", name, err)
	}

	return &targetT{src: srcFh, dstName: dstName}, nil
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return (err == nil) || !errors.Is(err, os.ErrNotExist)
}

func (t *targetT) Reader() io.Reader {
	return t.src
}

// Writer releases the source and opens the output.
func (t *targetT) Writer() (io.Writer, error) {
	if err := t.closeSrc(); err != nil {
		return nil, err
	}
	if t.dstName == "" {
		return stdout, nil
	}
	if t.dst == nil {
		fh, err := os.OpenFile(t.dstName, dstFlags, dstPerms)
		if err != nil {
			return nil, fmt.Errorf("fail create output file '%s': %w", t.dstName, err)
		}
		t.dst = fh
	}
	return t.dst, nil
}

// Commit closes the output so a failed final flush is reported.
// Stdout is left open.
func (t *targetT) Commit() error {
	if t.dst == nil {
		return nil
	}
	err := t.dst.Close()
	t.dst = nil
	if err != nil {
		return fmt.Errorf("fail close output file '%s': %w", t.dstName, err)
	}
	return nil
}

func (t *targetT) OutputName() string {
	if t.dstName == "" {
		return strStdout
	}
	return t.dstName
}

func (t *targetT) closeSrc() error {
	if t.src == nil {
		return nil
	}
	err := t.src.Close()
	t.src = nil
	return err
}

func (t *targetT) Close() error {
	var errList []error
	if err := t.closeSrc(); err != nil {
		errList = append(errList, err)
	}
	if t.dst != nil {
		if err := t.dst.Close(); err != nil {
			errList = append(errList, err)
		}
		t.dst = nil
	}
	return errors.Join(errList...)
}
