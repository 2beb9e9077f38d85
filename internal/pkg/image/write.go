package image

import (
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/prequel-dev/pcireg/internal/pkg/zerr"
)

// WriteTo writes the raw binary image.
func (im *Image) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(im.data)
	if err != nil {
		return int64(n), errors.Join(zerr.ErrImageWrite, err)
	}
	return int64(n), nil
}

// WriteCompressed writes the binary image as an lz4 frame with a
// content checksum.  Level runs 0 (fast) through 9.
func (im *Image) WriteCompressed(w io.Writer, level int) (int64, error) {
	lvl, err := lz4Level(level)
	if err != nil {
		return 0, err
	}

	var (
		wcnt   = &wrCnt{Writer: w}
		framer = lz4.NewWriter(wcnt)
	)

	if err := framer.Apply(
		lz4.CompressionLevelOption(lvl),
		lz4.ChecksumOption(true),
	); err != nil {
		return 0, errors.Join(zerr.ErrImageWrite, err)
	}

	if _, err := framer.Write(im.data); err != nil {
		return int64(wcnt.cnt), errors.Join(zerr.ErrImageWrite, err)
	}

	if err := framer.Close(); err != nil {
		return int64(wcnt.cnt), errors.Join(zerr.ErrImageWrite, err)
	}

	return int64(wcnt.cnt), nil
}

func lz4Level(l int) (lvl lz4.CompressionLevel, err error) {
	switch l {
	case 0:
		lvl = lz4.Fast
	case 1:
		lvl = lz4.Level1
	case 2:
		lvl = lz4.Level2
	case 3:
		lvl = lz4.Level3
	case 4:
		lvl = lz4.Level4
	case 5:
		lvl = lz4.Level5
	case 6:
		lvl = lz4.Level6
	case 7:
		lvl = lz4.Level7
	case 8:
		lvl = lz4.Level8
	case 9:
		lvl = lz4.Level9
	default:
		err = fmt.Errorf("%w: lz4 level %d out of range", zerr.ErrImageWrite, l)
	}
	return
}

type wrCnt struct {
	cnt uint64
	io.Writer
}

func (w *wrCnt) Write(data []byte) (n int, err error) {
	n, err = w.Writer.Write(data)
	if n >= 0 {
		w.cnt += uint64(n)
	}
	return
}
