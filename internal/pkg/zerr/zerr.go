package zerr

type constError string

func (err constError) Error() string {
	return string(err)
}

const (
	ErrUnrecognized constError = "pci unrecognized encoding"
	ErrDevselTiming constError = "pci unrecognized devsel timing code"
	ErrImageRead    constError = "pci fail read config image"
	ErrImageWrite   constError = "pci fail write config image"
	ErrImageSize    constError = "pci config image size out of range"
	ErrImageFormat  constError = "pci malformed config image"
	ErrOffset       constError = "pci bad config offset"
)

