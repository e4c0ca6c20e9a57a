package zrcodec

import "fmt"

// Limits caps what an Encoder will build. A zero field means unlimited.
// The engine enforces its own caps when a drawlist is submitted; mirroring
// them here turns an engine ZR_ERR_LIMIT into an early, descriptive error.
type Limits struct {
	MaxTotalBytes uint32 `yaml:"max_total_bytes" toml:"max_total_bytes"`
	MaxCommands   uint32 `yaml:"max_commands" toml:"max_commands"`
	MaxStrings    uint32 `yaml:"max_strings" toml:"max_strings"`
	MaxClipDepth  uint32 `yaml:"max_clip_depth" toml:"max_clip_depth"`
}

// EngineLimits returns the drawlist caps the engine is commonly configured with.
func EngineLimits() Limits {
	return Limits{
		MaxTotalBytes: 256 * 1024,
		MaxCommands:   4096,
		MaxStrings:    4096,
		MaxClipDepth:  64,
	}
}

func exceeds(limit uint32, n uint64) bool { return limit != 0 && n > uint64(limit) }

// check validates a finished layout against the limits.
func (l Limits) check(total uint64, cmds, strs int) error {
	switch {
	case exceeds(l.MaxTotalBytes, total):
		return fmt.Errorf("%w: drawlist is %d bytes, max %d", ErrLimit, total, l.MaxTotalBytes)
	case exceeds(l.MaxCommands, uint64(cmds)):
		return fmt.Errorf("%w: %d commands, max %d", ErrLimit, cmds, l.MaxCommands)
	case exceeds(l.MaxStrings, uint64(strs)):
		return fmt.Errorf("%w: %d strings, max %d", ErrLimit, strs, l.MaxStrings)
	}
	return nil
}

// Check validates a parsed drawlist against the limits, including the
// deepest clip nesting its commands reach.
func (l Limits) Check(d *Drawlist) error {
	if err := l.check(uint64(d.Header.TotalSize), len(d.Commands), len(d.Strings)); err != nil {
		return err
	}
	depth, deepest := 0, 0
	for _, c := range d.Commands {
		switch c.(type) {
		case PushClip:
			depth++
			deepest = max(deepest, depth)
		case PopClip:
			depth--
		}
	}
	if exceeds(l.MaxClipDepth, uint64(deepest)) {
		return fmt.Errorf("%w: clip depth %d, max %d", ErrLimit, deepest, l.MaxClipDepth)
	}
	return nil
}
