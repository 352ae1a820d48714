package fixtures

import (
	"path/filepath"
	"strconv"
	"time"
)

// FileSource picks up files written to a directory.
type FileSource struct {
	dir      string
	fileName string
}

func (FileSource) Kind() Kind {
	return KindFile
}

// Dir is the directory that is watched.
func (s FileSource) Dir() string {
	return s.dir
}

// FileName is the name of the file that is picked up.
func (s FileSource) FileName() string {
	return s.fileName
}

// Path is the full path of the file.
func (s FileSource) Path() string {
	return filepath.Join(s.dir, s.fileName)
}

func (s FileSource) DSL() string {
	return "file " + option("dir", s.dir) + " " + option("pattern", s.fileName)
}

// TailSource emits lines appended to a file.
type TailSource struct {
	delay    time.Duration
	fileName string
}

func (TailSource) Kind() Kind {
	return KindTail
}

// Delay is how often to look for the file on platforms that do not wait for
// a missing file to appear.
func (s TailSource) Delay() time.Duration {
	return s.delay
}

func (s TailSource) FileName() string {
	return s.fileName
}

func (s TailSource) DSL() string {
	return "tail " + option("name", s.fileName) + " " + option("fileDelay", strconv.FormatInt(s.delay.Milliseconds(), 10))
}

var (
	_ Source = FileSource{}
	_ Source = TailSource{}
)
