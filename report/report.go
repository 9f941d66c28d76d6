package report

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/bootdat/boot"
)

// Tool is the producer name stamped into reports.
const Tool = "mkboot"

// Report summarizes one build run.
type Report struct {
	Tool    string  `json:"tool"`
	Version string  `json:"version"`
	Builds  []Build `json:"builds"`
}

// Build is one produced container.
type Build struct {
	Name          string `json:"name"`
	Variant       string `json:"variant"`
	Output        string `json:"output"`
	PayloadSize   int    `json:"payloadSize"`
	Size          int    `json:"size"`
	PayloadSHA256 string `json:"payloadSha256"`
	BootDatSHA256 string `json:"bootDatSha256"`
}

// New assembles a Report stamped with the tool name and
// library version.
func New(builds []Build) Report {
	return Report{
		Tool:    Tool,
		Version: boot.Version,
		Builds:  builds,
	}
}

// Write renders rp as indented JSON to w.
func Write(w io.Writer, rp Report) error {
	const errCtx = "writing report"

	data, err := json.MarshalIndent(rp, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
