package install

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/kotormods/kpatch/patchop"
)

// Report aggregates what a run did: one record per instruction, with the
// terminal status of the run as a whole. Partially applied mutations made
// before a fatal error stay applied; the report is the user's account of
// how far the run got.
type Report struct {
	Status  string   `yaml:"status"`
	Applied int      `yaml:"applied"`
	Skipped int      `yaml:"skipped"`
	Failed  int      `yaml:"failed"`
	Records []Record `yaml:"records"`
}

// Record describes one instruction's outcome.
type Record struct {
	Resource string `yaml:"resource"`
	Label    string `yaml:"label"`
	Status   string `yaml:"status"`
	Message  string `yaml:"message,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusAborted = "aborted"
)

func (rp *Report) applied(resource, label string) {
	rp.Applied++
	rp.Records = append(rp.Records, Record{
		Resource: resource,
		Label:    label,
		Status:   "applied",
	})
}

func (rp *Report) skipped(resource, label, warning string) {
	rp.Skipped++
	rp.Records = append(rp.Records, Record{
		Resource: resource,
		Label:    label,
		Status:   "skipped",
		Message:  warning,
	})
}

func (rp *Report) failed(resource, label string, err error) {
	rp.Failed++
	rp.Records = append(rp.Records, Record{
		Resource: resource,
		Label:    label,
		Status:   "failed",
		Message:  err.Error(),
	})
}

func (rp *Report) record(resource, label string, out patchop.Outcome) {
	if out.Status == patchop.Skipped {
		rp.skipped(resource, label, out.Warning)
		return
	}
	rp.applied(resource, label)
}

// EncodeYAML writes the report in YAML form.
func (rp *Report) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(rp)
}
