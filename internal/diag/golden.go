package diag

import (
	"github.com/vmihailenco/msgpack/v5"

	"glint/internal/source"
)

// goldenDiagnostic is the stable, serializable projection of a Diagnostic
// used for regression fixtures. It carries every Diagnostic field except
// Notes: a diagnostic's notes are not encoded and do not survive a round
// trip.
type goldenDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	HelpNote string
	File     uint32
	Start    uint32
	End      uint32
}

// EncodeGolden serializes a sorted bag's diagnostics into a stable msgpack
// fixture, for use in table-driven regression tests that pin the exact set
// of diagnostics a scenario produces.
func EncodeGolden(items []Diagnostic) ([]byte, error) {
	golden := make([]goldenDiagnostic, len(items))
	for i, d := range items {
		golden[i] = goldenDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			HelpNote: d.HelpNote,
			File:     uint32(d.Primary.File),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
	}
	return msgpack.Marshal(golden)
}

// DecodeGolden is the inverse of EncodeGolden.
func DecodeGolden(b []byte) ([]Diagnostic, error) {
	var golden []goldenDiagnostic
	if err := msgpack.Unmarshal(b, &golden); err != nil {
		return nil, err
	}
	out := make([]Diagnostic, len(golden))
	for i, g := range golden {
		out[i] = Diagnostic{
			Severity: Severity(g.Severity),
			Code:     Code(g.Code),
			Message:  g.Message,
			HelpNote: g.HelpNote,
		}
		out[i].Primary.File = source.FileID(g.File)
		out[i].Primary.Start = g.Start
		out[i].Primary.End = g.End
	}
	return out, nil
}
