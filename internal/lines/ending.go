package lines

import "strings"

// Ending is a line terminator style.
type Ending string

const (
	EndingNone  Ending = "none"
	EndingLF    Ending = "lf"
	EndingCRLF  Ending = "crlf"
	EndingMixed Ending = "mixed"
)

// Terminator returns the byte sequence for e, or "" when e has none.
func (e Ending) Terminator() string {
	switch e {
	case EndingLF:
		return "\n"
	case EndingCRLF:
		return "\r\n"
	default:
		return ""
	}
}

// DetectEnding reports the terminator style used by s. A sequence with no
// terminated lines reports EndingNone.
func DetectEnding(s Sequence) Ending {
	var lf, crlf int
	for _, line := range s {
		switch {
		case strings.HasSuffix(line, "\r\n"):
			crlf++
		case strings.HasSuffix(line, "\n"):
			lf++
		}
	}
	switch {
	case lf == 0 && crlf == 0:
		return EndingNone
	case crlf == 0:
		return EndingLF
	case lf == 0:
		return EndingCRLF
	default:
		return EndingMixed
	}
}

// ConvertEndings rewrites the terminator of every terminated line to e.
// Unterminated lines are left alone, as is everything when e is not LF or CRLF.
func ConvertEndings(content []string, e Ending) []string {
	term := e.Terminator()
	out := make([]string, len(content))
	for i, line := range content {
		if term == "" || !strings.HasSuffix(line, "\n") {
			out[i] = line
			continue
		}
		out[i] = Trim(line) + term
	}
	return out
}
