package schemac

import "strconv"

// Format is a recognized string format tag.
type Format int

const (
	FormatDate Format = iota
	FormatTime
	FormatDateTime
	FormatEmail
	FormatHostname
	FormatIpv4
	FormatIpv6
	FormatUri
)

var formatNames = [...]string{
	FormatDate:     "date",
	FormatTime:     "time",
	FormatDateTime: "date-time",
	FormatEmail:    "email",
	FormatHostname: "hostname",
	FormatIpv4:     "ipv4",
	FormatIpv6:     "ipv6",
	FormatUri:      "uri",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
	return formatNames[f]
}

func (f Format) MarshalJSON() ([]byte, error) { return strconv.AppendQuote(nil, f.String()), nil }

// ParseFormat resolves a canonical format spelling. The underscore form
// date_time is accepted since identifiers in the notation cannot contain '-'.
func ParseFormat(name string) (Format, bool) {
	if name == "date_time" || name == "datetime" {
		return FormatDateTime, true
	}
	for i, n := range formatNames {
		if n == name {
			return Format(i), true
		}
	}
	return 0, false
}

// Formats lists every format in catalog order.
func Formats() []Format {
	out := make([]Format, len(formatNames))
	for i := range formatNames {
		out[i] = Format(i)
	}
	return out
}
