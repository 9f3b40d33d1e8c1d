package quote

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultVolumeDisplay is shown when the form was submitted without a
// volume selection. An empty selection is not an error.
const DefaultVolumeDisplay = "Not specified"

// volumeDisplays maps every known volume token to its canonical display
// string. The first three are the current weekly buckets; the rest are
// legacy monthly tokens still sent by cached copies of older form versions.
// Legacy tokens keep their own displays rather than being remapped, since
// there is no faithful weekly equivalent for a monthly count.
var volumeDisplays = map[string]string{
	"less-than-25":  "Less than 25",
	"25-to-125":     "25 to 125",
	"more-than-125": "More than 125",

	"less-than-100":  "Less than 100",
	"100-to-500":     "100 to 500",
	"500-to-1000":    "500 to 1000",
	"more-than-1000": "More than 1000",
}

// The volume selector has changed encoding several times. These patterns
// cover every shorthand observed in the wild: "25to125", "25-125" with
// plain hyphen or en/em dash, "25 to 125", "lt25", "gt125".
var (
	rangeTokenRegex = regexp.MustCompile(`^(\d+)\s*(?:to|[-\x{2013}\x{2014}])\s*(\d+)$`)
	lessThanRegex   = regexp.MustCompile(`^lt(\d+)$`)
	moreThanRegex   = regexp.MustCompile(`^gt(\d+)$`)
)

// NormalizeVolume resolves a raw token and optional display string into a
// canonical (token, display) pair. The boolean reports whether the token
// resolved to a known form; an unrecognized token is still echoed back as
// its own display so the caller never loses the submitted value.
func NormalizeVolume(token, display string) (VolumeSelection, bool) {
	token = strings.TrimSpace(token)
	display = strings.TrimSpace(display)

	// Nothing selected at all
	if token == "" && display == "" {
		return VolumeSelection{Token: "", Display: DefaultVolumeDisplay}, true
	}

	// An explicit display string is trusted as-is; do not re-derive it
	if display != "" {
		return VolumeSelection{Token: token, Display: display}, true
	}

	lower := strings.ToLower(token)
	if canonical, ok := volumeDisplays[lower]; ok {
		return VolumeSelection{Token: lower, Display: canonical}, true
	}

	if m := rangeTokenRegex.FindStringSubmatch(lower); m != nil {
		return VolumeSelection{Token: lower, Display: fmt.Sprintf("%s to %s", m[1], m[2])}, true
	}
	if m := lessThanRegex.FindStringSubmatch(lower); m != nil {
		return VolumeSelection{Token: lower, Display: fmt.Sprintf("Less than %s", m[1])}, true
	}
	if m := moreThanRegex.FindStringSubmatch(lower); m != nil {
		return VolumeSelection{Token: lower, Display: fmt.Sprintf("More than %s", m[1])}, true
	}

	// Unknown token: echo it back rather than blocking the submission
	return VolumeSelection{Token: token, Display: token}, false
}
