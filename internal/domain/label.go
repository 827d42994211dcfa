package domain

import "strings"

// LabelSeparator delimits labels in their free-text form.
const LabelSeparator = ";"

type Label struct {
	Text string
}

// ParseLabels splits s on LabelSeparator, trims every segment and drops the
// empty ones. Blank input yields an empty, non-nil slice.
//
// Labels whose text contains the separator or is blank cannot survive a
// LabelsString/ParseLabels round trip.
func ParseLabels(s string) []Label {
	labels := []Label{}
	if strings.TrimSpace(s) == "" {
		return labels
	}
	for _, part := range strings.Split(s, LabelSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		labels = append(labels, Label{Text: part})
	}
	return labels
}

// LabelsString joins label texts with LabelSeparator.
func LabelsString(labels []Label) string {
	texts := make([]string, len(labels))
	for i, l := range labels {
		texts[i] = l.Text
	}
	return strings.Join(texts, LabelSeparator)
}
