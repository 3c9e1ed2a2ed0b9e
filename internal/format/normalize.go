package format

import "strings"

// spacingRules are applied in order; each output is the next rule's input.
var spacingRules = [...][2]string{
	{`" ,features =[`, `", features = [`},
	{`]}`, `] }`},
	{`={`, `= {`},
	{`=[`, `= [`},
}

// NormalizeSpacing applies the legacy spacing substitutions. It is idempotent.
func NormalizeSpacing(text string) string {
	for _, rule := range spacingRules {
		text = strings.ReplaceAll(text, rule[0], rule[1])
	}
	return text
}

// NormalizeSpacingBytes is NormalizeSpacing over a byte slice.
func NormalizeSpacingBytes(b []byte) []byte {
	return []byte(NormalizeSpacing(string(b)))
}
