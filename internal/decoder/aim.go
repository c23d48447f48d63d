package decoder

// ParseAIM strips an AIM symbology identifier ("]" + code letter + modifier)
// from a scanner line. Lines without one are reported with fallback.
func ParseAIM(line string, fallback Symbology) (string, Symbology) {
	if len(line) < 3 || line[0] != ']' {
		return line, fallback
	}
	code := line[3:]
	switch line[1] {
	case 'E':
		switch line[2] {
		case '0', '3':
			return code, EAN13
		case '4':
			return code, EAN8
		}
		return code, Unknown
	case 'C':
		return code, Code128
	case 'A':
		return code, Code39
	case 'Q':
		return code, QR
	case 'd':
		return code, Matrix
	}
	return code, Unknown
}
