package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts thousands separators into a decimal string,
// keeping a leading minus sign in place.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var b strings.Builder
	b.Grow(len(prefix) + n + n/3)
	b.WriteString(prefix)
	head := n % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatBytes renders a byte count with a binary unit: "512 B", "1.5 KiB".
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// TruncateHex shortens a hexadecimal rendering whose digits exceed limit,
// keeping edges digits on each side and the sign and 0x prefix intact.
// The elided middle is reported as a digit count.
func TruncateHex(s string, limit, edges int) string {
	prefix := ""
	body := s
	if strings.HasPrefix(body, "-") {
		prefix, body = "-", body[1:]
	}
	if strings.HasPrefix(body, "0x") {
		prefix, body = prefix+"0x", body[2:]
	}
	if len(body) <= limit || 2*edges >= len(body) {
		return s
	}
	hidden := len(body) - 2*edges
	return fmt.Sprintf("%s%s...(%s digits)...%s", prefix, body[:edges], FormatNumberString(fmt.Sprint(hidden)), body[len(body)-edges:])
}
