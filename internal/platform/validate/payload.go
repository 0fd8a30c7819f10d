package validate

import "strings"

// Payload renders the wire body for a failed validation. Required failures
// win and are reported together; otherwise the first format failure is
// reported with the offending value echoed back under a receivedXxx key.
func Payload(errs *Errors) map[string]interface{} {
	if missing := errs.Missing(); len(missing) > 0 {
		return map[string]interface{}{
			"error":         "Missing required fields: " + strings.Join(missing, ", "),
			"missingFields": missing,
		}
	}
	fe, ok := errs.First()
	if !ok {
		return map[string]interface{}{"error": errs.Error()}
	}
	return map[string]interface{}{
		"error":              fe.Message(),
		receivedKey(fe.Name): fe.Value,
	}
}

// receivedKey turns a snake_case json name into receivedCamelCase, e.g.
// contact_no -> receivedContactNo.
func receivedKey(jsonName string) string {
	var b strings.Builder
	b.WriteString("received")
	for _, part := range strings.Split(jsonName, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
