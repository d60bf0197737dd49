package encode

type EncodeOption func(*EncState)

// EncodeIndent sets the indentation string, a tab by default.
func EncodeIndent(s string) EncodeOption {
	return func(es *EncState) { es.indent = s }
}

// EncodeComments controls whether attached comments are written.
func EncodeComments(v bool) EncodeOption {
	return func(es *EncState) { es.comments = v }
}

// EncodeOuterBraces surrounds a top-level map with braces.
func EncodeOuterBraces(v bool) EncodeOption {
	return func(es *EncState) { es.braces = v }
}

// Depth sets the starting indentation depth.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

// EncodeColors turns on terminal colors.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
