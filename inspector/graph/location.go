package graph

// Location is a byte range in a source file. Raw holds the source text of the range.
type Location struct {
	Raw     string
	Start   int
	End     int
	Line    int
	EndLine int
}

// LocationNode is a piece of source text with its location.
type LocationNode struct {
	Text string
	Location
}

func NewNodeLocation(text string) *LocationNode {
	return &LocationNode{
		Text: text,
	}
}
