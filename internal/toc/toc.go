// Package toc builds and refreshes a Markdown table of contents.
//
// Everything in this package is a pure function of the document text: it
// never reads or writes a host buffer. Callers turn the returned Edit into a
// single atomic change on their side.
package toc

// Outcome describes what a Refresh or Insert decided to do.
type Outcome int

const (
	// Nothing means no edit should be applied.
	Nothing Outcome = iota
	// NoMarker means the document has no usable marker pair.
	NoMarker
	// Refreshed means the content between the markers was regenerated.
	Refreshed
	// Emptied means the markers were kept but no headings were found.
	Emptied
	// Inserted means a new marker-wrapped TOC was created.
	Inserted
)

func (o Outcome) String() string {
	switch o {
	case NoMarker:
		return "cannot find TOC tags"
	case Refreshed:
		return "refresh TOC content"
	case Emptied:
		return "TOC is empty"
	case Inserted:
		return "inserted TOC"
	default:
		return "nothing to do"
	}
}

// Entries runs the heading pipeline over text and returns the TOC entries
// for headings ending after offset after.
func Entries(text string, after int, opts Options) []Entry {
	headings := Scan(text, opts.Depth, after)
	if len(headings) == 0 {
		return nil
	}
	return Generate(Normalize(headings), opts)
}

// Build renders the TOC list for headings ending after offset after. It
// returns "" when there are no headings.
func Build(text string, after int, opts Options) string {
	return Render(Entries(text, after, opts), opts)
}

// Refresh regenerates the TOC between the first usable marker pair. Marker
// attributes override defaults. Only headings after the close marker are
// listed.
func Refresh(text string, defaults Options) (Edit, Outcome, MarkerPair) {
	pair, ok := LocateMarkers(text, defaults)
	if !ok {
		return Edit{}, NoMarker, MarkerPair{}
	}

	body := Build(text, pair.Close.End, pair.Options)
	if body == "" {
		return Edit{Region: pair.Inner(), Text: "\n"}, Emptied, pair
	}
	return Edit{Region: pair.Inner(), Text: "\n" + body + "\n"}, Refreshed, pair
}

// Insert creates a new marker-wrapped TOC at the start of the line holding
// offset at, listing the headings from that line on.
func Insert(text string, at int, opts Options) (Edit, Outcome) {
	at = lineStart(text, at)
	body := Build(text, at, opts)
	if body == "" {
		return Edit{}, Nothing
	}
	block := OpenTag + "\n\n" + body + "\n" + CloseTag + "\n"
	return Edit{Region: Region{Begin: at, End: at}, Text: block}, Inserted
}

// InsertOrRefresh refreshes the first marker pair, or inserts a new TOC at
// offset at when the document has none.
func InsertOrRefresh(text string, at int, defaults Options) (Edit, Outcome) {
	edit, outcome, _ := Refresh(text, defaults)
	if outcome != NoMarker {
		return edit, outcome
	}
	return Insert(text, at, defaults)
}
