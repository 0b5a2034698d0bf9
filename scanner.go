package stripjson

// commentMode tracks which kind of comment the scanner is inside, if any.
type commentMode int

const (
	notInComment commentMode = iota
	inLineComment
	inBlockComment
)

// processor is a single-use state machine that walks the input once and
// builds the stripped output. Nothing in it is shared between calls.
type processor struct {
	data   []byte
	index  int
	offset int // start of the span not yet copied to buffer or result

	inString bool
	mode     commentMode

	buffer []byte // staged bytes, not yet committed to result
	result []byte

	commaOpen bool

	whitespace     bool
	trailingCommas bool

	stats Stats
}

func newProcessor(data []byte, opts *Options) *processor {
	return &processor{
		data:           data,
		buffer:         make([]byte, 0, len(data)),
		result:         make([]byte, 0, len(data)),
		whitespace:     !opts.NoWhitespace,
		trailingCommas: opts.TrailingCommas,
		stats:          Stats{BytesIn: len(data)},
	}
}

// run processes the whole input and returns the output buffer.
func (p *processor) run() []byte {
	for p.index < len(p.data) {
		p.step()
		p.index++
	}
	return p.finish()
}

func (p *processor) step() {
	cur := p.data[p.index]

	var next byte
	hasNext := p.index+1 < len(p.data)
	if hasNext {
		next = p.data[p.index+1]
	}

	if p.mode == notInComment && cur == '"' && !p.isEscaped() {
		p.inString = !p.inString
	}

	if p.inString {
		return
	}

	if p.commentTransition(cur, next, hasNext) {
		return
	}

	if p.trailingCommas && p.mode == notInComment {
		p.trailingComma(cur)
	}
}

// isEscaped reports whether the byte at index is preceded by an odd run of
// backslashes.
func (p *processor) isEscaped() bool {
	n := 0
	for i := p.index - 1; i >= 0 && p.data[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// commentTransition enters or leaves a comment. It returns true when the
// byte was consumed by a transition.
func (p *processor) commentTransition(cur, next byte, hasNext bool) bool {
	switch {
	case p.mode == notInComment && cur == '/' && hasNext && next == '/':
		p.flushToBuffer(p.index)
		p.offset = p.index
		p.mode = inLineComment
		p.index++

	case p.mode == inLineComment && cur == '\r' && hasNext && next == '\n':
		p.index += 2
		p.mode = notInComment
		p.stats.LineComments++
		p.stripToBuffer(p.offset, p.index)
		p.offset = p.index
		p.index-- // the main loop advances past the '\n'

	case p.mode == inLineComment && cur == '\n':
		// The newline itself stays in the document.
		p.mode = notInComment
		p.stats.LineComments++
		p.stripToBuffer(p.offset, p.index)
		p.offset = p.index

	case p.mode == notInComment && cur == '/' && hasNext && next == '*':
		p.flushToBuffer(p.index)
		p.offset = p.index
		p.mode = inBlockComment
		p.index++

	case p.mode == inBlockComment && cur == '*' && hasNext && next == '/':
		p.index += 2
		p.mode = notInComment
		p.stats.BlockComments++
		p.stripToBuffer(p.offset, p.index)
		p.offset = p.index
		p.index--

	default:
		return false
	}

	return true
}

// trailingComma resolves or opens a trailing comma candidate.
func (p *processor) trailingComma(cur byte) {
	if !p.commaOpen {
		if cur == ',' {
			p.result = append(p.result, p.buffer...)
			p.flushToResult(p.index)
			p.buffer = p.buffer[:0]
			p.offset = p.index
			p.commaOpen = true
		}
		return
	}

	switch cur {
	case '}', ']':
		p.flushToBuffer(p.index)
		// buffer[0] is the comma
		if len(p.buffer) > 0 {
			if p.whitespace {
				p.result = append(p.result, ' ')
			}
			p.result = append(p.result, p.buffer[1:]...)
		}
		p.buffer = p.buffer[:0]
		p.offset = p.index
		p.commaOpen = false
		p.stats.TrailingCommas++

	case ' ', '\t', '\r', '\n':
		// still undecided

	default:
		p.flushToBuffer(p.index)
		p.offset = p.index
		p.commaOpen = false
	}
}

func (p *processor) flushToBuffer(end int) {
	if p.offset < end {
		p.buffer = append(p.buffer, p.data[p.offset:end]...)
	}
}

func (p *processor) flushToResult(end int) {
	if p.offset < end {
		p.result = append(p.result, p.data[p.offset:end]...)
	}
}

// stripToBuffer appends data[start:end] to the buffer with every byte other
// than space, tab, CR and LF turned into a space. Without whitespace mode the
// span is dropped.
func (p *processor) stripToBuffer(start, end int) {
	if !p.whitespace {
		return
	}
	for _, c := range p.data[start:end] {
		if !isSpace(c) {
			c = ' '
		}
		p.buffer = append(p.buffer, c)
	}
}

// finish closes a dangling line comment, flushes what is staged and returns
// the result. A dangling block comment is left as it was written.
func (p *processor) finish() []byte {
	if p.mode == inLineComment {
		p.stats.LineComments++
		p.stripToBuffer(p.offset, len(p.data))
	} else {
		p.flushToBuffer(len(p.data))
	}

	p.result = append(p.result, p.buffer...)
	p.buffer = p.buffer[:0]
	p.stats.BytesOut = len(p.result)

	return p.result
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
