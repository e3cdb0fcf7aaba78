package lexer

// skipWhitespace пропускает пробелы, табы, \r и \n.
func (lx *Lexer) skipWhitespace() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r', '\n':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

// skipLineComment съедает текст комментария до \n (не включая).
// Ожидается, что "//" уже потреблены.
func (lx *Lexer) skipLineComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}
