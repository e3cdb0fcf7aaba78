// Package fuzztests houses Go fuzz harnesses for the lexer. Arbitrary bytes
// are loaded into a SourceMap and lexed; the harness checks that the lexer
// terminates, never panics and keeps its token and diagnostic invariants.
//
// Назначение: запускать fuzz-обработчики поверх лексера и diag.Bag.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
