// Package fuzztests houses Go fuzz harnesses that push arbitrary bytes
// through the formatter (source -> lexer -> parser -> printer -> renderer).
// Its goal is to guard against panics and hangs on any input and to check
// that formatting keeps the token stream and is idempotent.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер, парсер и форматтер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/format, internal/testkit.

package fuzztests
