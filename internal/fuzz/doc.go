// Package fuzztests houses Go fuzz harnesses for the manifest pipeline
// (source -> lexer -> parser -> renderer). They guard against panics, hangs
// and render round trips that lose bytes.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
