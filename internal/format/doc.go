// Package format renders a parsed manifest back to bytes.
//
// Назначение: точечные правки поверх исходного текста. Нетронутые байты
// копируются как есть, изменённые значения и вставленные entries выводятся
// в каноническом виде.
// Не делает: переформатирования всего файла, IO.
// Зависимости: internal/ast, internal/source.
package format
