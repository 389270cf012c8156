package database

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует метасимволы LIKE: пользовательский ввод —
// буквальная подстрока, а не шаблон
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
