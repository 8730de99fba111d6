package compat

import (
	"strconv"
	"strings"

	"github.com/Gunvolt24/pcquote/internal/domain"
)

// specIndex - характеристики товара по ключу в нижнем регистре.
// Значения хранятся как есть (исходный регистр).
type specIndex map[string]string

// newSpecIndex - строит индекс; при совпадении ключей после приведения регистра побеждает последний.
func newSpecIndex(specs []domain.Spec) specIndex {
	idx := make(specIndex, len(specs))
	for _, s := range specs {
		idx[strings.ToLower(s.Key)] = s.Value
	}
	return idx
}

// lookup - первое непустое значение по списку ключей (в порядке приоритета).
// Возвращает найденный ключ и значение; если ничего нет - первый ключ списка и "".
func (s specIndex) lookup(keys ...string) (key, value string, ok bool) {
	for _, k := range keys {
		if v := s[k]; v != "" {
			return k, v, true
		}
	}
	if len(keys) > 0 {
		key = keys[0]
	}
	return key, "", false
}

// splitTokens - разбивает список вида "ATX, Micro-ATX" или "AM4/AM5" на токены
// (trim + нижний регистр). Пустые токены не отбрасываются.
func splitTokens(v string) []string {
	parts := strings.Split(strings.ReplaceAll(v, "/", ","), ",")
	for i := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(parts[i]))
	}
	return parts
}

// parseLeadingInt - целое число в начале строки ("750W" -> 750, " 650 W" -> 650).
// Нечисловое значение даёт 0.
func parseLeadingInt(v string) int {
	v = strings.TrimLeft(v, " \t\r\n")
	end := 0
	if end < len(v) && (v[end] == '+' || v[end] == '-') {
		end++
	}
	start := end
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil {
		return 0
	}
	return n
}

// containsAsWord - входит ли needle в haystack с начала слова.
// "atx mid tower" содержит "atx", а "micro-atx" и "microatx" - нет.
func containsAsWord(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	from := 0
	for {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			return false
		}
		pos := from + i
		if pos == 0 || !isWordByte(haystack[pos-1]) {
			return true
		}
		from = pos + 1
	}
}

func isWordByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
