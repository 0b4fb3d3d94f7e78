package templates

import (
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"
)

func baseFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate":   formatDate,
		"safeHTML":     safeHTML,
		"add":          add,
		"truncate":     truncate,
		"whatsappLink": whatsappLink,
		"field":        field,
		"img":          func(src any) string { return ImageOr(src, "") },
		"placeholder":  func() string { return "" },
	}
}

// ImageOr returns src as a string, or fallback when src is empty.
func ImageOr(src any, fallback string) string {
	s := strings.TrimSpace(fmt.Sprint(src))
	if s == "" || s == "<nil>" {
		return fallback
	}
	return s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

func safeHTML(s string) template.HTML {
	return template.HTML(s)
}

func add(a, b int) int {
	return a + b
}

// truncate shortens s to at most n runes, ending with an ellipsis.
func truncate(n int, s any) string {
	str := fmt.Sprint(s)
	if utf8.RuneCountInString(str) <= n {
		return str
	}
	runes := []rune(str)
	cut := strings.TrimRight(string(runes[:n]), " ,.;:")
	return cut + "…"
}

// Field is the view model of one input component.
type Field struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
}

func field(name, label, typ string, value any, errMsg string) Field {
	v := fmt.Sprint(value)
	if v == "0" && typ == "number" {
		v = ""
	}
	return Field{Name: name, Label: label, Type: typ, Value: v, Error: errMsg}
}

// whatsappLink generates a WhatsApp API link with pre-filled message
func whatsappLink(phone, message string) string {
	// Clean phone number (remove spaces, dashes, etc.)
	var clean strings.Builder
	for _, c := range phone {
		if c >= '0' && c <= '9' || c == '+' {
			clean.WriteRune(c)
		}
	}
	cleanPhone := clean.String()
	// Local numbers are Indian numbers
	if len(cleanPhone) > 0 && cleanPhone[0] != '+' {
		cleanPhone = "+91" + cleanPhone
	}
	return "https://wa.me/" + strings.TrimPrefix(cleanPhone, "+") + "?text=" + template.URLQueryEscaper(message)
}
