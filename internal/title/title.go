// Package title turns raw file and folder names into display titles and
// classifies the special names (README, index) the tree sorts around.
package title

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	knownExt  = regexp.MustCompile(`(?i)\.(md|markdown|txt|htm|html|pdf|css|js|ts|json|xml)$`)
	wordRun   = regexp.MustCompile(`\b[\w-]+\b`)
	camelCase = regexp.MustCompile(`(\p{Ll})(\p{Lu})`)
	anyExt    = regexp.MustCompile(`\.([^.]+)$`)
)

// Normalize converts a file or folder name into a human-readable title:
//
//	"getting-started.md" -> "Getting Started"
//	"getUserData.md"     -> "Get User Data"
//	"file.backup.md"     -> "File.Backup"
//	"readme.md"          -> "README"
//
// Acronyms replace any whole word that matches them case-insensitively, so
// ["API"] turns "api-guide.md" into "API Guide".
func Normalize(name string, acronyms []string) string {
	if name == "" {
		return ""
	}

	base := knownExt.ReplaceAllString(name, "")
	if strings.ToLower(base) == "readme" {
		return "README"
	}

	canonical := acronymMap(acronyms)
	if len(canonical) > 0 {
		base = wordRun.ReplaceAllStringFunc(base, func(word string) string {
			clean := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(word))
			if acronym, ok := canonical[clean]; ok {
				return acronym
			}
			return word
		})
	}

	result := camelCase.ReplaceAllString(base, "$1 $2")
	result = strings.NewReplacer("-", " ", "_", " ").Replace(result)
	result = strings.TrimSpace(upperWordStarts(result))

	if len(canonical) > 0 {
		words := strings.Fields(result)
		for i, word := range words {
			if acronym, ok := canonical[strings.ToLower(word)]; ok {
				words[i] = acronym
			}
		}
		result = strings.Join(words, " ")
	}

	return result
}

// FileExtension returns the lowercased text after the last dot, or "".
func FileExtension(name string) string {
	m := anyExt.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// IsReadme reports whether name is a README with an extension. A bare
// "README" is not matched.
func IsReadme(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "readme.")
}

// IsIndex reports whether name is exactly "index.md", ignoring case.
func IsIndex(name string) bool {
	return strings.ToLower(name) == "index.md"
}

// IsIndexFile reports whether name is an index page of any extension.
func IsIndexFile(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "index.")
}

func acronymMap(acronyms []string) map[string]string {
	if len(acronyms) == 0 {
		return nil
	}
	m := make(map[string]string, len(acronyms))
	for _, a := range acronyms {
		key := strings.ToLower(a)
		if _, seen := m[key]; a == "" || seen {
			continue
		}
		m[key] = a
	}
	return m
}

func upperWordStarts(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevWord := false
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		word := r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
		if word && !prevWord {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevWord = word
		i += size
	}
	return b.String()
}
