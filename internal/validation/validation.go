package validation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// MaxKeywordsPerRun caps how many lookups a single check may issue.
const MaxKeywordsPerRun = 200

// MaxKeywordLength is the longest query accepted by the search API.
const MaxKeywordLength = 256

// DomainPattern accepts an ASCII host with an optional port and path, e.g.
// "example.com/blog". Internationalized hosts are matched in punycode form.
var DomainPattern = regexp.MustCompile(`^[a-z0-9_]([a-z0-9_-]*[a-z0-9_])?(\.[a-z0-9_]([a-z0-9_-]*[a-z0-9_])?)*(:[0-9]+)?(/\S*)?$`)

var (
	ErrNoKeywords      = errors.New("no keywords provided")
	ErrTooManyKeywords = fmt.Errorf("too many keywords (maximum %d per run)", MaxKeywordsPerRun)
)

// NormalizeDomain lowercases a domain and strips any scheme and trailing slash,
// so "https://Example.com/" matches result links the same way "example.com" does.
func NormalizeDomain(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	for _, prefix := range []string{"https://", "http://"} {
		d = strings.TrimPrefix(d, prefix)
	}
	return strings.TrimRight(d, "/")
}

// ValidateDomain checks a normalized domain and returns a user-facing message when invalid.
func ValidateDomain(domain string) (bool, string) {
	if domain == "" {
		return false, "Domain is required"
	}
	if len(domain) > 253 {
		return false, "Domain is too long"
	}
	ascii, err := ASCIIDomain(domain)
	if err != nil || !DomainPattern.MatchString(ascii) {
		return false, "Domain must look like example.com"
	}
	return true, ""
}

// ASCIIDomain converts the host part of a normalized domain to punycode,
// leaving any port or path as is.
func ASCIIDomain(domain string) (string, error) {
	host, rest := splitHost(domain)
	ascii, err := idna.Punycode.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("invalid host %q: %w", host, err)
	}
	return ascii + rest, nil
}

// DomainForms returns the spellings a result link may use for domain: the
// domain itself plus its punycode and Unicode hosts when they differ.
func DomainForms(domain string) []string {
	forms := []string{domain}
	host, rest := splitHost(domain)
	if ascii, err := idna.Punycode.ToASCII(host); err == nil && ascii != host {
		forms = append(forms, ascii+rest)
	}
	if uni, err := idna.Punycode.ToUnicode(host); err == nil && uni != host {
		forms = append(forms, uni+rest)
	}
	return forms
}

func splitHost(domain string) (host, rest string) {
	if i := strings.IndexAny(domain, ":/"); i >= 0 {
		return domain[:i], domain[i:]
	}
	return domain, ""
}

// ParseKeywordList splits comma-separated keywords, trimming whitespace and
// dropping empty entries.
func ParseKeywordList(text string) []string {
	var keywords []string
	for _, kw := range strings.Split(text, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// ReadKeywordsCSV reads keywords from the first column of a CSV file.
// The first row is a header and is skipped. Blank cells are dropped.
func ReadKeywordsCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var keywords []string
	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(record) == 0 {
			continue
		}
		if kw := strings.TrimSpace(record[0]); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords, nil
}

// DedupeKeywords removes repeated keywords, keeping first-seen order.
func DedupeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}

// ValidateKeywords checks the final keyword list for a run.
func ValidateKeywords(keywords []string) error {
	if len(keywords) == 0 {
		return ErrNoKeywords
	}
	if len(keywords) > MaxKeywordsPerRun {
		return ErrTooManyKeywords
	}
	for _, kw := range keywords {
		if len(kw) > MaxKeywordLength {
			return fmt.Errorf("keyword %.20q... is longer than %d characters", kw, MaxKeywordLength)
		}
	}
	return nil
}

// CleanKeywords trims each keyword, drops blanks and removes repeats.
func CleanKeywords(keywords []string) []string {
	trimmed := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			trimmed = append(trimmed, kw)
		}
	}
	return DedupeKeywords(trimmed)
}
