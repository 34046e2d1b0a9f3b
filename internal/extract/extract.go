package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/JustUsingaWebsite/data-compare/internal/types"
	"github.com/JustUsingaWebsite/data-compare/internal/utils"
)

// Key selects which validation pattern drives extraction.
type Key string

const (
	KeyIP     Key = "ip"
	KeyDomain Key = "domain"
	KeyURL    Key = "url"
)

// ErrUnsupportedKey is returned for key names outside the fixed set.
var ErrUnsupportedKey = errors.New("unsupported key")

// Validation patterns per key. Anchored, so a trimmed token must match
// in full. The ip pattern deliberately does no numeric range check:
// "999.999.999.999" is a valid token.
var patterns = map[Key]*regexp.Regexp{
	KeyIP:     regexp.MustCompile(`^(?:[0-9]{1,3}\.){3}[0-9]{1,3}$`),
	KeyDomain: regexp.MustCompile(`^(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}$`),
	KeyURL:    regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#].[^\s]*$`),
}

// ParseKey normalizes a user-supplied key name, failing on anything
// outside ip/domain/url.
func ParseKey(s string) (Key, error) {
	k := Key(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := patterns[k]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedKey, s)
	}
	return k, nil
}

// Pattern returns the compiled pattern for a key.
func Pattern(key Key) (*regexp.Regexp, error) {
	re, ok := patterns[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKey, key)
	}
	return re, nil
}

// Values returns the distinct tokens across all cells of tbl that fully
// match the key's pattern after trimming, in first-seen order.
// Non-matching cells contribute nothing.
func Values(tbl types.TableData, key Key) ([]string, error) {
	re, err := Pattern(key)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := make([]string, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		for _, cell := range row {
			tok := utils.TrimCell(cell)
			if tok == "" {
				continue
			}
			if !re.MatchString(tok) {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			out = append(out, tok)
		}
	}
	return out, nil
}

// Set returns the valid tokens of tbl as a membership set.
func Set(tbl types.TableData, key Key) (map[string]struct{}, error) {
	vals, err := Values(tbl, key)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		set[v] = struct{}{}
	}
	return set, nil
}
