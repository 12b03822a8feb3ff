// Package codec converts between the stored text form of list-valued fields
// and the structured form used by the rest of the application.
//
// Two encodings exist: comma-joined strings for flat string lists (project
// tech stacks and screenshot paths) and JSON arrays for structured lists
// (work links). Both guarantee that an empty stored value decodes to an
// empty, non-nil slice.
package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lvsiyuan/personal-site/internal/model"
)

// listSeparator joins flat string lists. Individual values never contain a
// comma in this domain, so the encoding is lossless.
const listSeparator = ","

// JoinList encodes a string list as comma-joined text. A nil or empty list
// encodes to the empty string, matching SplitList("").
func JoinList(items []string) string {
	return strings.Join(items, listSeparator)
}

// SplitList decodes comma-joined text into a string list. The empty string
// decodes to an empty slice, not []string{""}.
func SplitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, listSeparator)
}

// EncodeLinks encodes work links as a JSON array. A nil list encodes to
// "[]" so the column never stores JSON null.
func EncodeLinks(links []model.WorkLink) (string, error) {
	if links == nil {
		links = []model.WorkLink{}
	}
	b, err := json.Marshal(links)
	if err != nil {
		return "", fmt.Errorf("codec: encoding links: %w", err)
	}
	return string(b), nil
}

// DecodeLinks decodes a JSON array of work links. The empty string decodes
// to an empty slice. A malformed value returns an error; callers degrade to
// an empty list and log a warning rather than failing the whole response.
func DecodeLinks(s string) ([]model.WorkLink, error) {
	if s == "" {
		return []model.WorkLink{}, nil
	}
	var links []model.WorkLink
	if err := json.Unmarshal([]byte(s), &links); err != nil {
		return nil, fmt.Errorf("codec: decoding links: %w", err)
	}
	if links == nil {
		links = []model.WorkLink{}
	}
	return links, nil
}
