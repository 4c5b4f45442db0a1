// Package mentions finds the users referenced by mention anchors in post and
// comment HTML, e.g. <a class="mention" data-mention-id="u1" href="/profile/u1">@jenny</a>.
package mentions

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const selector = "a.mention[data-mention-id]"

// ExtractUserIDs returns the unique mentioned user ids in document order.
// Content that is not parseable yields no mentions.
func ExtractUserIDs(content string) []string {
	if !strings.Contains(content, "data-mention-id") {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil
	}

	var ids []string
	seen := make(map[string]struct{})
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		id := strings.TrimSpace(s.AttrOr("data-mention-id", ""))
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	})
	return ids
}
