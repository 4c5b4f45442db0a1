package mentions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractUserIDs(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "plain text",
			content: "Hey, nobody here",
			want:    nil,
		},
		{
			name:    "single mention",
			content: `Hey <a class="mention" data-mention-id="you" href="/profile/you">@al-capone</a>, how do you do?`,
			want:    []string{"you"},
		},
		{
			name: "duplicates keep first position",
			content: `<p><a class="mention" data-mention-id="b" href="/profile/b">@b</a>
<a class="mention" data-mention-id="a" href="/profile/a">@a</a>
<a class="mention" data-mention-id="b" href="/profile/b">@b again</a></p>`,
			want: []string{"b", "a"},
		},
		{
			name:    "anchor without mention class is ignored",
			content: `<a data-mention-id="x" href="/profile/x">@x</a>`,
			want:    nil,
		},
		{
			name:    "empty id is ignored",
			content: `<a class="mention" data-mention-id="  " href="#">@nobody</a>`,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractUserIDs(tt.content))
		})
	}
}
